package csvsort

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression and spreadsheet extensions recognized for source staging.
const (
	extGZ   = ".gz"
	extBZ2  = ".bz2"
	extXZ   = ".xz"
	extZSTD = ".zst"
	extXLSX = ".xlsx"
)

// stageSource prepares the source file for import. Plain delimited files
// are imported in place; compressed and xlsx sources are copied to a
// temporary plain file first, since the engine only reads delimited text.
// The returned cleanup removes the staged copy and is safe to call when
// nothing was staged.
func stageSource(j *job) (string, func(), error) {
	noop := func() {}
	path := strings.ToLower(j.source.Path)

	switch {
	case strings.HasSuffix(path, extXLSX):
		return stageXLSX(j.source.Path, j.source.delimiter(), j.logf)
	case compressionExt(path) != "":
		return stageDecompressed(j.source.Path, j.logf)
	default:
		return j.source.Path, noop, nil
	}
}

// compressionExt returns the recognized compression extension of a
// lower-cased path, or "".
func compressionExt(path string) string {
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(path, ext) {
			return ext
		}
	}
	return ""
}

// stageDecompressed writes a decompressed copy of the source to a
// temporary file and returns its path.
func stageDecompressed(path string, logf func(string)) (string, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("csvsort: open source %s: %w", path, err)
	}
	defer file.Close()

	reader, closeReader, err := decompressionReader(file, path)
	if err != nil {
		return "", nil, err
	}
	defer func() { _ = closeReader() }()

	// Keep the base extension so the staged name stays recognizable in
	// logs and generated scripts.
	ext := compressionExt(strings.ToLower(path))
	baseExt := filepath.Ext(strings.TrimSuffix(path, ext))

	tmp, err := os.CreateTemp("", "csvsort-*"+baseExt)
	if err != nil {
		return "", nil, fmt.Errorf("csvsort: create staging file: %w", err)
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("csvsort: decompress %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("csvsort: close staging file: %w", err)
	}

	logf("staged decompressed copy of " + path + " at " + tmp.Name())
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err == nil {
			logf("removed staged copy " + tmp.Name())
		}
	}
	return tmp.Name(), cleanup, nil
}

// decompressionReader wraps a reader with the decompressor matching the
// path's extension.
func decompressionReader(reader io.Reader, path string) (io.Reader, func() error, error) {
	switch compressionExt(strings.ToLower(path)) {
	case extGZ:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("csvsort: create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case extBZ2:
		// bzip2.NewReader does not need closing
		return bzip2.NewReader(reader), func() error { return nil }, nil

	case extXZ:
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("csvsort: create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil

	case extZSTD:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("csvsort: create zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
}

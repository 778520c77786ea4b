package csvsort

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sort runs one sort job end to end: the source file is imported into a
// temporary SQLite database by the external sqlite3 process, sorted and
// filtered there, and the result is exported to the destination file. The
// database artifact is removed afterwards unless the spec keeps it.
//
// See Spec for the available options.
func Sort(spec Spec) error {
	return SortContext(context.Background(), spec)
}

// SortContext is Sort with a context governing the engine process. The
// temporary database artifact is cleaned up on every exit path, including
// context cancellation.
func SortContext(ctx context.Context, spec Spec) error {
	j := spec.normalize()

	if err := j.validate(); err != nil {
		return err
	}

	// Pre-run deletions: both the destination and a leftover database
	// artifact are removed before anything else happens.
	if _, err := os.Stat(j.dest.Path); err == nil {
		if err := os.Remove(j.dest.Path); err != nil {
			return fmt.Errorf("csvsort: remove existing destination %s: %w", j.dest.Path, err)
		}
		j.logf("removed existing destination file " + j.dest.Path)
	}
	if _, err := os.Stat(j.engine.DatabasePath); err == nil {
		if err := os.Remove(j.engine.DatabasePath); err != nil {
			return fmt.Errorf("csvsort: remove existing database %s: %w", j.engine.DatabasePath, err)
		}
		j.logf("removed existing database file " + j.engine.DatabasePath)
	}

	var unstage func()
	defer func() {
		j.logf("cleaning up")
		if unstage != nil {
			unstage()
		}
		if j.engine.KeepDatabase {
			return
		}
		if _, err := os.Stat(j.engine.DatabasePath); err == nil {
			if err := os.Remove(j.engine.DatabasePath); err == nil {
				j.logf("removed database file " + j.engine.DatabasePath)
			}
		}
	}()

	// Compressed and spreadsheet sources are staged to a plain temporary
	// copy first; the engine only imports delimited text.
	importPath, cleanup, err := stageSource(j)
	if err != nil {
		return err
	}
	unstage = cleanup
	j.source.Path = importPath

	script := buildScript(j)
	j.logf("opening database " + j.engine.DatabasePath)
	for _, line := range strings.Split(strings.TrimSuffix(script, "\n"), "\n") {
		j.logf("> " + line)
	}
	j.logf("executing script")

	return runEngine(ctx, j.engine.Executable, j.engine.DatabasePath, script, j.logf)
}

// validate checks every precondition before any file is touched. The
// checks run in a fixed order so callers get stable errors.
func (j *job) validate() error {
	if _, err := os.Stat(j.source.Path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, j.source.Path)
		}
		return fmt.Errorf("csvsort: stat source %s: %w", j.source.Path, err)
	}

	dir := filepath.Dir(j.dest.Path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDestinationDirNotFound, dir)
		}
		return fmt.Errorf("csvsort: stat destination directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationDirNotFound, dir)
	}

	if len(j.orderBy) == 0 {
		return ErrNoSortKeys
	}
	if j.offset > 0 && j.limit == 0 {
		return ErrOffsetWithoutLimit
	}
	return nil
}

package csvsort

import "errors"

// Precondition errors are detected before the engine process is spawned;
// engine errors are detected from its exit status and error output. All of
// them can be tested with errors.Is against the wrapped error returned by
// Sort.
var (
	// ErrSourceNotFound indicates the source file does not exist
	ErrSourceNotFound = errors.New("csvsort: source file not found")

	// ErrDestinationDirNotFound indicates the directory that should contain
	// the destination file does not exist
	ErrDestinationDirNotFound = errors.New("csvsort: destination directory not found")

	// ErrNoSortKeys indicates the order-by list is empty
	ErrNoSortKeys = errors.New("csvsort: at least one sort key is required")

	// ErrOffsetWithoutLimit indicates an offset was given without a limit
	ErrOffsetWithoutLimit = errors.New("csvsort: offset requires a limit")

	// ErrColumnMismatch indicates the supplied schema does not match the
	// column count of the source file, as reported by the engine during
	// import. Not retryable: the mismatch is structural.
	ErrColumnMismatch = errors.New("csvsort: schema does not match source column count")

	// ErrEngineFailure indicates the engine exited with a non-zero status
	ErrEngineFailure = errors.New("csvsort: engine failure")

	// ErrUnsupportedSource indicates the source file format cannot be staged
	// for import
	ErrUnsupportedSource = errors.New("csvsort: unsupported source format")
)

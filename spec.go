package csvsort

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Spec describes one sort job. Only Source, Destination and OrderBy are
// required; every other field has a usable zero value. The spec is
// normalized once when the job starts and is not consulted again.
//
// Example:
//
//	err := csvsort.Sort(csvsort.Spec{
//		Source:      csvsort.File{Path: "big.csv"},
//		Destination: csvsort.File{Path: "sorted.csv"},
//		OrderBy:     []csvsort.SortKey{csvsort.Asc("id")},
//	})
type Spec struct {
	// Source is the delimited file to sort
	Source File
	// Destination receives the sorted output. It is overwritten if present.
	Destination File
	// Columns optionally declares the full source schema in physical column
	// order. When set, the source header line is skipped on import and the
	// engine reports a mismatch if the column count differs.
	Columns []Column
	// Select optionally restricts and orders the output columns. Empty
	// means all columns.
	Select []string
	// OrderBy lists the sort keys in precedence order. Must be non-empty.
	OrderBy []SortKey
	// Where is a raw SQL filter expression appended verbatim to the query.
	// It is not validated or escaped.
	Where string
	// Offset skips the first N sorted rows. Requires Limit.
	Offset int
	// Limit caps the number of output rows. Zero means no limit.
	Limit int
	// Engine configures the external process and database artifact
	Engine Engine
	// Logger receives one line of text per log event. Nil means discard.
	Logger func(line string)
}

// job is the fully normalized, read-only form of a Spec. Downstream
// components operate only on the job; the permissive Spec fields are never
// re-inspected.
type job struct {
	source     File
	dest       File
	columns    []Column
	selectCols []string
	orderBy    []SortKey
	where      string
	offset     int
	limit      int
	engine     Engine
	logf       func(string)
}

// normalize resolves every default of the permissive Spec. Pure: it
// performs no I/O and leaves validation to the orchestrator.
func (s Spec) normalize() *job {
	j := &job{
		source:     s.Source,
		dest:       s.Destination,
		columns:    s.Columns,
		selectCols: s.Select,
		orderBy:    s.OrderBy,
		where:      s.Where,
		offset:     s.Offset,
		limit:      s.Limit,
		engine:     s.Engine,
		logf:       s.Logger,
	}

	if j.engine.DatabasePath == "" {
		j.engine.DatabasePath = defaultDatabasePath(j.dest.Path)
	}
	if j.engine.Executable == "" {
		j.engine.Executable = defaultExecutable
		if runtime.GOOS == "windows" {
			j.engine.Executable = windowsExecutable
		}
	}
	if j.logf == nil {
		j.logf = func(string) {}
	}
	return j
}

// defaultDatabasePath derives the database artifact path from the
// destination path by replacing its extension with ".db".
func defaultDatabasePath(destPath string) string {
	return strings.TrimSuffix(destPath, filepath.Ext(destPath)) + databaseExt
}

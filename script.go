package csvsort

import (
	"fmt"
	"strings"
)

// buildScript renders the full command script submitted to the engine's
// standard input. The output is deterministic: the same job always yields
// the same text, so the script can be logged and asserted on byte for byte.
//
// The generation order is significant: schema, import mode, import,
// index, export mode, export target, query, quit.
func buildScript(j *job) string {
	var lines []string

	if len(j.columns) > 0 {
		lines = append(lines, createTableStatement(j.columns))
	}

	lines = append(lines, ".mode csv")

	srcDelim := j.source.delimiter()
	if srcDelim != DefaultDelimiter {
		lines = append(lines, separatorDirective(srcDelim))
	}

	// With an explicit schema the table already names its columns, so the
	// header line of the source file is skipped. Without one the header
	// supplies the column names.
	if len(j.columns) > 0 {
		lines = append(lines, fmt.Sprintf(".import --skip 1 %s %s", j.source.Path, workingTable))
	} else {
		lines = append(lines, fmt.Sprintf(".import %s %s", j.source.Path, workingTable))
	}

	if !j.engine.NoIndex {
		lines = append(lines, createIndexStatement(j.orderBy))
	}

	// Import and export delimiters must never leak into each other: set the
	// destination separator when it is non-default, otherwise restore the
	// default if the import changed it.
	destDelim := j.dest.delimiter()
	switch {
	case destDelim != DefaultDelimiter:
		lines = append(lines, separatorDirective(destDelim))
	case srcDelim != DefaultDelimiter:
		lines = append(lines, separatorDirective(DefaultDelimiter))
	}

	lines = append(lines,
		".headers on",
		".output "+j.dest.Path,
		selectStatement(j),
		".quit",
	)

	return strings.Join(lines, "\n") + "\n"
}

// createTableStatement renders the typed column declarations in schema
// order.
func createTableStatement(columns []Column) string {
	decls := make([]string, 0, len(columns))
	for _, col := range columns {
		decls = append(decls, quoteIdentifier(col.Name)+" "+col.Type.String())
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", workingTable, strings.Join(decls, ", "))
}

// createIndexStatement renders the index over the sort-key columns, in
// sort-key order.
func createIndexStatement(keys []SortKey) string {
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.Name)
	}
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s);", workingIndex, workingTable, quoteIdentifiers(names))
}

// selectStatement renders the query that streams sorted rows into the
// destination file.
func selectStatement(j *job) string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if len(j.selectCols) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(quoteIdentifiers(j.selectCols))
	}
	b.WriteString(" FROM ")
	b.WriteString(workingTable)

	if j.where != "" {
		// The filter expression is the caller's responsibility; it is
		// passed through verbatim.
		b.WriteString(" WHERE ")
		b.WriteString(j.where)
	}

	b.WriteString(" ORDER BY ")
	for i, key := range j.orderBy {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdentifier(key.Name))
		// ASC is the engine default and is never emitted explicitly.
		if key.Direction == Descending {
			b.WriteString(" DESC")
		}
	}

	if j.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", j.limit)
	}
	if j.offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", j.offset)
	}

	b.WriteString(";")
	return b.String()
}

// separatorDirective renders the directive that changes the field
// separator used for import and export. A tab is emitted as its escape
// form, never as a literal tab byte.
func separatorDirective(delim rune) string {
	if delim == Tab {
		return `.separator "\t"`
	}
	return fmt.Sprintf(".separator %q", string(delim))
}

package csvsort

// Default values applied during spec normalization.
const (
	// DefaultDelimiter is the field delimiter assumed when none is given
	DefaultDelimiter = ','
	// Tab is the delimiter used by TSV files
	Tab = '\t'

	// defaultExecutable is the engine binary looked up on PATH
	defaultExecutable = "sqlite3"
	// windowsExecutable is the engine binary name on Windows
	windowsExecutable = "sqlite3.exe"

	// workingTable is the table the source file is imported into
	workingTable = "data"
	// workingIndex is the index created over the sort-key columns
	workingIndex = "data_index"

	// databaseExt is the extension given to the temporary database artifact
	databaseExt = ".db"

	// maxReportedErrorLines caps how many engine stderr lines are embedded
	// in a returned error
	maxReportedErrorLines = 20
)

// Direction is the sort direction of a single sort key.
type Direction int

const (
	// Ascending sorts smallest first. It is the zero value, so a SortKey
	// literal without a Direction sorts ascending.
	Ascending Direction = iota
	// Descending sorts largest first
	Descending
)

// String returns the SQL direction token.
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ColumnType is the declared type of a schema column.
type ColumnType int

const (
	// ColumnTypeString stores the column as TEXT. It is the zero value, so
	// a Column literal without a Type is a string column.
	ColumnTypeString ColumnType = iota
	// ColumnTypeNumber stores the column as NUMERIC
	ColumnTypeNumber
)

// String returns the SQL type token emitted in table declarations.
func (ct ColumnType) String() string {
	if ct == ColumnTypeNumber {
		return "NUMERIC"
	}
	return "TEXT"
}

// SortKey names a column contributing to the output ordering. Keys are
// applied in the order they appear: the first is the primary key, the
// second breaks ties, and so on.
type SortKey struct {
	// Name is the column name as it appears in the source header or schema
	Name string
	// Direction is Ascending unless set to Descending
	Direction Direction
}

// Asc returns an ascending sort key for the named column.
func Asc(name string) SortKey {
	return SortKey{Name: name}
}

// Desc returns a descending sort key for the named column.
func Desc(name string) SortKey {
	return SortKey{Name: name, Direction: Descending}
}

// Column declares one column of an explicit source schema. When a schema is
// supplied it must describe every column of the source file in physical
// order; a count mismatch is reported by the engine during import.
type Column struct {
	// Name is the column name
	Name string
	// Type is ColumnTypeString unless set to ColumnTypeNumber
	Type ColumnType
}

// StringColumn declares a TEXT schema column.
func StringColumn(name string) Column {
	return Column{Name: name}
}

// NumberColumn declares a NUMERIC schema column.
func NumberColumn(name string) Column {
	return Column{Name: name, Type: ColumnTypeNumber}
}

// File identifies a delimited text file, either source or destination.
type File struct {
	// Path is the file path
	Path string
	// Delimiter is the field delimiter; zero means DefaultDelimiter
	Delimiter rune
}

// delimiter returns the effective delimiter, applying the default.
func (f File) delimiter() rune {
	if f.Delimiter == 0 {
		return DefaultDelimiter
	}
	return f.Delimiter
}

// Engine configures the external sqlite3 process and the lifecycle of the
// temporary database artifact.
type Engine struct {
	// DatabasePath is where the temporary database is created. Empty means
	// the destination path with its extension replaced by ".db".
	DatabasePath string
	// KeepDatabase leaves the database artifact in place after the run
	KeepDatabase bool
	// Executable is the engine binary; empty means "sqlite3" resolved on
	// PATH ("sqlite3.exe" on Windows)
	Executable string
	// NoIndex skips creating an index over the sort-key columns
	NoIndex bool
}

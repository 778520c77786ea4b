// Package csvsort sorts and filters very large delimited text files
// (CSV, TSV, and other single-character delimiters) without loading them
// into memory. It generates a script for the sqlite3 command-line tool,
// delegates import, indexing, sorting, and export to that process, and
// streams the result into a destination file.
//
// The sqlite3 binary must be installed and reachable; it is invoked as
// "sqlite3 <database-file>" with the generated script on standard input.
// The database file is a temporary artifact that is deleted after the run
// unless the spec keeps it.
//
// A minimal job sorts one file by one column:
//
//	err := csvsort.Sort(csvsort.Spec{
//		Source:      csvsort.File{Path: "users.csv"},
//		Destination: csvsort.File{Path: "users_sorted.csv"},
//		OrderBy:     []csvsort.SortKey{csvsort.Asc("id")},
//	})
//
// Jobs can also project columns, filter rows with a raw SQL expression,
// paginate, declare an explicit schema, and convert between delimiters:
//
//	err := csvsort.Sort(csvsort.Spec{
//		Source:      csvsort.File{Path: "events.tsv", Delimiter: csvsort.Tab},
//		Destination: csvsort.File{Path: "top.csv"},
//		Columns: []csvsort.Column{
//			csvsort.StringColumn("name"),
//			csvsort.NumberColumn("score"),
//		},
//		Select:  []string{"name", "score"},
//		Where:   "score > 100",
//		OrderBy: []csvsort.SortKey{csvsort.Desc("score"), csvsort.Asc("name")},
//		Limit:   10,
//		Logger:  func(line string) { log.Println(line) },
//	})
//
// Gzip, bzip2, xz, zstd and xlsx sources are staged to a plain temporary
// copy before import. The destination file and the database artifact are
// exclusive to one job; concurrent jobs must not share paths.
package csvsort

// Command csvsort sorts a delimited file through the sqlite3 command-line
// tool. It is a thin flag wrapper around the csvsort package.
//
// Usage:
//
//	csvsort -src big.csv -dst sorted.csv -order id
//	csvsort -src events.tsv -sep tab -dst top.csv \
//	    -order 'score:desc,name' -select name,score -where 'score > 100' -limit 10
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/csvsort/csvsort"
)

func main() {
	var (
		src     = flag.String("src", "", "source file (required)")
		dst     = flag.String("dst", "", "destination file (required)")
		srcSep  = flag.String("sep", ",", "source delimiter (single character or 'tab')")
		dstSep  = flag.String("out-sep", ",", "destination delimiter (single character or 'tab')")
		order   = flag.String("order", "", "comma-separated sort keys, each 'column' or 'column:desc' (required)")
		sel     = flag.String("select", "", "comma-separated output columns (default all)")
		where   = flag.String("where", "", "raw SQL filter expression")
		schema  = flag.String("schema", "", "comma-separated columns, each 'name' or 'name:number'")
		offset  = flag.Int("offset", 0, "rows to skip (requires -limit)")
		limit   = flag.Int("limit", 0, "maximum rows to output (0 = unlimited)")
		db      = flag.String("db", "", "database artifact path (default: destination with .db extension)")
		keep    = flag.Bool("keep", false, "keep the database artifact after the run")
		noIndex = flag.Bool("no-index", false, "skip creating an index on the sort keys")
		engine  = flag.String("sqlite3", "", "sqlite3 executable (default: sqlite3 on PATH)")
		quiet   = flag.Bool("quiet", false, "suppress progress output")
	)
	flag.Parse()

	if *src == "" || *dst == "" || *order == "" {
		flag.Usage()
		os.Exit(2)
	}

	spec := csvsort.Spec{
		Source:      csvsort.File{Path: *src, Delimiter: parseDelimiter(*srcSep)},
		Destination: csvsort.File{Path: *dst, Delimiter: parseDelimiter(*dstSep)},
		OrderBy:     parseOrder(*order),
		Columns:     parseSchema(*schema),
		Where:       *where,
		Offset:      *offset,
		Limit:       *limit,
		Engine: csvsort.Engine{
			DatabasePath: *db,
			KeepDatabase: *keep,
			Executable:   *engine,
			NoIndex:      *noIndex,
		},
	}
	if *sel != "" {
		spec.Select = strings.Split(*sel, ",")
	}
	if !*quiet {
		spec.Logger = func(line string) { fmt.Fprintln(os.Stderr, line) }
	}

	if err := csvsort.Sort(spec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseDelimiter accepts a single character, "tab", or "\t".
func parseDelimiter(s string) rune {
	if s == "tab" || s == `\t` {
		return csvsort.Tab
	}
	for _, r := range s {
		return r
	}
	return 0
}

// parseOrder parses "col,col:desc" into sort keys.
func parseOrder(s string) []csvsort.SortKey {
	var keys []csvsort.SortKey
	for _, part := range strings.Split(s, ",") {
		name, dir, _ := strings.Cut(part, ":")
		if strings.EqualFold(dir, "desc") {
			keys = append(keys, csvsort.Desc(name))
		} else {
			keys = append(keys, csvsort.Asc(name))
		}
	}
	return keys
}

// parseSchema parses "name,age:number" into schema columns.
func parseSchema(s string) []csvsort.Column {
	if s == "" {
		return nil
	}
	var cols []csvsort.Column
	for _, part := range strings.Split(s, ",") {
		name, typ, _ := strings.Cut(part, ":")
		if strings.EqualFold(typ, "number") {
			cols = append(cols, csvsort.NumberColumn(name))
		} else {
			cols = append(cols, csvsort.StringColumn(name))
		}
	}
	return cols
}

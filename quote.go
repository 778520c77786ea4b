package csvsort

import (
	"regexp"
	"strings"
)

// bareIdentifier matches column names that can be embedded in generated
// script text without quoting.
var bareIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quoteIdentifier returns a syntactically safe token for a column name.
// Bare identifiers pass through unchanged; anything else is wrapped in
// double quotes with embedded quotes doubled. Every string is
// representable, so there is no error case.
func quoteIdentifier(name string) string {
	if bareIdentifier.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteIdentifiers quotes each name and joins them with ", " for use in
// column lists.
func quoteIdentifiers(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, quoteIdentifier(name))
	}
	return strings.Join(quoted, ", ")
}

package csvsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ASC", Ascending.String())
	assert.Equal(t, "DESC", Descending.String())
}

func TestColumnType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TEXT", ColumnTypeString.String())
	assert.Equal(t, "NUMERIC", ColumnTypeNumber.String())
}

func TestSortKeyHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortKey{Name: "id"}, Asc("id"))
	assert.Equal(t, SortKey{Name: "id", Direction: Descending}, Desc("id"))

	// The zero value of Direction sorts ascending, so a bare literal works.
	assert.Equal(t, Ascending, SortKey{Name: "id"}.Direction)
}

func TestColumnHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Column{Name: "name"}, StringColumn("name"))
	assert.Equal(t, Column{Name: "age", Type: ColumnTypeNumber}, NumberColumn("age"))

	// The zero value of ColumnType is a string column.
	assert.Equal(t, ColumnTypeString, Column{Name: "name"}.Type)
}

func TestFile_Delimiter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ',', File{Path: "a.csv"}.delimiter())
	assert.Equal(t, '\t', File{Path: "a.tsv", Delimiter: Tab}.delimiter())
	assert.Equal(t, '|', File{Path: "a.psv", Delimiter: '|'}.delimiter())
}

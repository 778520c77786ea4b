package csvsort

import (
	"context"
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireSqlite3 skips the test when the real engine binary is not
// installed. Everything below exercises the full pipeline end to end.
func requireSqlite3(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sqlite3"); err != nil {
		t.Skip("sqlite3 binary not found on PATH")
	}
}

// readRows parses a destination file produced by the engine. The engine
// terminates rows with CRLF in csv mode; encoding/csv accepts both.
func readRows(t *testing.T, path string, comma rune) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestIntegration_SortByColumn(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "id,name,age\n2,sarah,1\n1,john,12\n")
	require.NoError(t, SortContext(context.Background(), Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		OrderBy:     []SortKey{Asc("id")},
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "age"}, rows[0])
	assert.Equal(t, []string{"1", "john", "12"}, rows[1])
	assert.Equal(t, []string{"2", "sarah", "1"}, rows[2])
}

func TestIntegration_FilterAndSecondaryDescending(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t,
		"code,version\nabc,1\nxyz,9\nabc,3\nabc,2\nxyz,8\n")
	require.NoError(t, SortContext(context.Background(), Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		Where:       "code = 'abc'",
		OrderBy:     []SortKey{Asc("code"), Desc("version")},
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"abc", "3"}, rows[1])
	assert.Equal(t, []string{"abc", "2"}, rows[2])
	assert.Equal(t, []string{"abc", "1"}, rows[3])
}

func TestIntegration_OffsetAndLimit(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "id\na\nb\nc\nd\ne\nf\n")
	require.NoError(t, SortContext(context.Background(), Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		OrderBy:     []SortKey{Asc("id")},
		Offset:      1,
		Limit:       2,
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b"}, rows[1], "offset skips the first sorted row")
	assert.Equal(t, []string{"c"}, rows[2])
}

func TestIntegration_ReverseRoundTrip(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "id,v\n3,c\n1,a\n2,b\n")
	reversed := filepath.Join(filepath.Dir(dst), "reversed.csv")

	require.NoError(t, Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		OrderBy:     []SortKey{Asc("id")},
	}))
	require.NoError(t, Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: reversed},
		OrderBy:     []SortKey{Desc("id")},
	}))

	asc := readRows(t, dst, ',')
	desc := readRows(t, reversed, ',')
	require.Len(t, asc, 4)
	require.Len(t, desc, 4)
	for i := 1; i < len(asc); i++ {
		assert.Equal(t, asc[i], desc[len(desc)-i], "descending output is the exact reverse")
	}
}

func TestIntegration_Idempotent(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "id\n2\n1\n3\n")
	spec := Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		OrderBy:     []SortKey{Asc("id")},
	}

	require.NoError(t, Sort(spec))
	first, err := os.ReadFile(dst)
	require.NoError(t, err)

	require.NoError(t, Sort(spec))
	second, err := os.ReadFile(dst)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dst), "dst.db"))
}

func TestIntegration_ExplicitSchema(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	// With a NUMERIC schema, 10 sorts after 9 instead of lexically before.
	src, dst := writeSourceFile(t, "id,name\n10,j\n9,i\n1,a\n")
	require.NoError(t, Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		Columns:     []Column{NumberColumn("id"), StringColumn("name")},
		OrderBy:     []SortKey{Asc("id")},
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"1", "a"}, rows[1])
	assert.Equal(t, []string{"9", "i"}, rows[2])
	assert.Equal(t, []string{"10", "j"}, rows[3])
}

func TestIntegration_SchemaMismatch(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "id,name,age\n1,john,12\n2,sarah,1\n")
	err := Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		Columns:     []Column{StringColumn("id"), StringColumn("name")},
		OrderBy:     []SortKey{Asc("id")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnMismatch)
}

func TestIntegration_HostileColumnNames(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	src, dst := writeSourceFile(t, "a b,c&d\n1,x\n2,y\n")
	require.NoError(t, Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		Select:      []string{"c&d", "a b"},
		OrderBy:     []SortKey{Desc("a b")},
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c&d", "a b"}, rows[0], "projection reorders the output columns")
	assert.Equal(t, []string{"y", "2"}, rows[1])
	assert.Equal(t, []string{"x", "1"}, rows[2])
}

func TestIntegration_DelimiterConversion(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "src.psv")
	dst := filepath.Join(dir, "dst.tsv")
	require.NoError(t, os.WriteFile(src, []byte("id|name\n2|bob\n1|alice\n"), 0o600))

	require.NoError(t, Sort(Spec{
		Source:      File{Path: src, Delimiter: '|'},
		Destination: File{Path: dst, Delimiter: Tab},
		OrderBy:     []SortKey{Asc("id")},
	}))

	rows := readRows(t, dst, '\t')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name"}, rows[0])
	assert.Equal(t, []string{"1", "alice"}, rows[1])
	assert.Equal(t, []string{"2", "bob"}, rows[2])
}

func TestIntegration_GzipSource(t *testing.T) {
	t.Parallel()
	requireSqlite3(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "src.csv.gz")
	dst := filepath.Join(dir, "dst.csv")
	writeGzipFile(t, src, "id\n2\n1\n")

	require.NoError(t, Sort(Spec{
		Source:      File{Path: src},
		Destination: File{Path: dst},
		OrderBy:     []SortKey{Asc("id")},
	}))

	rows := readRows(t, dst, ',')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1"}, rows[1])
	assert.Equal(t, []string{"2"}, rows[2])
}

package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"perfdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "employees.csv",
		"\ufeffname_employee, gender ,age\n"+
			"Ana,F,31\n"+
			"\n"+
			"Luis,M\n")

	table, err := NewDataReader(path, zaptest.NewLogger(t)).ReadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name_employee", "gender", "age"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Ana", "F", "31"}, table.Rows[0])
	assert.Equal(t, []string{"Luis", "M", ""}, table.Rows[1], "short rows are padded")
	assert.Equal(t, []int{2, 4}, table.Lines, "blank lines keep later rows on their file line")
	assert.Equal(t, path, table.Source)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"header only", "name,gender\n", errors.CodeDatasetMalformed},
		{"too many cells", "name,gender\nAna,F,extra\n", errors.CodeDatasetMalformed},
		{"only blank rows", "name,gender\n,\n", errors.CodeDatasetMalformed},
		{"bad quoting", "name,gender\n\"Ana,F\n", errors.CodeDatasetMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := NewDataReader(path, nil).ReadTable(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), nil).ReadTable(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetNotFound, errors.GetCode(err))
}

func TestReadHonoursCancelledContext(t *testing.T) {
	path := writeFile(t, "employees.csv", "name\nAna\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(path, nil).ReadTable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestXLSXWriterOutputIsReadable(t *testing.T) {
	headers := []string{"name", "salary"}
	rows := [][]string{{"Ana", "52000.5"}, {"Luis", ""}}

	data, err := XLSXWriter{Sheet: "Datos"}.WriteTable(headers, rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	table, err := NewDataReader(path, nil).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, headers, table.Headers)
	assert.Equal(t, rows, table.Rows)
}

func TestNewWriter(t *testing.T) {
	w, err := NewWriter("xlsx")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", w.Extension())

	w, err = NewWriter("")
	require.NoError(t, err)
	assert.Equal(t, "csv", w.Extension())

	out, err := w.WriteTable([]string{"a", "b"}, [][]string{{"1", "x,y"}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", string(out))

	_, err = NewWriter("pdf")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))
}

package ports

import (
	"context"
)

// Table is a rectangular, untyped view of a tabular source file.
// Every row has exactly len(Headers) cells.
type Table struct {
	Source  string
	Headers []string
	Rows    [][]string
	// Lines holds the 1-based source line of each row. Nil when the table
	// was not read from a file.
	Lines []int
}

// TableReader provides read-only access to the dashboard's source table
type TableReader interface {
	ReadTable(ctx context.Context) (*Table, error)
}

// TableWriter serializes a header and rows into a downloadable document
type TableWriter interface {
	ContentType() string
	Extension() string
	WriteTable(headers []string, rows [][]string) ([]byte, error)
}

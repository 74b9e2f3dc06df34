package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"perfdash/internal/errors"
	"perfdash/ports"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const defaultSheet = "Sheet1"

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *zap.Logger
}

var _ ports.TableReader = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, logger *zap.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" || ext == ".txt" {
		fileType = "csv"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logger.Named("DataReader")}
}

// ReadTable reads data from Excel or CSV files into a rectangular table
func (r *DataReader) ReadTable(ctx context.Context) (*ports.Table, error) {
	r.logger.Info("reading dataset", zap.String("type", r.fileType), zap.String("path", r.filePath))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetNotFound(r.filePath)
	}

	var (
		rows  [][]string
		lines []int
		err   error
	)
	switch r.fileType {
	case "csv":
		rows, lines, err = r.readCSVRows()
	default:
		rows, lines, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	return r.processRows(rows, lines)
}

// readExcelRows reads the raw rows of Sheet1, or of the first sheet when there is no Sheet1
func (r *DataReader) readExcelRows() ([][]string, []int, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, nil, errors.WithCode(errors.CodeDatasetMalformed, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := defaultSheet
	if idx, _ := f.GetSheetIndex(defaultSheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.DatasetMalformed("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.WithCode(errors.CodeDatasetMalformed, fmt.Errorf("failed to read %s: %w", sheet, err))
	}
	r.logger.Debug("sheet read",
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(startTime)))

	// GetRows keeps empty rows in place, so row i sits on sheet row i+1
	lines := make([]int, len(rows))
	for i := range lines {
		lines[i] = i + 1
	}
	return rows, lines, nil
}

// readCSVRows reads the raw records of a delimited text file along with the
// line each record starts on
func (r *DataReader) readCSVRows() ([][]string, []int, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, nil, errors.WithCode(errors.CodeDatasetNotFound, fmt.Errorf("failed to open CSV file: %w", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	startTime := time.Now()
	var (
		rows  [][]string
		lines []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.WithCode(errors.CodeDatasetMalformed, fmt.Errorf("failed to read CSV file: %w", err))
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	r.logger.Debug("csv read", zap.Int("rows", len(rows)), zap.Duration("elapsed", time.Since(startTime)))

	return rows, lines, nil
}

// processRows trims cells, drops blank rows and pads short rows to the header width
func (r *DataReader) processRows(rows [][]string, lines []int) (*ports.Table, error) {
	if len(rows) < 2 {
		return nil, errors.DatasetMalformed(fmt.Sprintf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType)))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([][]string, 0, len(rows)-1)
	dataLines := make([]int, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		line := i + 1
		if i < len(lines) {
			line = lines[i]
		}
		if len(row) > len(headers) {
			return nil, errors.DatasetMalformed(fmt.Sprintf("row %d has %d cells but the header has %d", line, len(row), len(headers)))
		}

		cells := make([]string, len(headers))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, cells)
		dataLines = append(dataLines, line)
	}

	if len(dataRows) == 0 {
		return nil, errors.DatasetMalformed("dataset has no data rows")
	}

	r.logger.Info("dataset processed",
		zap.Int("columns", len(headers)),
		zap.Int("rows", len(dataRows)))

	return &ports.Table{
		Source:  r.filePath,
		Headers: headers,
		Rows:    dataRows,
		Lines:   dataLines,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

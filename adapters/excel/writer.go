package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"perfdash/internal/errors"
	"perfdash/ports"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter writes tables as a single-sheet workbook
type XLSXWriter struct {
	Sheet string
}

// CSVWriter writes tables as comma-separated text
type CSVWriter struct{}

var (
	_ ports.TableWriter = XLSXWriter{}
	_ ports.TableWriter = CSVWriter{}
)

// NewWriter picks a writer for the given format ("csv" or "xlsx")
func NewWriter(format string) (ports.TableWriter, error) {
	switch format {
	case "", "csv":
		return CSVWriter{}, nil
	case "xlsx":
		return XLSXWriter{Sheet: defaultSheet}, nil
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unsupported export format: %q", format)
	}
}

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXWriter) Extension() string { return "xlsx" }

// WriteTable streams the rows into a workbook. Numeric-looking cells are stored as numbers.
func (w XLSXWriter) WriteTable(headers []string, rows [][]string) ([]byte, error) {
	sheet := w.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream writer: %w", err)
	}

	if err := setRow(sw, 1, headerCells(headers)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = typedCell(cell)
		}
		if err := setRow(sw, i+2, cells); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVWriter) Extension() string { return "csv" }

func (CSVWriter) WriteTable(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(headers); err != nil {
		return nil, err
	}
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(sw *excelize.StreamWriter, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := sw.SetRow(cell, cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func headerCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func typedCell(value string) interface{} {
	if value == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

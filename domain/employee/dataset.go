package employee

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"perfdash/internal/errors"
	"perfdash/ports"
)

// Dataset is the immutable, session-wide handle on the loaded employee table.
// It is built once by FromTable and only read afterwards.
type Dataset struct {
	source          string
	headers         []string
	records         []Record
	genders         []string
	maritalStatuses []string
	scores          ScoreBounds
}

// FromTable maps a raw table onto typed records. A missing required column or a
// cell that does not parse is reported as an error; the caller treats it as fatal.
func FromTable(table *ports.Table) (*Dataset, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, errors.DatasetMalformed("dataset has no rows")
	}

	index, err := resolveColumns(table.Headers)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		source:  table.Source,
		headers: append([]string(nil), table.Headers...),
		records: make([]Record, 0, len(table.Rows)),
	}

	seenGender := make(map[string]bool)
	seenMarital := make(map[string]bool)

	for i, cells := range table.Rows {
		rec, err := parseRecord(i, sourceLine(table, i), cells, index)
		if err != nil {
			return nil, err
		}
		ds.records = append(ds.records, rec)

		if !seenGender[rec.Gender] {
			seenGender[rec.Gender] = true
			ds.genders = append(ds.genders, rec.Gender)
		}
		if !seenMarital[rec.MaritalStatus] {
			seenMarital[rec.MaritalStatus] = true
			ds.maritalStatuses = append(ds.maritalStatuses, rec.MaritalStatus)
		}

		if i == 0 {
			ds.scores = ScoreBounds{Min: rec.PerformanceScore, Max: rec.PerformanceScore}
		} else {
			ds.scores.Min = min(ds.scores.Min, rec.PerformanceScore)
			ds.scores.Max = max(ds.scores.Max, rec.PerformanceScore)
		}
	}

	return ds, nil
}

// New builds a dataset directly from records, in the given order.
// Cells are synthesized when a record carries none.
func New(records []Record) (*Dataset, error) {
	table := &ports.Table{Source: "memory", Headers: append([]string(nil), RequiredColumns...)}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.Name,
			r.Gender,
			r.MaritalStatus,
			strconv.Itoa(r.Age),
			strconv.FormatFloat(r.Salary, 'f', -1, 64),
			strconv.FormatFloat(r.AverageWorkHours, 'f', -1, 64),
			strconv.Itoa(r.PerformanceScore),
			r.Position,
		})
	}
	return FromTable(table)
}

// Source returns where the dataset was read from
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Headers returns the source column headers
func (d *Dataset) Headers() []string {
	return append([]string(nil), d.headers...)
}

// Records returns a deep copy of all records in file order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		r.Cells = append([]string(nil), r.Cells...)
		out[i] = r
	}
	return out
}

// Genders returns the distinct gender values in first-seen order
func (d *Dataset) Genders() []string {
	return append([]string(nil), d.genders...)
}

// MaritalStatuses returns the distinct marital statuses in first-seen order
func (d *Dataset) MaritalStatuses() []string {
	return append([]string(nil), d.maritalStatuses...)
}

// ScoreBounds returns the observed performance score range
func (d *Dataset) ScoreBounds() ScoreBounds { return d.scores }

// HasGender reports whether g is one of the observed gender values
func (d *Dataset) HasGender(g string) bool { return contains(d.genders, g) }

// HasMaritalStatus reports whether s is one of the observed marital statuses
func (d *Dataset) HasMaritalStatus(s string) bool { return contains(d.maritalStatuses, s) }

// GenderIndex returns the first-seen position of g, or -1
func (d *Dataset) GenderIndex(g string) int {
	for i, v := range d.genders {
		if v == g {
			return i
		}
	}
	return -1
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// resolveColumns maps canonical column names onto header positions
func resolveColumns(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(RequiredColumns))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return index, nil
}

// sourceLine returns the file line of data row i, assuming a single header
// line when the table carries no line numbers
func sourceLine(table *ports.Table, i int) int {
	if len(table.Lines) == len(table.Rows) {
		return table.Lines[i]
	}
	return i + 2
}

func parseRecord(row, line int, cells []string, index map[string]int) (Record, error) {
	cell := func(col string) string { return cells[index[col]] }

	age, err := parseInt(cell(ColAge))
	if err != nil {
		return Record{}, cellError(line, ColAge, err)
	}
	score, err := parseInt(cell(ColPerformanceScore))
	if err != nil {
		return Record{}, cellError(line, ColPerformanceScore, err)
	}
	salary, err := parseFloat(cell(ColSalary))
	if err != nil {
		return Record{}, cellError(line, ColSalary, err)
	}
	hours, err := parseFloat(cell(ColAverageWorkHours))
	if err != nil {
		return Record{}, cellError(line, ColAverageWorkHours, err)
	}

	return Record{
		Row:              row,
		Name:             cell(ColName),
		Gender:           cell(ColGender),
		MaritalStatus:    cell(ColMaritalStatus),
		Age:              age,
		Salary:           salary,
		AverageWorkHours: hours,
		PerformanceScore: score,
		Position:         cell(ColPosition),
		Cells:            append([]string(nil), cells...),
	}, nil
}

// parseFloat accepts finite values only
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// parseInt accepts integral values written as floats ("4.0")
func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func cellError(line int, col string, err error) error {
	return errors.WithCode(errors.CodeDatasetMalformed, fmt.Errorf("row %d, column %s: %w", line, col, err))
}

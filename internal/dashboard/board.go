// Package dashboard assembles the filtered table, headline figures and chart
// specifications for one sidebar selection.
package dashboard

import (
	"perfdash/domain/employee"
	"perfdash/internal/analysis"
	"perfdash/internal/filter"

	"go.uber.org/zap"
)

// Options controls how a Board derives its charts
type Options struct {
	// ChartsFollowFilters computes the charts from the filtered rows instead
	// of the whole dataset.
	ChartsFollowFilters bool
	Histogram           analysis.HistogramOptions
}

// DefaultOptions returns charts over the full dataset with automatic binning
func DefaultOptions() Options {
	return Options{Histogram: analysis.DefaultHistogramOptions()}
}

// FilterOptions are the value domains offered by the sidebar controls
type FilterOptions struct {
	Genders         []string             `json:"genders"`
	MaritalStatuses []string             `json:"marital_statuses"`
	ScoreBounds     employee.ScoreBounds `json:"score_bounds"`
}

// Charts holds the four figures of the chart grid
type Charts struct {
	Histogram    Figure `json:"histogram"`
	AverageHours Figure `json:"average_hours"`
	AgeSalary    Figure `json:"age_salary"`
	HoursScore   Figure `json:"hours_score"`
}

// View is everything the page needs to redraw after a control change
type View struct {
	Criteria       filter.Criteria  `json:"criteria"`
	Options        FilterOptions    `json:"options"`
	Columns        []string         `json:"columns"`
	Rows           [][]string       `json:"rows"`
	RowCount       int              `json:"row_count"`
	TotalCount     int              `json:"total_count"`
	Summary        analysis.Summary `json:"summary"`
	Charts         Charts           `json:"charts"`
	ChartsFiltered bool             `json:"charts_filtered"`
}

// Empty reports whether no record matched the criteria
func (v *View) Empty() bool { return v.RowCount == 0 }

// Board renders views over one immutable dataset
type Board struct {
	ds     *employee.Dataset
	opts   Options
	colors ColorMap
	logger *zap.Logger
}

// NewBoard wraps ds. A nil logger disables logging.
func NewBoard(ds *employee.Dataset, opts Options, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Histogram.MaxBins == 0 {
		opts.Histogram.MaxBins = analysis.DefaultHistogramOptions().MaxBins
	}
	return &Board{
		ds:     ds,
		opts:   opts,
		colors: NewColorMap(ds.Genders()),
		logger: logger.Named("Board"),
	}
}

// Dataset returns the dataset the board renders
func (b *Board) Dataset() *employee.Dataset { return b.ds }

// FilterOptions lists the sidebar domains in first-seen order
func (b *Board) FilterOptions() FilterOptions {
	return FilterOptions{
		Genders:         b.ds.Genders(),
		MaritalStatuses: b.ds.MaritalStatuses(),
		ScoreBounds:     b.ds.ScoreBounds(),
	}
}

// DefaultCriteria is the selection shown on first load
func (b *Board) DefaultCriteria() filter.Criteria {
	return filter.DefaultCriteria(b.ds)
}

// Filter returns the records matching c in source order
func (b *Board) Filter(c filter.Criteria) []employee.Record {
	return filter.Apply(b.ds.Records(), c)
}

// Render recomputes the whole view for c. It reads nothing but the dataset and
// c, so equal criteria always produce equal views.
func (b *Board) Render(c filter.Criteria) *View {
	all := b.ds.Records()
	rows := filter.Apply(all, c)

	source := all
	if b.opts.ChartsFollowFilters {
		source = rows
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = append([]string(nil), r.Cells...)
	}

	view := &View{
		Criteria:       c,
		Options:        b.FilterOptions(),
		Columns:        b.ds.Headers(),
		Rows:           cells,
		RowCount:       len(rows),
		TotalCount:     len(all),
		Summary:        analysis.Summarize(rows),
		Charts:         b.charts(source),
		ChartsFiltered: b.opts.ChartsFollowFilters,
	}

	b.logger.Debug("rendered view",
		zap.String("gender", c.Gender),
		zap.String("marital_status", c.MaritalStatus),
		zap.Int("score_min", c.ScoreMin),
		zap.Int("score_max", c.ScoreMax),
		zap.Int("rows", view.RowCount))

	return view
}

func (b *Board) charts(records []employee.Record) Charts {
	return Charts{
		Histogram:    HistogramFigure(analysis.ScoreHistogram(analysis.Scores(records), b.opts.Histogram)),
		AverageHours: AverageHoursFigure(analysis.AverageHoursByGender(records), b.colors),
		AgeSalary:    AgeSalaryFigure(analysis.AgeSalaryPoints(records), b.colors),
		HoursScore:   HoursScoreFigure(analysis.HoursScorePoints(records), b.colors),
	}
}

package analysis

import (
	"perfdash/domain/employee"

	"github.com/montanaflynn/stats"
)

// Summary holds the headline figures shown above the chart grid
type Summary struct {
	Headcount    int     `json:"headcount"`
	SalaryMean   float64 `json:"salary_mean"`
	SalaryMedian float64 `json:"salary_median"`
	HoursMean    float64 `json:"hours_mean"`
	ScoreMean    float64 `json:"score_mean"`
	ScoreMedian  float64 `json:"score_median"`
}

// Summarize computes the headline figures. An empty input yields a zero Summary.
func Summarize(records []employee.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	salaries := make(stats.Float64Data, len(records))
	hours := make(stats.Float64Data, len(records))
	scores := make(stats.Float64Data, len(records))
	for i, r := range records {
		salaries[i] = r.Salary
		hours[i] = r.AverageWorkHours
		scores[i] = float64(r.PerformanceScore)
	}

	s := Summary{Headcount: len(records)}
	s.SalaryMean, _ = salaries.Mean()
	s.SalaryMedian, _ = salaries.Median()
	s.HoursMean, _ = hours.Mean()
	s.ScoreMean, _ = scores.Mean()
	s.ScoreMedian, _ = scores.Median()
	return s
}

// Scores extracts the performance scores as floats, in record order
func Scores(records []employee.Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.PerformanceScore)
	}
	return out
}

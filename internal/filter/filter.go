// Package filter selects the employee records that satisfy the sidebar criteria.
package filter

import (
	"fmt"

	"perfdash/domain/employee"
	"perfdash/internal/errors"
)

// Criteria is one sidebar selection. All three predicates are AND-combined.
type Criteria struct {
	Gender        string `json:"gender"`
	ScoreMin      int    `json:"score_min"`
	ScoreMax      int    `json:"score_max"`
	MaritalStatus string `json:"marital_status"`
}

// DefaultCriteria is the initial selection: first observed gender, full score
// range, first observed marital status.
func DefaultCriteria(ds *employee.Dataset) Criteria {
	bounds := ds.ScoreBounds()
	c := Criteria{ScoreMin: bounds.Min, ScoreMax: bounds.Max}
	if g := ds.Genders(); len(g) > 0 {
		c.Gender = g[0]
	}
	if m := ds.MaritalStatuses(); len(m) > 0 {
		c.MaritalStatus = m[0]
	}
	return c
}

// NewCriteria validates a selection against the dataset's domains. The score
// range is clamped to the observed bounds and swapped when given reversed.
func NewCriteria(ds *employee.Dataset, gender string, scoreMin, scoreMax int, maritalStatus string) (Criteria, error) {
	if !ds.HasGender(gender) {
		return Criteria{}, errors.InvalidInput(fmt.Sprintf("unknown gender: %q", gender))
	}
	if !ds.HasMaritalStatus(maritalStatus) {
		return Criteria{}, errors.InvalidInput(fmt.Sprintf("unknown marital status: %q", maritalStatus))
	}

	if scoreMin > scoreMax {
		scoreMin, scoreMax = scoreMax, scoreMin
	}
	bounds := ds.ScoreBounds()

	return Criteria{
		Gender:        gender,
		ScoreMin:      bounds.Clamp(scoreMin),
		ScoreMax:      bounds.Clamp(scoreMax),
		MaritalStatus: maritalStatus,
	}, nil
}

// Matches reports whether r satisfies every predicate of c
func (c Criteria) Matches(r employee.Record) bool {
	return r.Gender == c.Gender &&
		r.PerformanceScore >= c.ScoreMin &&
		r.PerformanceScore <= c.ScoreMax &&
		r.MaritalStatus == c.MaritalStatus
}

// Apply returns the records matching c, in source order. The result is never
// nil; no match yields an empty slice.
func Apply(records []employee.Record, c Criteria) []employee.Record {
	out := make([]employee.Record, 0, len(records)/4)
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

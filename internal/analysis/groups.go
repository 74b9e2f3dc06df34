package analysis

import (
	"fmt"
	"sort"

	"perfdash/domain/employee"

	"github.com/montanaflynn/stats"
)

// GroupMean is the mean of a measure within one categorical group
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
	Label string  `json:"label"`
}

// AverageHoursByGender groups records by gender and averages AverageWorkHours.
// Rows are sorted by gender label.
func AverageHoursByGender(records []employee.Record) []GroupMean {
	return meanBy(records,
		func(r employee.Record) string { return r.Gender },
		func(r employee.Record) float64 { return r.AverageWorkHours })
}

func meanBy(records []employee.Record, key func(employee.Record) string, measure func(employee.Record) float64) []GroupMean {
	grouped := make(map[string]stats.Float64Data)
	for _, r := range records {
		k := key(r)
		grouped[k] = append(grouped[k], measure(r))
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupMean, 0, len(keys))
	for _, k := range keys {
		values := grouped[k]
		// values is never empty here, so Mean cannot fail
		mean, _ := stats.Mean(values)
		out = append(out, GroupMean{
			Group: k,
			Mean:  mean,
			Count: len(values),
			Label: fmt.Sprintf("%.2f", mean),
		})
	}
	return out
}

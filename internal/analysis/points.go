package analysis

import "perfdash/domain/employee"

// Point is one scatter marker with the metadata shown on hover
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size,omitempty"`
	Name     string  `json:"name"`
	Position string  `json:"position,omitempty"`
}

// Series is the set of points sharing one colour category
type Series struct {
	Group  string  `json:"group"`
	Points []Point `json:"points"`
}

// AgeSalaryPoints places one point per record at (age, salary), grouped by gender
func AgeSalaryPoints(records []employee.Record) []Series {
	return seriesBy(records, func(r employee.Record) Point {
		return Point{X: float64(r.Age), Y: r.Salary, Name: r.Name, Position: r.Position}
	})
}

// HoursScorePoints places one point per record at (hours, score), sized by salary
func HoursScorePoints(records []employee.Record) []Series {
	return seriesBy(records, func(r employee.Record) Point {
		return Point{X: r.AverageWorkHours, Y: float64(r.PerformanceScore), Size: r.Salary, Name: r.Name}
	})
}

// seriesBy splits records per gender, keeping first-seen group order and source order within a group
func seriesBy(records []employee.Record, point func(employee.Record) Point) []Series {
	index := make(map[string]int)
	var out []Series
	for _, r := range records {
		i, ok := index[r.Gender]
		if !ok {
			i = len(out)
			index[r.Gender] = i
			out = append(out, Series{Group: r.Gender})
		}
		out[i].Points = append(out[i].Points, point(r))
	}
	return out
}

// MaxSize returns the largest point size across series, 0 when there are no points
func MaxSize(series []Series) float64 {
	var m float64
	for _, s := range series {
		for _, p := range s.Points {
			if p.Size > m {
				m = p.Size
			}
		}
	}
	return m
}

package employee

// Column names the dashboard depends on
const (
	ColName             = "name"
	ColGender           = "gender"
	ColMaritalStatus    = "marital_status"
	ColAge              = "age"
	ColSalary           = "salary"
	ColAverageWorkHours = "average_work_hours"
	ColPerformanceScore = "performance_score"
	ColPosition         = "position"
)

// RequiredColumns lists the columns every source table must provide
var RequiredColumns = []string{
	ColName,
	ColGender,
	ColMaritalStatus,
	ColAge,
	ColSalary,
	ColAverageWorkHours,
	ColPerformanceScore,
	ColPosition,
}

// columnAliases maps alternative headers onto canonical column names
var columnAliases = map[string]string{
	"name_employee": ColName,
	"employee_name": ColName,
}

// Record is one employee row
type Record struct {
	Row              int     `json:"row"`
	Name             string  `json:"name"`
	Gender           string  `json:"gender"`
	MaritalStatus    string  `json:"marital_status"`
	Age              int     `json:"age"`
	Salary           float64 `json:"salary"`
	AverageWorkHours float64 `json:"average_work_hours"`
	PerformanceScore int     `json:"performance_score"`
	Position         string  `json:"position"`

	// Cells holds the source cells verbatim, in header order
	Cells []string `json:"-"`
}

// ScoreBounds is the observed performance score range of a dataset
type ScoreBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether score lies within the bounds, inclusive
func (b ScoreBounds) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Clamp limits v to the bounds
func (b ScoreBounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

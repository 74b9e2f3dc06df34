package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"perfdash/domain/employee"
	"perfdash/ports"
)

// EmployeeGeneratorConfig configures the synthetic employee table
type EmployeeGeneratorConfig struct {
	EmployeeCount   int      `json:"employee_count"`
	Genders         []string `json:"genders"`
	MaritalStatuses []string `json:"marital_statuses"`
	Positions       []string `json:"positions"`
	MinScore        int      `json:"min_score"`
	MaxScore        int      `json:"max_score"`
	Seed            int64    `json:"seed"`
}

// DefaultEmployeeConfig returns defaults shaped like the HR export the dashboard was built for
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		EmployeeCount:   200,
		Genders:         []string{"Male", "Female"},
		MaritalStatuses: []string{"Single", "Married", "Divorced", "Widowed"},
		Positions:       []string{"Analyst", "Developer", "Designer", "Manager", "Sales", "Support"},
		MinScore:        1,
		MaxScore:        5,
		Seed:            42,
	}
}

var firstNames = []string{
	"Ana", "Luis", "Carmen", "Jorge", "Lucía", "Pedro", "Sofía", "Diego",
	"Valeria", "Andrés", "Camila", "Mateo", "Daniela", "Javier", "Paula", "Tomás",
}

var lastNames = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Pérez", "Sánchez",
	"Ramírez", "Torres", "Flores", "Rivera", "Gómez",
}

// positionBaseSalary gives each position a salary level; unknown positions use the default
var positionBaseSalary = map[string]float64{
	"Analyst":   48000,
	"Developer": 62000,
	"Designer":  52000,
	"Manager":   85000,
	"Sales":     45000,
	"Support":   38000,
}

// EmployeeGenerator generates deterministic employee records for a seed
type EmployeeGenerator struct {
	config EmployeeGeneratorConfig
	rng    *rand.Rand
}

// NewEmployeeGenerator creates a new employee generator
func NewEmployeeGenerator(config EmployeeGeneratorConfig) *EmployeeGenerator {
	return &EmployeeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords generates EmployeeCount records. Salary grows with age and
// position; performance loosely follows working hours with diminishing returns.
func (g *EmployeeGenerator) GenerateRecords() []employee.Record {
	records := make([]employee.Record, 0, g.config.EmployeeCount)
	for i := 0; i < g.config.EmployeeCount; i++ {
		records = append(records, g.generateEmployee(i))
	}
	return records
}

// GenerateTable renders the generated records as a raw table with an id column
// and the `name_employee` header used by the original HR export.
func (g *EmployeeGenerator) GenerateTable() *ports.Table {
	headers := []string{
		"id_employee", "name_employee", employee.ColGender, employee.ColMaritalStatus, employee.ColAge,
		employee.ColSalary, employee.ColAverageWorkHours, employee.ColPerformanceScore, employee.ColPosition,
	}

	records := g.GenerateRecords()
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("E%04d", i+1),
			r.Name,
			r.Gender,
			r.MaritalStatus,
			strconv.Itoa(r.Age),
			strconv.FormatFloat(r.Salary, 'f', 2, 64),
			strconv.FormatFloat(r.AverageWorkHours, 'f', 1, 64),
			strconv.Itoa(r.PerformanceScore),
			r.Position,
		})
	}

	return &ports.Table{Source: "testkit", Headers: headers, Rows: rows}
}

// GenerateDataset is GenerateTable parsed into a dataset
func (g *EmployeeGenerator) GenerateDataset() (*employee.Dataset, error) {
	return employee.FromTable(g.GenerateTable())
}

func (g *EmployeeGenerator) generateEmployee(i int) employee.Record {
	age := 22 + g.rng.Intn(40)
	position := g.pick(g.config.Positions)

	base, ok := positionBaseSalary[position]
	if !ok {
		base = 50000
	}
	salary := base * (1 + 0.015*float64(age-22)) * (0.9 + 0.2*g.rng.Float64())

	hours := clampFloat(42+g.rng.NormFloat64()*5, 30, 60)

	// Score peaks around 45h/week, then declines
	quality := 1 - math.Abs(hours-45)/20 + g.rng.NormFloat64()*0.25
	span := float64(g.config.MaxScore - g.config.MinScore)
	score := g.config.MinScore + int(math.Round(clampFloat(quality, 0, 1)*span))

	return employee.Record{
		Row:              i,
		Name:             fmt.Sprintf("%s %s", g.pick(firstNames), g.pick(lastNames)),
		Gender:           g.pick(g.config.Genders),
		MaritalStatus:    g.pick(g.config.MaritalStatuses),
		Age:              age,
		Salary:           math.Round(salary*100) / 100,
		AverageWorkHours: math.Round(hours*10) / 10,
		PerformanceScore: score,
		Position:         position,
	}
}

func (g *EmployeeGenerator) pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[g.rng.Intn(len(values))]
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

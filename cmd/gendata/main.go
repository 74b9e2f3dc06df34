package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"perfdash/adapters/excel"
	"perfdash/internal/testkit"
)

func main() {
	out := flag.String("out", "employee_data.csv", "output file path")
	n := flag.Int("n", 200, "number of employees")
	format := flag.String("format", "", "output format: csv or xlsx (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	flag.Parse()

	if *n <= 0 {
		fmt.Fprintln(os.Stderr, "n must be > 0")
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".xlsx":
			fmtName = "xlsx"
		default:
			fmtName = "csv"
		}
	}

	writer, err := excel.NewWriter(fmtName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := testkit.DefaultEmployeeConfig()
	cfg.EmployeeCount = *n
	cfg.Seed = *seed

	table := testkit.NewEmployeeGenerator(cfg).GenerateTable()
	data, err := writer.WriteTable(table.Headers, table.Rows)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error encoding dataset:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "error writing dataset:", err)
		os.Exit(1)
	}

	fmt.Printf("Employee dataset created: %s\n", *out)
	fmt.Printf("Total Columns: %d | Total Rows: %d\n", len(table.Headers), len(table.Rows))
}

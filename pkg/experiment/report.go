package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReportFileName derives the deterministic file name for a problem's
// report: suite id plus algorithm family.
func ReportFileName(report *Report) string {
	return fmt.Sprintf("%s_%s.json", report.Problem, report.Algorithm)
}

// WriteReport serializes a finalized report into dir, one file per problem
// id, and returns the written path. Numeric matrices serialize as nested
// arrays of numbers.
func WriteReport(dir string, report *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ReportFileName(report))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadReport reads a report back from disk. Round-tripping reproduces the
// numeric values exactly.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &report, nil
}

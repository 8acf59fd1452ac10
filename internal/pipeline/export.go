package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportPath builds a timestamped artifact name inside dir, e.g.
// outreach_run_20260829_153045.json.
func ExportPath(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("outreach_run_%s.%s", now.Format("20060102_150405"), format))
}

// WriteJSON writes the full run artifact.
func WriteJSON(path string, res *Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ReadExport loads a JSON artifact written by WriteJSON.
func ReadExport(path string) (*Result, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	var res Result
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &res, nil
}

var csvHeader = []string{"first_name", "last_name", "company", "domain", "email", "title", "linkedin", "source"}

// WriteCSV writes one row per prospect. Company and summary data are only
// carried by the JSON format.
func WriteCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range res.Prospects {
		row := []string{p.FirstName, p.LastName, p.CompanyName, p.CompanyDomain, p.Email, p.JobTitle, p.LinkedIn, p.Source}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/outreach"
)

func TestExportPath(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 45, 0, time.UTC)
	got := ExportPath("/tmp/out", "json", now)
	if filepath.Base(got) != "outreach_run_20260829_153045.json" {
		t.Fatalf("path = %q", got)
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	res := &Result{
		Goal:      "backend roles",
		StartedAt: time.Now().UTC().Round(time.Second),
		Companies: []domain.Company{{Name: "Acme", Domain: "acme.com"}},
		Prospects: []domain.Prospect{
			{FirstName: "Ann", LastName: "Lee", CompanyName: "Acme", Email: "ann@acme.com"},
			{FirstName: "Bob", LastName: "Ray", CompanyName: "Globex", Email: "bob@globex.com"},
		},
		EmailsFound: 2,
		Send:        &outreach.Summary{Total: 2, Sent: 2},
	}

	path := filepath.Join(t.TempDir(), "run.json")
	if err := WriteJSON(path, res); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadExport(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Goal != res.Goal || got.EmailsFound != 2 || got.Send.Sent != 2 {
		t.Fatalf("round trip lost summary: %+v", got)
	}
	for i, p := range got.Prospects {
		orig := res.Prospects[i]
		if p.FirstName != orig.FirstName || p.CompanyName != orig.CompanyName || p.Email != orig.Email {
			t.Fatalf("prospect %d round trip: got %+v want %+v", i, p, orig)
		}
	}
}

func TestCSVExportRowPerProspect(t *testing.T) {
	res := &Result{
		Prospects: []domain.Prospect{
			{FirstName: "Ann", LastName: "Lee", CompanyName: "Acme", Email: "ann@acme.com", Source: "company-search"},
		},
	}

	path := filepath.Join(t.TempDir(), "run.csv")
	if err := WriteCSV(path, res); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0] != "first_name" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "Ann" || rows[1][2] != "Acme" || rows[1][4] != "ann@acme.com" {
		t.Fatalf("row = %v", rows[1])
	}
}

package domain

import (
	"reflect"
	"testing"
)

func TestDedupeCompaniesCaseInsensitive(t *testing.T) {
	in := []Company{
		{Name: "Acme"},
		{Name: "ACME", Domain: "acme.com"},
		{Name: "Globex"},
		{Name: "acme"},
	}
	got := DedupeCompanies(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Acme" || got[1].Name != "Globex" {
		t.Fatalf("first-seen order not preserved: %+v", got)
	}
}

func TestDedupeCompaniesDropsEmptyNames(t *testing.T) {
	got := DedupeCompanies([]Company{{Name: "  "}, {Name: "Acme"}})
	if len(got) != 1 || got[0].Name != "Acme" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestDedupeProspectsByNameAndCompany(t *testing.T) {
	in := []Prospect{
		{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme", JobTitle: "Recruiter"},
		{FirstName: "jane", LastName: "DOE", CompanyName: "acme", Email: "jane@acme.com"},
		{FirstName: "Jane", LastName: "Doe", CompanyName: "Globex"},
		{FirstName: "John", LastName: "Doe", CompanyName: "Acme"},
	}
	got := DedupeProspects(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 prospects, got %d", len(got))
	}
	// Survivor is the first-seen record, other fields notwithstanding.
	if got[0].JobTitle != "Recruiter" || got[0].Email != "" {
		t.Fatalf("expected first-seen record to survive, got %+v", got[0])
	}
	if got[1].CompanyName != "Globex" || got[2].FirstName != "John" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestProspectKeyIgnoresOtherFields(t *testing.T) {
	a := Prospect{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme", Email: "a@acme.com"}
	b := Prospect{FirstName: "JANE", LastName: "doe", CompanyName: "ACME", LinkedIn: "https://linkedin.com/in/jd"}
	if a.Key() != b.Key() {
		t.Fatalf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestWithEmail(t *testing.T) {
	in := []Prospect{
		{FirstName: "A", CompanyName: "X", Email: "a@x.com"},
		{FirstName: "B", CompanyName: "Y"},
		{FirstName: "C", CompanyName: "Z", Email: "c@z.com"},
	}
	got := WithEmail(in)
	want := []string{"a@x.com", "c@z.com"}
	var emails []string
	for _, p := range got {
		emails = append(emails, p.Email)
	}
	if !reflect.DeepEqual(emails, want) {
		t.Fatalf("got %v want %v", emails, want)
	}
}

func TestFullName(t *testing.T) {
	if got := (Prospect{FirstName: "Jane", LastName: "Doe"}).FullName(); got != "Jane Doe" {
		t.Errorf("got %q", got)
	}
	if got := (Prospect{FirstName: "Jane"}).FullName(); got != "Jane" {
		t.Errorf("got %q", got)
	}
}

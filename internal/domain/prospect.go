package domain

import "strings"

// Company is a discovered employer. Identity is the lower-cased name only;
// two companies with the same name but different domains are the same entity.
type Company struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// Key returns the canonical identity key for map/set lookups.
func (c Company) Key() string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// Prospect is a candidate outreach contact.
type Prospect struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	CompanyName   string `json:"company_name"`
	CompanyDomain string `json:"company_domain,omitempty"`
	// DomainGuessed marks a fabricated domain (derived from the company name)
	// as opposed to one extracted from search results.
	DomainGuessed bool   `json:"domain_guessed,omitempty"`
	LinkedIn      string `json:"linkedin_profile,omitempty"`
	Email         string `json:"email,omitempty"`
	JobTitle      string `json:"job_title,omitempty"`
	Source        string `json:"source,omitempty"` // company-search | linkedin
}

// Key is the canonical identity: (lower first, lower last, lower company).
func (p Prospect) Key() string {
	return strings.ToLower(p.FirstName) + "\x00" +
		strings.ToLower(p.LastName) + "\x00" +
		strings.ToLower(p.CompanyName)
}

func (p Prospect) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// DedupeCompanies collapses case-variant duplicates, keeping first-seen order.
func DedupeCompanies(in []Company) []Company {
	seen := map[string]bool{}
	var out []Company
	for _, c := range in {
		k := c.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// DedupeProspects collapses exact-key duplicates, keeping first-seen order.
func DedupeProspects(in []Prospect) []Prospect {
	seen := map[string]bool{}
	var out []Prospect
	for _, p := range in {
		k := p.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// WithEmail filters to prospects that have an email address, preserving order.
func WithEmail(in []Prospect) []Prospect {
	var out []Prospect
	for _, p := range in {
		if p.Email != "" {
			out = append(out, p)
		}
	}
	return out
}

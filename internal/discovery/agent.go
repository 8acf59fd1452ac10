package discovery

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/llm"
	"outreach-engine/internal/search"
)

// Searcher is the web-search provider contract consumed by the agent.
type Searcher interface {
	Search(ctx context.Context, req search.Request) ([]search.Result, error)
}

// Completer is the language-model contract consumed by the agent.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts llm.CompleteOptions) (string, error)
}

// Agent turns unstructured search text into structured company and prospect
// records. Extraction failures are never fatal: callers get an empty slice.
type Agent struct {
	search Searcher
	llm    Completer
	depth  string
	days   int
	now    func() time.Time
}

func NewAgent(s Searcher, c Completer, depth string, days int) *Agent {
	if days <= 0 {
		days = 45
	}
	return &Agent{search: s, llm: c, depth: depth, days: days, now: time.Now}
}

// SearchCompanies finds companies hiring for the given goal. The returned set
// is de-duplicated by lower-cased name; names shorter than 3 characters after
// trimming are discarded.
func (a *Agent) SearchCompanies(ctx context.Context, goal string, maxResults int) ([]domain.Company, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	log.Printf("[discovery] searching companies: %s", goal)

	results, err := a.search.Search(ctx, search.Request{
		Query:      goal + " companies hiring job openings",
		MaxResults: maxResults,
		Depth:      a.depth,
		Days:       a.days,
	})
	if err != nil {
		return nil, fmt.Errorf("company search: %w", err)
	}

	results = search.FilterRecent(results, search.Cutoff(a.now(), a.days))
	blob := buildBlob(results, 3000)
	if blob == "" {
		return nil, nil
	}

	names := a.extractCompanyNames(ctx, goal, blob)
	var companies []domain.Company
	for _, name := range names {
		name = strings.TrimSpace(name)
		if len(name) <= 2 {
			continue
		}
		companies = append(companies, domain.Company{Name: name})
	}
	companies = domain.DedupeCompanies(companies)
	log.Printf("[discovery] found %d unique companies (within %d days)", len(companies), a.days)
	return companies, nil
}

// SearchProspects finds hiring managers and recruiters at one company.
// A failed search is logged and yields zero prospects, not an error.
func (a *Agent) SearchProspects(ctx context.Context, company domain.Company, maxResults int) []domain.Prospect {
	if maxResults <= 0 {
		maxResults = 10
	}
	log.Printf("[discovery] searching prospects at %s", company.Name)

	results, err := a.search.Search(ctx, search.Request{
		Query:      "hiring manager recruiter jobs at " + company.Name + " LinkedIn",
		MaxResults: maxResults,
		Depth:      a.depth,
		Days:       a.days,
	})
	if err != nil {
		log.Printf("[discovery] prospect search at %s failed: %v", company.Name, err)
		return nil
	}

	results = search.FilterRecent(results, search.Cutoff(a.now(), a.days))
	blob := buildBlob(results, 3000)
	if blob == "" {
		return nil
	}

	var prospects []domain.Prospect
	for _, rec := range a.extractProspects(ctx, company.Name, blob) {
		first, last := domain.ParseName(rec.Name)
		if first == "" {
			continue
		}
		prospects = append(prospects, domain.Prospect{
			FirstName:     first,
			LastName:      last,
			CompanyName:   company.Name,
			CompanyDomain: company.Domain,
			LinkedIn:      rec.LinkedIn,
			JobTitle:      rec.Title,
			Source:        "company-search",
		})
	}
	log.Printf("[discovery] found %d prospects at %s", len(prospects), company.Name)
	return prospects
}

// SearchProfilesDirectly searches one professional-network domain for profiles
// matching the query, asking the model to also guess each employer's domain.
func (a *Agent) SearchProfilesDirectly(ctx context.Context, query string, maxResults int) []domain.Prospect {
	if maxResults <= 0 {
		maxResults = 5
	}
	log.Printf("[discovery] searching linkedin profiles: %s (within %d days)", query, a.days)

	results, err := a.search.Search(ctx, search.Request{
		Query:          query + " linkedin profiles",
		MaxResults:     maxResults,
		Depth:          a.depth,
		IncludeDomains: []string{"linkedin.com"},
		Days:           a.days,
	})
	if err != nil {
		log.Printf("[discovery] linkedin search failed: %v", err)
		return nil
	}

	results = search.FilterRecent(results, search.Cutoff(a.now(), a.days))
	if len(results) == 0 {
		log.Printf("[discovery] no linkedin results within %d days", a.days)
		return nil
	}

	blob := buildLeadBlob(results, 5000)
	var prospects []domain.Prospect
	for _, lead := range a.extractLeads(ctx, blob) {
		first := strings.TrimSpace(lead.FirstName)
		if first == "" {
			continue
		}
		dom := domain.ExtractDomain(lead.Domain)
		prospects = append(prospects, domain.Prospect{
			FirstName:     first,
			LastName:      strings.TrimSpace(lead.LastName),
			CompanyName:   domain.CompanyNameFromDomain(dom),
			CompanyDomain: dom,
			LinkedIn:      strings.TrimSpace(lead.LinkedInURL),
			Source:        "linkedin",
		})
	}
	log.Printf("[discovery] found %d prospects from linkedin search", len(prospects))
	return prospects
}

// buildBlob concatenates titles, snippets and URLs into the extraction input,
// capped at maxLen bytes.
func buildBlob(results []search.Result, maxLen int) string {
	var b strings.Builder
	for _, r := range results {
		content := search.FlattenSnippet(r.Content)
		if len(content) > 500 {
			content = content[:500]
		}
		date := r.PublishedDate
		if date == "" {
			date = "N/A"
		}
		fmt.Fprintf(&b, "Title: %s\nContent: %s\nURL: %s\nDate: %s\n\n", r.Title, content, r.URL, date)
	}
	s := b.String()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return strings.TrimSpace(s)
}

func buildLeadBlob(results []search.Result, maxLen int) string {
	var b strings.Builder
	for _, r := range results {
		date := r.PublishedDate
		if date == "" {
			date = "N/A"
		}
		fmt.Fprintf(&b, "URL: %s\nContent: %s\nDate: %s\n---\n", r.URL, search.FlattenSnippet(r.Content), date)
	}
	s := b.String()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

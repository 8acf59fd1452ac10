package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"outreach-engine/internal/llm"
)

type prospectRecord struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	LinkedIn string `json:"linkedin"`
}

type leadRecord struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Domain      string `json:"domain"`
	LinkedInURL string `json:"linkedin_url"`
}

// extractCompanyNames asks the model for company names, one per line.
// Any failure is logged and treated as zero names.
func (a *Agent) extractCompanyNames(ctx context.Context, goal, blob string) []string {
	prompt := fmt.Sprintf(`Extract company names from the following job search results related to %q.
Return only the company names, one per line. Do not include explanations or other text.
Focus on companies that are actively hiring or have job openings.

Search Results:
%s

Company names:`, goal, blob)

	out, err := a.llm.Complete(ctx,
		"You are a helpful assistant that extracts company names from job search results. Return only company names, one per line.",
		prompt,
		llm.CompleteOptions{Temperature: 0.3, MaxTokens: 500},
	)
	if err != nil {
		log.Printf("[discovery] company extraction failed: %v", err)
		return nil
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line == "" {
			continue
		}
		names = append(names, line)
		if len(names) == 20 {
			break
		}
	}
	return names
}

// extractProspects asks the model for a JSON array of people. Malformed JSON
// is logged at warning level and treated as zero records.
func (a *Agent) extractProspects(ctx context.Context, companyName, blob string) []prospectRecord {
	prompt := fmt.Sprintf(`Extract hiring manager and recruiter information from the following search results for %s.
For each person found, extract:
- Full name
- Job title (if mentioned)
- LinkedIn profile URL (if mentioned)

Return the results as a JSON object with a "prospects" key containing an array of objects with keys: name, title, linkedin.

Search Results:
%s

JSON:`, companyName, blob)

	out, err := a.llm.Complete(ctx,
		"You are a helpful assistant that extracts hiring manager and recruiter information. Return a JSON object with a 'prospects' key containing an array of prospect objects.",
		prompt,
		llm.CompleteOptions{Temperature: 0.3, ForceJSON: true},
	)
	if err != nil {
		log.Printf("[discovery] prospect extraction failed: %v", err)
		return nil
	}

	recs, ok := parseProspectJSON(out)
	if !ok {
		log.Printf("[discovery] warning: prospect extraction returned malformed JSON")
		return nil
	}
	return recs
}

func (a *Agent) extractLeads(ctx context.Context, blob string) []leadRecord {
	prompt := fmt.Sprintf(`You are a lead generation expert. Extract a list of people and their LinkedIn URLs from the text below.
Format as a JSON object with a key 'leads'.
Guess the company domain (e.g., 'consultadd.com') if not explicitly mentioned.

TEXT:
%s

OUTPUT FORMAT:
{
  "leads": [
    {"first_name": "...", "last_name": "...", "domain": "...", "linkedin_url": "..."}
  ]
}`, blob)

	out, err := a.llm.Complete(ctx,
		"You are a lead generation expert. Extract people's information from LinkedIn search results. Return only valid JSON.",
		prompt,
		llm.CompleteOptions{Temperature: 0.3, ForceJSON: true},
	)
	if err != nil {
		log.Printf("[discovery] lead extraction failed: %v", err)
		return nil
	}

	var payload struct {
		Leads []leadRecord `json:"leads"`
	}
	if err := json.Unmarshal([]byte(stripFences(out)), &payload); err != nil {
		log.Printf("[discovery] warning: lead extraction returned malformed JSON: %v", err)
		return nil
	}
	return payload.Leads
}

// parseProspectJSON tolerates the shapes models actually return: a bare
// array, an object with a "prospects" key, or a single object.
func parseProspectJSON(out string) ([]prospectRecord, bool) {
	raw := stripFences(out)

	var arr []prospectRecord
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return arr, true
	}

	var wrapped struct {
		Prospects []prospectRecord `json:"prospects"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && wrapped.Prospects != nil {
		return wrapped.Prospects, true
	}

	var single prospectRecord
	if err := json.Unmarshal([]byte(raw), &single); err == nil && single.Name != "" {
		return []prospectRecord{single}, true
	}

	return nil, false
}

// stripFences removes a markdown code fence around a JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

package search

import (
	"log"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterRecent drops results whose parseable publish date is older than the
// cutoff (cutoff itself is kept). Results with a missing or unparseable date
// are kept: the policy favors inclusion over exclusion on ambiguous data.
func FilterRecent(results []Result, cutoff time.Time) []Result {
	kept := make([]Result, 0, len(results))
	for _, r := range results {
		if r.PublishedDate == "" {
			kept = append(kept, r)
			continue
		}
		d, ok := parseDate(r.PublishedDate)
		if !ok {
			kept = append(kept, r)
			continue
		}
		if d.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) != len(results) {
		log.Printf("[search] date filter: %d results -> %d results", len(results), len(kept))
	}
	return kept
}

// Cutoff returns the recency boundary for a window of N days ending now.
func Cutoff(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

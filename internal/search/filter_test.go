package search

import (
	"testing"
	"time"
)

func TestFilterRecentBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	cutoff := Cutoff(now, 45)

	results := []Result{
		{Title: "too old", PublishedDate: cutoff.AddDate(0, 0, -1).Format(time.RFC3339)},
		{Title: "exactly cutoff", PublishedDate: cutoff.Format(time.RFC3339)},
		{Title: "recent", PublishedDate: cutoff.AddDate(0, 0, 1).Format(time.RFC3339)},
		{Title: "no date"},
		{Title: "garbage date", PublishedDate: "soonish"},
	}

	got := FilterRecent(results, cutoff)
	want := []string{"exactly cutoff", "recent", "no date", "garbage date"}
	if len(got) != len(want) {
		t.Fatalf("kept %d results, want %d: %+v", len(got), len(want), got)
	}
	for i, r := range got {
		if r.Title != want[i] {
			t.Errorf("kept[%d] = %q, want %q", i, r.Title, want[i])
		}
	}
}

func TestFilterRecentParsesBareDates(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []Result{
		{Title: "old", PublishedDate: "2025-11-30"},
		{Title: "new", PublishedDate: "2026-02-01"},
	}
	got := FilterRecent(results, cutoff)
	if len(got) != 1 || got[0].Title != "new" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFlattenSnippet(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain  text\n here", "plain text here"},
		{"<p>Hiring <b>now</b> at Acme</p>", "Hiring now at Acme"},
		{"", ""},
	}
	for _, c := range cases {
		if got := FlattenSnippet(c.in); got != c.want {
			t.Errorf("FlattenSnippet(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

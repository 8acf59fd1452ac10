package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"outreach-engine/internal/domain"
)

// FlattenSnippet reduces a result snippet to plain text. Some providers hand
// back HTML fragments in content fields; those get parsed and text-extracted,
// everything else just gets whitespace-normalized.
func FlattenSnippet(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return domain.CleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return domain.CleanText(s)
	}
	return domain.CleanText(doc.Text())
}

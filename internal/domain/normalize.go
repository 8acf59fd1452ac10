package domain

import (
	"net/mail"
	"strings"
	"unicode"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ParseName splits a full name on whitespace: first token becomes the first
// name, the rest joined become the last name. A single token is first-name only.
func ParseName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// ValidEmail reports whether s parses as a bare RFC 5322 address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// ExtractDomain pulls a bare host out of a URL or domain string.
func ExtractDomain(urlOrDomain string) string {
	d := strings.TrimSpace(urlOrDomain)
	if d == "" {
		return ""
	}
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/:?"); i >= 0 {
		d = d[:i]
	}
	return strings.ToLower(strings.TrimSpace(d))
}

// GuessDomain fabricates a plausible domain from a company name. It is a
// heuristic, not a lookup: lower-case, "&" -> "and", strip spaces, commas and
// periods, append ".com". Callers should mark the result as guessed.
func GuessDomain(companyName string) string {
	d := strings.ToLower(companyName)
	d = strings.ReplaceAll(d, "&", "and")
	d = strings.ReplaceAll(d, " ", "")
	d = strings.ReplaceAll(d, ",", "")
	d = strings.ReplaceAll(d, ".", "")
	if d == "" {
		return ""
	}
	return d + ".com"
}

// CompanyNameFromDomain derives a display name from a domain by stripping
// common TLD suffixes and title-casing the remainder. Empty input yields the
// "Unknown Company" placeholder.
func CompanyNameFromDomain(dom string) string {
	name := strings.TrimSpace(dom)
	for _, suffix := range []string{".com", ".io", ".co"} {
		name = strings.ReplaceAll(name, suffix, "")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown Company"
	}
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

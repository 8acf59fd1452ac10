package enrich

import (
	"context"
	"log"
	"strings"
	"time"

	"outreach-engine/internal/domain"
)

// Finder is the email-finder provider contract consumed by the agent.
type Finder interface {
	FindEmail(ctx context.Context, dom, firstName, lastName string) (FinderResult, error)
	DomainSearch(ctx context.Context, dom string) ([]DomainEmail, error)
}

// Agent attaches a verified or best-guess email address to a prospect.
type Agent struct {
	finder        Finder
	minConfidence int
	maxRetries    int
	retryDelay    time.Duration
	sleep         func(time.Duration)
}

func NewAgent(f Finder, minConfidence, maxRetries int, retryDelay time.Duration) *Agent {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Agent{
		finder:        f,
		minConfidence: minConfidence,
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
		sleep:         time.Sleep,
	}
}

// FindEmail resolves an address for the prospect. A prospect with no employer
// domain gets one fabricated from the company name first (and is marked as
// guessed). Transport failures are retried with linearly increasing delay;
// exhausting retries yields ("", false), never an error.
func (a *Agent) FindEmail(ctx context.Context, p *domain.Prospect) (string, bool) {
	if p.CompanyDomain == "" {
		dom := domain.GuessDomain(p.CompanyName)
		if dom == "" {
			log.Printf("[enrich] no domain available for %s", p.CompanyName)
			return "", false
		}
		p.CompanyDomain = dom
		p.DomainGuessed = true
	}

	log.Printf("[enrich] finding email for %s at %s", p.FullName(), p.CompanyDomain)

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		res, err := a.finder.FindEmail(ctx, p.CompanyDomain, p.FirstName, p.LastName)
		if err != nil {
			log.Printf("[enrich] attempt %d/%d failed for %s: %v", attempt, a.maxRetries, p.FullName(), err)
			if attempt < a.maxRetries {
				a.sleep(a.retryDelay * time.Duration(attempt))
				continue
			}
			log.Printf("[enrich] giving up on %s after %d attempts", p.FullName(), a.maxRetries)
			return "", false
		}

		if res.Email != "" && domain.ValidEmail(res.Email) && res.Score >= a.minConfidence {
			log.Printf("[enrich] found email for %s: %s (score: %d)", p.FullName(), res.Email, res.Score)
			return res.Email, true
		}
		if res.Email != "" {
			log.Printf("[enrich] email found but low confidence: %s (score: %d)", res.Email, res.Score)
		}

		// Broader domain-wide search, matched by exact name.
		return a.domainSearch(ctx, p)
	}

	return "", false
}

func (a *Agent) domainSearch(ctx context.Context, p *domain.Prospect) (string, bool) {
	emails, err := a.finder.DomainSearch(ctx, p.CompanyDomain)
	if err != nil {
		log.Printf("[enrich] domain search failed for %s: %v", p.CompanyDomain, err)
		return "", false
	}
	for _, e := range emails {
		if strings.EqualFold(e.FirstName, p.FirstName) && strings.EqualFold(e.LastName, p.LastName) {
			if domain.ValidEmail(e.Email) {
				log.Printf("[enrich] found email via domain search: %s", e.Email)
				return e.Email, true
			}
		}
	}
	return "", false
}

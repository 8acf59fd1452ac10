package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/outreach"
)

// ErrRunConsumed is returned when a Runner is asked to run a second time.
// A Runner carries the state of exactly one run; callers build a new one
// per run.
var ErrRunConsumed = errors.New("pipeline: runner already consumed")

// State names the phase a run is in.
type State string

const (
	StateIdle        State = "idle"
	StateDiscovering State = "discovering"
	StateEnriching   State = "enriching"
	StateSending     State = "sending"
	StateDone        State = "done"
	StateError       State = "error"
)

// Discoverer finds companies and prospects from web search.
type Discoverer interface {
	SearchCompanies(ctx context.Context, goal string, maxResults int) ([]domain.Company, error)
	SearchProspects(ctx context.Context, company domain.Company, maxResults int) []domain.Prospect
	SearchProfilesDirectly(ctx context.Context, query string, maxResults int) []domain.Prospect
}

// Enricher resolves a verified email address for a prospect.
type Enricher interface {
	FindEmail(ctx context.Context, p *domain.Prospect) (string, bool)
}

// Sender delivers the generated messages.
type Sender interface {
	SendBulk(ctx context.Context, prospects []domain.Prospect, opts outreach.BulkOptions) outreach.Summary
}

// Options configure one run.
type Options struct {
	Goal         string
	MaxCompanies int
	MaxProspects int // per company

	// LinkedIn switches to direct profile search instead of the
	// company-then-people walk.
	LinkedIn           bool
	MaxLinkedInResults int

	DryRun       bool
	TemplatePath string
	Subject      string
	User         *outreach.UserInfo

	// DropNoEmail removes prospects without a resolved address from the
	// result. The interactive server keeps them so the user can see who
	// was found.
	DropNoEmail bool

	// OnEvent, when set, receives progress notifications.
	OnEvent func(typ string, data any)
}

// Result is the artifact of one run.
type Result struct {
	Goal        string            `json:"goal"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Companies   []domain.Company  `json:"companies"`
	Prospects   []domain.Prospect `json:"prospects"`
	EmailsFound int               `json:"emails_found"`
	Send        *outreach.Summary `json:"send,omitempty"`
}

// Runner drives one discovery → enrichment → outreach run.
type Runner struct {
	discovery Discoverer
	enrich    Enricher
	sender    Sender

	mu       sync.Mutex
	state    State
	consumed bool

	now func() time.Time
}

func NewRunner(d Discoverer, e Enricher, s Sender) *Runner {
	return &Runner{discovery: d, enrich: e, sender: s, state: StateIdle, now: time.Now}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Runner) emit(opts Options, typ string, data any) {
	if opts.OnEvent != nil {
		opts.OnEvent(typ, data)
	}
}

// Run executes the full pipeline. Discovery failure is fatal; everything
// downstream degrades per item. The returned Result is valid even on error
// if any phase completed.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.mu.Lock()
	if r.consumed {
		r.mu.Unlock()
		return nil, ErrRunConsumed
	}
	r.consumed = true
	r.mu.Unlock()

	res := &Result{Goal: opts.Goal, StartedAt: r.now().UTC()}

	r.setState(StateDiscovering)
	r.emit(opts, "run_step", map[string]string{"step": string(StateDiscovering)})

	var prospects []domain.Prospect
	if opts.LinkedIn {
		prospects = r.discovery.SearchProfilesDirectly(ctx, opts.Goal, opts.MaxLinkedInResults)
	} else {
		companies, err := r.discovery.SearchCompanies(ctx, opts.Goal, opts.MaxCompanies)
		if err != nil {
			r.setState(StateError)
			res.FinishedAt = r.now().UTC()
			return res, err
		}
		res.Companies = companies
		log.Printf("[pipeline] discovered %d companies", len(companies))

		for _, c := range companies {
			prospects = append(prospects, r.discovery.SearchProspects(ctx, c, opts.MaxProspects)...)
		}
	}
	prospects = domain.DedupeProspects(prospects)
	log.Printf("[pipeline] discovered %d unique prospects", len(prospects))
	for _, p := range prospects {
		r.emit(opts, "prospect_found", p)
	}

	r.setState(StateEnriching)
	r.emit(opts, "run_step", map[string]string{"step": string(StateEnriching)})

	for i := range prospects {
		if email, ok := r.enrich.FindEmail(ctx, &prospects[i]); ok {
			prospects[i].Email = email
			res.EmailsFound++
		}
	}
	log.Printf("[pipeline] found %d email addresses", res.EmailsFound)

	if opts.DropNoEmail {
		kept := prospects[:0]
		for _, p := range prospects {
			if p.Email != "" {
				kept = append(kept, p)
			}
		}
		prospects = kept
	}
	res.Prospects = prospects

	sendable := prospects
	if !opts.DropNoEmail {
		sendable = nil
		for _, p := range prospects {
			if p.Email != "" {
				sendable = append(sendable, p)
			}
		}
	}

	r.setState(StateSending)
	r.emit(opts, "run_step", map[string]string{"step": string(StateSending)})

	sum := r.sender.SendBulk(ctx, sendable, outreach.BulkOptions{
		TemplatePath: opts.TemplatePath,
		Subject:      opts.Subject,
		DryRun:       opts.DryRun,
		User:         opts.User,
		OnSent: func(p domain.Prospect) {
			r.emit(opts, "email_sent", map[string]string{"to": p.Email})
		},
	})
	res.Send = &sum

	r.setState(StateDone)
	res.FinishedAt = r.now().UTC()
	r.emit(opts, "run_done", map[string]int{"sent": sum.Sent, "failed": sum.Failed})
	return res, nil
}

// LogSummary writes the human-readable end-of-run report.
func LogSummary(res *Result) {
	log.Printf("[pipeline] run complete in %s", res.FinishedAt.Sub(res.StartedAt).Round(time.Second))
	log.Printf("[pipeline]   companies:  %d", len(res.Companies))
	log.Printf("[pipeline]   prospects:  %d", len(res.Prospects))
	log.Printf("[pipeline]   emails:     %d found", res.EmailsFound)
	if res.Send != nil {
		log.Printf("[pipeline]   sent:       %d ok, %d failed", res.Send.Sent, res.Send.Failed)
	}
}

package outreach

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/llm"
)

// Completer is the language-model contract consumed by the agent.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts llm.CompleteOptions) (string, error)
}

// UserInfo is the sender profile used to personalize messages.
type UserInfo struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Skills string `json:"skills"`
	Goal   string `json:"goal"`
}

// Agent drafts personalized messages and dispatches them through the
// configured transport.
type Agent struct {
	llm       Completer
	transport Transport
	pacer     Pacer
}

func NewAgent(c Completer, t Transport, p Pacer) *Agent {
	return &Agent{llm: c, transport: t, pacer: p}
}

// DefaultSubject is used when the caller supplies none.
func DefaultSubject(p domain.Prospect) string {
	return "Quick question regarding " + p.CompanyName
}

// GenerateMessage drafts a short personalized message body. A missing
// template file is a warning, not a failure.
func (a *Agent) GenerateMessage(ctx context.Context, p domain.Prospect, templatePath string, user *UserInfo) (string, error) {
	log.Printf("[outreach] generating message for %s", p.FullName())

	template := ""
	if templatePath != "" {
		b, err := os.ReadFile(templatePath)
		if err != nil {
			log.Printf("[outreach] template file not found: %s, using default", templatePath)
		} else {
			template = string(b)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise, professional email to %s at %s.\n\n", p.FullName(), p.CompanyName)
	b.WriteString("The email should:\n")
	b.WriteString("- Be brief and friendly (2-3 short paragraphs)\n")
	fmt.Fprintf(&b, "- Mention that you were researching %s\n", p.CompanyName)
	b.WriteString("- Express interest in opportunities or collaboration\n")
	b.WriteString("- Request a brief conversation\n")
	b.WriteString("- Use a casual but professional tone\n")
	if user != nil {
		if user.Skills != "" {
			fmt.Fprintf(&b, "- Mention the sender's relevant skills: %s\n", user.Skills)
		}
		if user.Goal != "" {
			fmt.Fprintf(&b, "- Keep the sender's goal in mind: %s\n", user.Goal)
		}
		if user.Name != "" {
			fmt.Fprintf(&b, "- Sign off with the sender's name: %s\n", user.Name)
		}
	}
	if template != "" {
		fmt.Fprintf(&b, "\nUse this template as a guide:\n%s\n", template)
	}
	fmt.Fprintf(&b, "\nGenerate the email body only (no subject line). Start with \"Hi %s,\":", p.FirstName)

	body, err := a.llm.Complete(ctx,
		"You are a professional email writer who creates brief, friendly, and effective outreach emails.",
		b.String(),
		llm.CompleteOptions{Temperature: 0.7, MaxTokens: 300},
	)
	if err != nil {
		return "", fmt.Errorf("generate message: %w", err)
	}
	return body, nil
}

// SendMessage delivers one message. An invalid recipient is a local failure
// and never reaches the transport; dry-run logs the intended send and
// succeeds without any network call.
func (a *Agent) SendMessage(ctx context.Context, p domain.Prospect, subject, body string, dryRun bool) bool {
	if !domain.ValidEmail(p.Email) {
		log.Printf("[outreach] invalid email address: %q", p.Email)
		return false
	}

	if dryRun {
		log.Printf("[outreach] DRY RUN: would send to %s", p.Email)
		log.Printf("[outreach] subject: %s", subject)
		log.Printf("[outreach] body:\n%s", body)
		return true
	}

	sess, err := a.transport.Connect(ctx)
	if err != nil {
		log.Printf("[outreach] connect failed: %v", err)
		return false
	}
	defer sess.Close()

	if err := sess.Send(p.Email, subject, body); err != nil {
		log.Printf("[outreach] send to %s failed: %v", p.Email, err)
		return false
	}
	log.Printf("[outreach] sent to %s (%s)", p.FullName(), p.Email)
	return true
}

// Summary is the outcome of a bulk send.
type Summary struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// BulkOptions tune one bulk send.
type BulkOptions struct {
	TemplatePath string
	Subject      string // empty = per-prospect default subject
	DryRun       bool
	User         *UserInfo
	OnSent       func(p domain.Prospect) // optional progress callback
}

// SendBulk processes prospects strictly in input order over one transport
// session, pausing between messages. Per-item failures are counted and the
// batch continues; a session-connect failure marks everything failed.
func (a *Agent) SendBulk(ctx context.Context, prospects []domain.Prospect, opts BulkOptions) Summary {
	sum := Summary{Total: len(prospects)}
	if len(prospects) == 0 {
		return sum
	}

	if opts.DryRun {
		log.Printf("[outreach] DRY RUN: would send %d messages", len(prospects))
		for _, p := range prospects {
			body, err := a.GenerateMessage(ctx, p, opts.TemplatePath, opts.User)
			if err != nil {
				log.Printf("[outreach] generation failed for %s: %v", p.FullName(), err)
				sum.Failed++
				continue
			}
			if a.SendMessage(ctx, p, subjectFor(p, opts.Subject), body, true) {
				sum.Sent++
				if opts.OnSent != nil {
					opts.OnSent(p)
				}
			} else {
				sum.Failed++
			}
		}
		return sum
	}

	sess, err := a.transport.Connect(ctx)
	if err != nil {
		log.Printf("[outreach] connection error: %v", err)
		sum.Failed = len(prospects)
		return sum
	}
	defer sess.Close()
	log.Printf("[outreach] transport session established")

	for i, p := range prospects {
		log.Printf("[outreach] processing %d/%d: %s", i+1, len(prospects), p.FullName())

		if !domain.ValidEmail(p.Email) {
			log.Printf("[outreach] invalid email address: %q", p.Email)
			sum.Failed++
			continue
		}

		body, err := a.GenerateMessage(ctx, p, opts.TemplatePath, opts.User)
		if err != nil {
			log.Printf("[outreach] generation failed for %s: %v", p.FullName(), err)
			sum.Failed++
			continue
		}

		if err := sess.Send(p.Email, subjectFor(p, opts.Subject), body); err != nil {
			log.Printf("[outreach] send to %s failed: %v", p.Email, err)
			sum.Failed++
			continue
		}

		log.Printf("[outreach] sent to %s (%s)", p.FullName(), p.Email)
		sum.Sent++
		if opts.OnSent != nil {
			opts.OnSent(p)
		}

		// pace between messages, never after the last one
		if i < len(prospects)-1 {
			a.pacer.Pause()
		}
	}

	log.Printf("[outreach] bulk send complete: %d sent, %d failed", sum.Sent, sum.Failed)
	return sum
}

func subjectFor(p domain.Prospect, override string) string {
	if override != "" {
		return override
	}
	return DefaultSubject(p)
}

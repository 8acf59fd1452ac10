package outreach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/llm"
)

type fakeCompleter struct {
	reply string
	err   error
	calls []string
}

func (f *fakeCompleter) Complete(_ context.Context, _, user string, _ llm.CompleteOptions) (string, error) {
	f.calls = append(f.calls, user)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSession struct {
	sent    []string
	sendErr map[string]error
	closed  bool
}

func (s *fakeSession) Send(to, subject, body string) error {
	if err, ok := s.sendErr[to]; ok {
		return err
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeTransport struct {
	sess       *fakeSession
	connectErr error
	connects   int
}

func (t *fakeTransport) Connect(context.Context) (Session, error) {
	t.connects++
	if t.connectErr != nil {
		return nil, t.connectErr
	}
	return t.sess, nil
}

type countingPacer struct{ pauses int }

func (p *countingPacer) Pause() { p.pauses++ }

func prospect(first, last, email string) domain.Prospect {
	return domain.Prospect{
		FirstName:   first,
		LastName:    last,
		CompanyName: "Acme",
		Email:       email,
	}
}

func TestSendBulkPacesBetweenMessagesOnly(t *testing.T) {
	sess := &fakeSession{}
	tr := &fakeTransport{sess: sess}
	pacer := &countingPacer{}
	a := NewAgent(&fakeCompleter{reply: "Hi there,"}, tr, pacer)

	prospects := []domain.Prospect{
		prospect("Ann", "Lee", "ann@acme.com"),
		prospect("Bob", "Ray", "bob@acme.com"),
		prospect("Cat", "Orr", "cat@acme.com"),
	}
	sum := a.SendBulk(context.Background(), prospects, BulkOptions{})

	if sum.Sent != 3 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if pacer.pauses != 2 {
		t.Fatalf("pauses = %d, want 2 (never after the last message)", pacer.pauses)
	}
	if tr.connects != 1 {
		t.Fatalf("connects = %d, want one session per batch", tr.connects)
	}
	if !sess.closed {
		t.Fatal("session not closed")
	}
}

func TestSendBulkConnectFailureFailsAll(t *testing.T) {
	tr := &fakeTransport{connectErr: errors.New("tls handshake")}
	a := NewAgent(&fakeCompleter{reply: "hi"}, tr, &countingPacer{})

	sum := a.SendBulk(context.Background(), []domain.Prospect{
		prospect("Ann", "Lee", "ann@acme.com"),
		prospect("Bob", "Ray", "bob@acme.com"),
	}, BulkOptions{})

	if sum.Sent != 0 || sum.Failed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestSendBulkContinuesPastPerItemFailures(t *testing.T) {
	sess := &fakeSession{sendErr: map[string]error{"bob@acme.com": errors.New("550 rejected")}}
	tr := &fakeTransport{sess: sess}
	a := NewAgent(&fakeCompleter{reply: "hi"}, tr, &countingPacer{})

	prospects := []domain.Prospect{
		prospect("Ann", "Lee", "ann@acme.com"),
		prospect("Bob", "Ray", "bob@acme.com"),
		prospect("", "", "not-an-email"),
		prospect("Cat", "Orr", "cat@acme.com"),
	}
	sum := a.SendBulk(context.Background(), prospects, BulkOptions{})

	if sum.Sent != 2 || sum.Failed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(sess.sent) != 2 || sess.sent[0] != "ann@acme.com" || sess.sent[1] != "cat@acme.com" {
		t.Fatalf("sent = %v", sess.sent)
	}
}

func TestSendBulkDryRunSkipsTransportAndPacing(t *testing.T) {
	tr := &fakeTransport{connectErr: errors.New("must not be dialed")}
	pacer := &countingPacer{}
	a := NewAgent(&fakeCompleter{reply: "hi"}, tr, pacer)

	prospects := []domain.Prospect{
		prospect("Ann", "Lee", "ann@acme.com"),
		prospect("", "", "not-an-email"),
	}
	var notified []string
	sum := a.SendBulk(context.Background(), prospects, BulkOptions{
		DryRun: true,
		OnSent: func(p domain.Prospect) { notified = append(notified, p.Email) },
	})

	if tr.connects != 0 {
		t.Fatal("dry run must not open a transport session")
	}
	if pacer.pauses != 0 {
		t.Fatal("dry run must not pace")
	}
	if sum.Sent != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	// progress callbacks fire for dry-run successes too, so counters built
	// on them stay in step with the summary
	if len(notified) != 1 || notified[0] != "ann@acme.com" {
		t.Fatalf("notified = %v", notified)
	}
}

func TestSendMessageValidation(t *testing.T) {
	a := NewAgent(&fakeCompleter{}, &fakeTransport{connectErr: errors.New("no dial")}, &countingPacer{})

	if a.SendMessage(context.Background(), prospect("X", "Y", "not-an-email"), "s", "b", true) {
		t.Fatal("invalid address must fail even in dry run")
	}
	if !a.SendMessage(context.Background(), prospect("X", "Y", "x@y.com"), "s", "b", true) {
		t.Fatal("dry run with valid address must succeed")
	}
}

func TestGenerateMessagePrompt(t *testing.T) {
	c := &fakeCompleter{reply: "  Hi Ann,\nbody  "}
	a := NewAgent(c, &fakeTransport{}, &countingPacer{})

	p := prospect("Ann", "Lee", "ann@acme.com")
	body, err := a.GenerateMessage(context.Background(), p, "", &UserInfo{
		Name:   "Sam Poe",
		Skills: "Go, SQL",
		Goal:   "backend roles",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if body != "  Hi Ann,\nbody  " {
		t.Fatalf("body = %q", body)
	}

	prompt := c.calls[0]
	for _, want := range []string{"Ann Lee", "Acme", "Go, SQL", "backend roles", "Sam Poe", `Start with "Hi Ann,"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateMessageMissingTemplateIsNotFatal(t *testing.T) {
	c := &fakeCompleter{reply: "Hi Ann,"}
	a := NewAgent(c, &fakeTransport{}, &countingPacer{})

	if _, err := a.GenerateMessage(context.Background(), prospect("Ann", "Lee", "a@b.com"), "/no/such/template.txt", nil); err != nil {
		t.Fatalf("missing template must not fail generation: %v", err)
	}
	if strings.Contains(c.calls[0], "Use this template") {
		t.Fatal("missing template must not appear in the prompt")
	}
}

func TestDefaultSubject(t *testing.T) {
	if got := DefaultSubject(prospect("A", "B", "a@b.com")); got != "Quick question regarding Acme" {
		t.Fatalf("subject = %q", got)
	}
}

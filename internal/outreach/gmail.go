package outreach

import (
	"context"

	"outreach-engine/internal/gmail"
)

// GmailTransport delivers through the Gmail API on behalf of one authorized
// user. The API is stateless, so the "session" only checks the grant up front
// and then submits message by message.
type GmailTransport struct {
	Service   *gmail.Service
	UserEmail string
	FromName  string
}

func (t *GmailTransport) Connect(ctx context.Context) (Session, error) {
	// Fail the batch early if the grant is missing, mirroring an SMTP auth
	// failure at connect time.
	if _, err := t.Service.Client(ctx, t.UserEmail); err != nil {
		return nil, err
	}
	return &gmailSession{t: t, ctx: ctx}, nil
}

type gmailSession struct {
	t   *GmailTransport
	ctx context.Context
}

func (s *gmailSession) Send(to, subject, body string) error {
	raw := BuildMIME(s.t.FromName, s.t.UserEmail, to, subject, body)
	return s.t.Service.SendRaw(s.ctx, s.t.UserEmail, raw)
}

func (s *gmailSession) Close() error { return nil }

package outreach

import (
	"context"
	"fmt"
	"strings"
)

// Transport opens one delivery session per batch. Exactly one implementation
// (SMTP or Gmail API) is constructed per deployment.
type Transport interface {
	Connect(ctx context.Context) (Session, error)
}

// Session delivers messages over an established connection.
type Session interface {
	Send(to, subject, body string) error
	Close() error
}

// BuildMIME renders a minimal plain-text RFC 5322 message.
func BuildMIME(fromName, fromEmail, to, subject, body string) []byte {
	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

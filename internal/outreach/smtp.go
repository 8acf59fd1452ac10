package outreach

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
)

// SMTPTransport submits messages over an encrypted SMTP session. Port 465
// uses implicit TLS; anything else dials plain and upgrades via STARTTLS.
type SMTPTransport struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (t *SMTPTransport) addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t *SMTPTransport) from() string {
	if t.FromEmail != "" {
		return t.FromEmail
	}
	return t.Username
}

func (t *SMTPTransport) Connect(ctx context.Context) (Session, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12, ServerName: t.Host}

	var c *smtp.Client
	if t.Port == 465 {
		conn, err := tls.Dial("tcp", t.addr(), tlsCfg)
		if err != nil {
			return nil, fmt.Errorf("smtp dial tls: %w", err)
		}
		c, err = smtp.NewClient(conn, t.Host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("smtp client: %w", err)
		}
	} else {
		var err error
		c, err = smtp.Dial(t.addr())
		if err != nil {
			return nil, fmt.Errorf("smtp dial: %w", err)
		}
		if err := c.StartTLS(tlsCfg); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("smtp starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
	if err := c.Auth(auth); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("smtp auth: %w", err)
	}

	return &smtpSession{c: c, transport: t}, nil
}

type smtpSession struct {
	c         *smtp.Client
	transport *SMTPTransport
}

func (s *smtpSession) Send(to, subject, body string) error {
	if err := s.c.Mail(s.transport.from()); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := s.c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := s.c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := BuildMIME(s.transport.FromName, s.transport.from(), to, subject, body)
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return nil
}

func (s *smtpSession) Close() error {
	return s.c.Quit()
}

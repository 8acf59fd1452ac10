package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const sendURL = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"

// SendRaw submits a prebuilt RFC 5322 message on behalf of the authorized
// user. Gmail wants the message base64url-encoded in a "raw" field.
func (s *Service) SendRaw(ctx context.Context, email string, raw []byte) error {
	hc, err := s.Client(ctx, email)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString(raw),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("gmail send status %d: %s", res.StatusCode, string(b))
	}
	return nil
}

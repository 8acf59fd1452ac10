package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ScopeSend is the only Gmail permission this app requests.
const ScopeSend = "https://www.googleapis.com/auth/gmail.send"

const revokeURL = "https://oauth2.googleapis.com/revoke"

// TokenStore keeps one refreshable OAuth token file per user email.
type TokenStore struct {
	dir string
}

func NewTokenStore(dir string) (*TokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &TokenStore{dir: dir}, nil
}

// Path sanitizes the address for use as a filename.
func (s *TokenStore) Path(email string) string {
	safe := strings.ReplaceAll(email, "@", "_at_")
	safe = strings.ReplaceAll(safe, ".", "_")
	return filepath.Join(s.dir, "token_"+safe+".json")
}

func (s *TokenStore) Load(email string) (*oauth2.Token, error) {
	b, err := os.ReadFile(s.Path(email))
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("token parse: %w", err)
	}
	return &tok, nil
}

func (s *TokenStore) Save(email string, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(email), b, 0o600)
}

func (s *TokenStore) Delete(email string) error {
	err := os.Remove(s.Path(email))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Service manages per-user authorization grants and Gmail API calls.
type Service struct {
	cfg   *oauth2.Config
	store *TokenStore
}

func NewService(credentialsFile, tokenDir string) (*Service, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("credentials file %s: %w (download OAuth2 credentials from the Google Cloud console)", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, ScopeSend)
	if err != nil {
		return nil, fmt.Errorf("credentials parse: %w", err)
	}
	store, err := NewTokenStore(tokenDir)
	if err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, store: store}, nil
}

// AuthURL returns the consent URL to start a grant for a user.
func (s *Service) AuthURL(redirectURI string) string {
	cfg := *s.cfg
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}
	return cfg.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for a token and stores it.
func (s *Service) Exchange(ctx context.Context, email, code, redirectURI string) error {
	cfg := *s.cfg
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("oauth exchange: %w", err)
	}
	if err := s.store.Save(email, tok); err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	log.Printf("[gmail] saved token for %s", email)
	return nil
}

// IsAuthenticated reports whether a usable (valid or refreshable) token
// exists for the address.
func (s *Service) IsAuthenticated(email string) bool {
	tok, err := s.store.Load(email)
	if err != nil {
		return false
	}
	return tok.Valid() || tok.RefreshToken != ""
}

// Revoke invalidates the grant upstream (best effort) and removes the token.
func (s *Service) Revoke(ctx context.Context, email string) error {
	tok, err := s.store.Load(email)
	if err == nil {
		form := url.Values{"token": {tok.AccessToken}}
		req, _ := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
		}
	}
	if err := s.store.Delete(email); err != nil {
		return err
	}
	log.Printf("[gmail] revoked token for %s", email)
	return nil
}

// Client returns an authorized HTTP client for the address, refreshing and
// re-persisting the token as needed.
func (s *Service) Client(ctx context.Context, email string) (*http.Client, error) {
	tok, err := s.store.Load(email)
	if err != nil {
		return nil, fmt.Errorf("no token for %s: authorize first", email)
	}
	src := s.cfg.TokenSource(ctx, tok)
	return oauth2.NewClient(ctx, &persistingSource{inner: src, store: s.store, email: email, last: tok}), nil
}

// persistingSource writes refreshed tokens back to the store.
type persistingSource struct {
	inner oauth2.TokenSource
	store *TokenStore
	email string
	last  *oauth2.Token
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.inner.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != p.last.AccessToken {
		p.last = tok
		if err := p.store.Save(p.email, tok); err != nil {
			log.Printf("[gmail] token persist failed for %s: %v", p.email, err)
		}
	}
	return tok, nil
}

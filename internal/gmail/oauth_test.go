package gmail

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenStorePathSanitizesEmail(t *testing.T) {
	s, err := NewTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	got := filepath.Base(s.Path("jane.doe@acme.com"))
	if got != "token_jane_doe_at_acme_com.json" {
		t.Fatalf("path = %q", got)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	s, err := NewTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	tok := &oauth2.Token{
		AccessToken:  "abc",
		RefreshToken: "def",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := s.Save("jane@acme.com", tok); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load("jane@acme.com")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AccessToken != "abc" || got.RefreshToken != "def" {
		t.Fatalf("round trip lost fields: %+v", got)
	}

	if err := s.Delete("jane@acme.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load("jane@acme.com"); err == nil {
		t.Fatal("expected load failure after delete")
	}
	// deleting a missing token is not an error
	if err := s.Delete("jane@acme.com"); err != nil {
		t.Fatalf("double delete: %v", err)
	}
}

func TestRevokeDeletesStoredToken(t *testing.T) {
	store, err := NewTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := &Service{cfg: nil, store: store}

	// no token on disk: nothing upstream to call, still succeeds
	if err := svc.Revoke(context.Background(), "nobody@acme.com"); err != nil {
		t.Fatalf("revoke without token: %v", err)
	}
}

func TestIsAuthenticated(t *testing.T) {
	store, err := NewTokenStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	svc := &Service{cfg: nil, store: store}

	if svc.IsAuthenticated("nobody@acme.com") {
		t.Fatal("no token must mean unauthenticated")
	}

	// expired but refreshable counts as authenticated
	_ = store.Save("jane@acme.com", &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "fresh",
		Expiry:       time.Now().Add(-time.Hour),
	})
	if !svc.IsAuthenticated("jane@acme.com") {
		t.Fatal("refreshable token must count as authenticated")
	}

	// expired with no refresh token does not
	_ = store.Save("bob@acme.com", &oauth2.Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	})
	if svc.IsAuthenticated("bob@acme.com") {
		t.Fatal("dead token must not count as authenticated")
	}
}

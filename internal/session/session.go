package session

import (
	"sync"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/outreach"
)

// Status is the progress snapshot exposed to API clients.
type Status struct {
	EmailsFound    int    `json:"emails_found"`
	EmailsSent     int    `json:"emails_sent"`
	EmailsFailed   int    `json:"emails_failed"`
	TotalProspects int    `json:"total_prospects"`
	Processing     bool   `json:"processing"`
	CurrentStep    string `json:"current_step"`
}

// Session holds the mutable state of one interactive run: the user profile,
// the prospects discovered so far, and progress counters. All access goes
// through the methods; the zero value is ready to use.
type Session struct {
	mu        sync.Mutex
	user      *outreach.UserInfo
	prospects []domain.Prospect
	status    Status
}

func New() *Session { return &Session{} }

// Reset discards everything and returns the session to its initial shape.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.prospects = nil
	s.status = Status{}
}

func (s *Session) SetUser(u *outreach.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) User() *outreach.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetProspects replaces the prospect list and resets the counters that
// describe it.
func (s *Session) SetProspects(ps []domain.Prospect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prospects = ps
	s.status.TotalProspects = len(ps)
	s.status.EmailsFound = 0
	for _, p := range ps {
		if p.Email != "" {
			s.status.EmailsFound++
		}
	}
	s.status.EmailsSent = 0
	s.status.EmailsFailed = 0
}

// Prospects returns a copy of the current list.
func (s *Session) Prospects() []domain.Prospect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Prospect, len(s.prospects))
	copy(out, s.prospects)
	return out
}

// Prospect returns the prospect at index i, if it exists.
func (s *Session) Prospect(i int) (domain.Prospect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.prospects) {
		return domain.Prospect{}, false
	}
	return s.prospects[i], true
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetStep marks the session busy with the named step, or idle when the
// step is empty.
func (s *Session) SetStep(step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.CurrentStep = step
	s.status.Processing = step != ""
}

// TryBegin marks the session busy with the named step. It reports false
// without changing anything when a step is already running.
func (s *Session) TryBegin(step string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Processing {
		return false
	}
	s.status.CurrentStep = step
	s.status.Processing = true
	return true
}

func (s *Session) RecordSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.EmailsSent++
}

func (s *Session) RecordFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.EmailsFailed++
}

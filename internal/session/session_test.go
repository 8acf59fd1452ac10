package session

import (
	"testing"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/outreach"
)

func TestSetProspectsCountsEmails(t *testing.T) {
	s := New()
	s.SetProspects([]domain.Prospect{
		{FirstName: "Ann", Email: "ann@acme.com"},
		{FirstName: "Bob"},
		{FirstName: "Cat", Email: "cat@acme.com"},
	})

	st := s.Status()
	if st.TotalProspects != 3 || st.EmailsFound != 2 {
		t.Fatalf("status = %+v", st)
	}

	if _, ok := s.Prospect(3); ok {
		t.Fatal("out-of-range index must miss")
	}
	if p, ok := s.Prospect(1); !ok || p.FirstName != "Bob" {
		t.Fatalf("prospect(1) = %+v, %v", p, ok)
	}
}

func TestTryBeginRejectsConcurrentStep(t *testing.T) {
	s := New()
	if !s.TryBegin("discovering") {
		t.Fatal("first begin must succeed")
	}
	if s.TryBegin("sending") {
		t.Fatal("second begin while busy must fail")
	}
	if st := s.Status(); st.CurrentStep != "discovering" {
		t.Fatalf("step clobbered: %q", st.CurrentStep)
	}

	s.SetStep("")
	if !s.TryBegin("sending") {
		t.Fatal("begin after finish must succeed")
	}
}

func TestResetRestoresEmptyShape(t *testing.T) {
	s := New()
	s.SetUser(&outreach.UserInfo{Name: "Sam"})
	s.SetProspects([]domain.Prospect{{FirstName: "Ann", Email: "a@b.com"}})
	s.SetStep("sending")
	s.RecordSent()
	s.RecordFailed()

	s.Reset()

	if s.User() != nil {
		t.Fatal("user survived reset")
	}
	if len(s.Prospects()) != 0 {
		t.Fatal("prospects survived reset")
	}
	if st := s.Status(); st != (Status{}) {
		t.Fatalf("status survived reset: %+v", st)
	}
}

func TestProspectsReturnsCopy(t *testing.T) {
	s := New()
	s.SetProspects([]domain.Prospect{{FirstName: "Ann"}})

	got := s.Prospects()
	got[0].FirstName = "mutated"

	if p, _ := s.Prospect(0); p.FirstName != "Ann" {
		t.Fatal("caller mutation leaked into session state")
	}
}

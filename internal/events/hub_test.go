package events

import (
	"encoding/json"
	"testing"
)

func TestHubFanOutDropsSlowSubscribers(t *testing.T) {
	h := NewHub()
	fast := h.Subscribe()
	slow := h.Subscribe()

	// fill the slow subscriber's buffer
	for i := 0; i < cap(slow)+5; i++ {
		h.Publish("e")
	}

	if len(slow) != cap(slow) {
		t.Fatalf("slow buffer = %d, want full buffer %d", len(slow), cap(slow))
	}
	if len(fast) != cap(fast) {
		t.Fatalf("fast buffer = %d", len(fast))
	}

	h.Unsubscribe(fast)
	h.Unsubscribe(slow)
	h.Publish("after") // no subscribers, must not panic
}

func TestMakeEventShape(t *testing.T) {
	raw := MakeEvent("req-1", TypeEmailSent, 1, map[string]string{"to": "a@b.com"})

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Type != TypeEmailSent || e.Version != 1 || e.RequestID != "req-1" {
		t.Fatalf("event = %+v", e)
	}
	if e.At.IsZero() {
		t.Fatal("missing timestamp")
	}

	var data map[string]string
	if err := json.Unmarshal(e.Data, &data); err != nil || data["to"] != "a@b.com" {
		t.Fatalf("data = %s", e.Data)
	}
}

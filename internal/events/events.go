package events

import (
	"encoding/json"
	"time"
)

// Event types published during a run.
const (
	TypeRunStep       = "run_step"
	TypeProspectFound = "prospect_found"
	TypeEmailSent     = "email_sent"
	TypeEmailFailed   = "email_failed"
	TypeRunError      = "run_error"
	TypeRunDone       = "run_done"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/events"
	"outreach-engine/internal/outreach"
	"outreach-engine/internal/session"
)

type SendHandler struct {
	Session  *session.Session
	Hub      *events.Hub
	SendBulk func(ctx context.Context, prospects []domain.Prospect, opts outreach.BulkOptions) outreach.Summary
	SendOne  func(ctx context.Context, p domain.Prospect, user *outreach.UserInfo, dryRun bool) bool
}

// SendEmails dispatches to every session prospect with a resolved address.
func (h SendHandler) SendEmails(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body means a live send
	}

	prospects := h.Session.Prospects()
	var sendable []domain.Prospect
	for _, p := range prospects {
		if p.Email != "" {
			sendable = append(sendable, p)
		}
	}
	if len(sendable) == 0 {
		WriteError(w, r, http.StatusBadRequest, "no_recipients", "no prospects with email addresses; run a search first")
		return
	}

	if !h.Session.TryBegin("sending") {
		WriteError(w, r, http.StatusConflict, "busy", "a step is already running")
		return
	}
	defer h.Session.SetStep("")

	reqID := RequestIDFrom(r.Context())
	sum := h.SendBulk(r.Context(), sendable, outreach.BulkOptions{
		DryRun: req.DryRun,
		User:   h.Session.User(),
		OnSent: func(p domain.Prospect) {
			h.Session.RecordSent()
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeEmailSent, 1, map[string]string{"to": p.Email}))
		},
	})
	for i := 0; i < sum.Failed; i++ {
		h.Session.RecordFailed()
	}
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeRunDone, 1, sum))

	msg := "emails sent"
	if req.DryRun {
		msg = "dry run complete"
	}
	writeJSON(w, sendResponse{
		Success: true,
		Message: msg,
		Status:  h.Session.Status(),
		Results: sendResults{Total: sum.Total, Sent: sum.Sent, Failed: sum.Failed},
	})
}

// SendOneByPath sends to a single prospect, path /api/send-one/{index}.
func (h SendHandler) SendOneByPath(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(r.URL.Path, "/api/send-one/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "bad_index", "index must be a non-negative integer")
		return
	}
	p, ok := h.Session.Prospect(idx)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no prospect at that index")
		return
	}
	if p.Email == "" {
		WriteError(w, r, http.StatusBadRequest, "no_email", "prospect has no email address")
		return
	}

	var req sendRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reqID := RequestIDFrom(r.Context())
	if h.SendOne(r.Context(), p, h.Session.User(), req.DryRun) {
		h.Session.RecordSent()
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeEmailSent, 1, map[string]string{"to": p.Email}))
		writeJSON(w, map[string]any{"success": true, "status": h.Session.Status()})
		return
	}
	h.Session.RecordFailed()
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeEmailFailed, 1, map[string]string{"to": p.Email}))
	writeJSON(w, map[string]any{"success": false, "status": h.Session.Status()})
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/events"
	"outreach-engine/internal/outreach"
	"outreach-engine/internal/session"
)

type SessionHandler struct {
	Session   *session.Session
	Hub       *events.Hub
	RunSearch func(ctx context.Context, goal string, linkedin bool) ([]domain.Prospect, error)
}

// Search runs discovery and enrichment for the posted goal and loads the
// results into the session. Prospects without a resolved email are kept so
// the user can see everyone who was found.
func (h SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(req.Goal) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_goal", "goal is required")
		return
	}

	if !h.Session.TryBegin("searching") {
		WriteError(w, r, http.StatusConflict, "busy", "a step is already running")
		return
	}
	defer h.Session.SetStep("")

	h.Session.SetUser(&outreach.UserInfo{
		Name:   req.Name,
		Email:  req.Email,
		Skills: req.Skills,
		Goal:   req.Goal,
	})

	prospects, err := h.RunSearch(r.Context(), req.Goal, req.LinkedIn)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "search_failed", err.Error())
		return
	}
	h.Session.SetProspects(prospects)
	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeRunStep, 1,
		map[string]any{"step": "search_done", "prospects": len(prospects)}))

	views := make([]prospectView, len(prospects))
	for i, p := range prospects {
		views[i] = viewOf(i, p)
	}
	writeJSON(w, searchResponse{Success: true, Prospects: views, Status: h.Session.Status()})
}

// GetProspect returns one prospect by session index, path /api/prospect/{index}.
func (h SessionHandler) GetProspect(w http.ResponseWriter, r *http.Request) {
	idx, ok := pathIndex(r.URL.Path, "/api/prospect/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "bad_index", "index must be a non-negative integer")
		return
	}
	p, ok := h.Session.Prospect(idx)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no prospect at that index")
		return
	}
	writeJSON(w, map[string]any{"success": true, "prospect": viewOf(idx, p)})
}

func (h SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, statusResponse{Success: true, Status: h.Session.Status()})
}

func (h SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Session.Reset()
	writeJSON(w, map[string]any{"success": true})
}

package httpapi

import (
	"outreach-engine/internal/domain"
	"outreach-engine/internal/session"
)

type searchRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Skills string `json:"skills"`
	Goal   string `json:"goal"`

	// LinkedIn searches profiles directly instead of walking companies.
	LinkedIn bool `json:"linkedin,omitempty"`
}

type searchResponse struct {
	Success   bool           `json:"success"`
	Prospects []prospectView `json:"prospects"`
	Status    session.Status `json:"status"`
}

// prospectView is the wire shape of a prospect. The email itself is not
// exposed, only whether one was found.
type prospectView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Title    string `json:"title,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	HasEmail bool   `json:"has_email"`
	Source   string `json:"source,omitempty"`
}

func viewOf(i int, p domain.Prospect) prospectView {
	return prospectView{
		Index:    i,
		Name:     p.FullName(),
		Company:  p.CompanyName,
		Title:    p.JobTitle,
		LinkedIn: p.LinkedIn,
		HasEmail: p.Email != "",
		Source:   p.Source,
	}
}

type sendRequest struct {
	DryRun bool `json:"dry_run"`
}

type sendResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Status  session.Status `json:"status"`
	Results sendResults    `json:"results"`
}

type sendResults struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type statusResponse struct {
	Success bool           `json:"success"`
	Status  session.Status `json:"status"`
}

package httpapi

import (
	"context"
	"sync/atomic"

	"outreach-engine/internal/config"
	"outreach-engine/internal/domain"
	"outreach-engine/internal/events"
	"outreach-engine/internal/gmail"
	"outreach-engine/internal/outreach"
	"outreach-engine/internal/session"
)

type Deps struct {
	Hub     *events.Hub
	Session *session.Session

	// Atomic store for the reloadable config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Pipeline entrypoints (inject for testability)
	RunSearch func(ctx context.Context, goal string, linkedin bool) ([]domain.Prospect, error)
	SendBulk  func(ctx context.Context, prospects []domain.Prospect, opts outreach.BulkOptions) outreach.Summary
	SendOne   func(ctx context.Context, p domain.Prospect, user *outreach.UserInfo, dryRun bool) bool

	// Optional Gmail OAuth service; nil when the deployment uses SMTP.
	Gmail *gmail.Service

	// Static front-end directory; empty disables the file server.
	StaticDir string
}

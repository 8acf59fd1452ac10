package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"outreach-engine/internal/config"
	"outreach-engine/internal/domain"
	"outreach-engine/internal/events"
	"outreach-engine/internal/gmail"
	"outreach-engine/internal/httpapi"
	"outreach-engine/internal/outreach"
	"outreach-engine/internal/session"
)

var serveFlags struct {
	addr      string
	staticDir string
}

// search caps for interactive use; the CLI exposes these as flags.
const (
	serveMaxCompanies = 10
	serveMaxProspects = 5
	serveMaxProfiles  = 20
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and front end",
	RunE:  serve,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", "", "listen address (default 127.0.0.1:<config port>)")
	f.StringVar(&serveFlags.staticDir, "static", "./static", "front-end directory, empty to disable")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.close()

	lc, err := a.buildLLM()
	if err != nil {
		return err
	}
	disc, err := a.buildDiscovery(lc)
	if err != nil {
		return err
	}
	enr, err := a.buildEnrich()
	if err != nil {
		return err
	}
	out, err := a.buildOutreach(lc)
	if err != nil {
		return err
	}

	var gsvc *gmail.Service
	if a.cfg.Mail.Transport == "gmail" {
		if gsvc, err = a.buildGmail(); err != nil {
			return err
		}
	}

	var cfgVal atomic.Value
	cfgVal.Store(a.cfg)

	deps := httpapi.Deps{
		Hub:         events.NewHub(),
		Session:     session.New(),
		CfgVal:      &cfgVal,
		UserCfgPath: a.cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(a.cfgPath) },
		Gmail:       gsvc,
		StaticDir:   serveFlags.staticDir,

		RunSearch: func(ctx context.Context, goal string, linkedin bool) ([]domain.Prospect, error) {
			var prospects []domain.Prospect
			if linkedin {
				prospects = disc.SearchProfilesDirectly(ctx, goal, serveMaxProfiles)
			} else {
				companies, err := disc.SearchCompanies(ctx, goal, serveMaxCompanies)
				if err != nil {
					return nil, err
				}
				for _, c := range companies {
					prospects = append(prospects, disc.SearchProspects(ctx, c, serveMaxProspects)...)
				}
			}
			prospects = domain.DedupeProspects(prospects)
			for i := range prospects {
				if email, ok := enr.FindEmail(ctx, &prospects[i]); ok {
					prospects[i].Email = email
				}
			}
			return prospects, nil
		},
		SendBulk: out.SendBulk,
		SendOne: func(ctx context.Context, p domain.Prospect, user *outreach.UserInfo, dryRun bool) bool {
			body, err := out.GenerateMessage(ctx, p, "", user)
			if err != nil {
				log.Printf("[serve] generation failed for %s: %v", p.FullName(), err)
				return false
			}
			return out.SendMessage(ctx, p, outreach.DefaultSubject(p), body, dryRun)
		},
	}

	handler := httpapi.Chain(httpapi.NewMux(deps),
		httpapi.RequestID, httpapi.AccessLog, httpapi.Recover, httpapi.Cors)

	addr := serveFlags.addr
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", a.cfg.App.Port)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[serve] listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"outreach-engine/internal/config"
	"outreach-engine/internal/discovery"
	"outreach-engine/internal/enrich"
	"outreach-engine/internal/gmail"
	"outreach-engine/internal/llm"
	"outreach-engine/internal/outreach"
	"outreach-engine/internal/search"
	"outreach-engine/internal/secrets"
)

// app carries the shared wiring for both subcommands: config, secrets and
// the single-instance lock on the data dir.
type app struct {
	dataDir string
	cfgPath string
	cfg     config.Config
	sec     config.Secrets
	lock    *flock.Flock
}

func setupApp() (*app, error) {
	// Data dir: use env if provided, else local folder.
	dataDir := os.Getenv("OUTREACH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Printf("[config] error: %s", e)
		}
		return nil, fmt.Errorf("invalid config at %s", cfgPath)
	}
	for _, w := range vr.Warnings {
		log.Printf("[config] warning: %s", w)
	}

	lock := flock.New(filepath.Join(dataDir, "outreach.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("data dir lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another instance is already running in %s", dataDir)
	}

	return &app{
		dataDir: dataDir,
		cfgPath: cfgPath,
		cfg:     cfg,
		sec:     config.LoadSecrets(),
		lock:    lock,
	}, nil
}

func (a *app) close() {
	_ = a.lock.Unlock()
}

func (a *app) buildLLM() (*llm.Client, error) {
	if err := config.RequireKey("OPENAI_API_KEY", a.sec.OpenAIAPIKey); err != nil {
		return nil, err
	}
	return llm.New(a.cfg.LLM.BaseURL, a.sec.OpenAIAPIKey, a.cfg.LLM.Model), nil
}

func (a *app) buildDiscovery(c discovery.Completer) (*discovery.Agent, error) {
	if err := config.RequireKey("TAVILY_API_KEY", a.sec.TavilyAPIKey); err != nil {
		return nil, err
	}
	sc := search.NewClient(a.sec.TavilyAPIKey, a.cfg.Search.RequestsPerSecond)
	return discovery.NewAgent(sc, c, a.cfg.Search.Depth, a.cfg.Search.DaysFilter), nil
}

func (a *app) buildEnrich() (*enrich.Agent, error) {
	if err := config.RequireKey("HUNTER_API_KEY", a.sec.HunterAPIKey); err != nil {
		return nil, err
	}
	hc := enrich.NewClient(a.sec.HunterAPIKey, a.cfg.Finder.RequestsPerSecond)
	return enrich.NewAgent(hc, a.cfg.Finder.MinConfidence, a.cfg.Finder.MaxRetries,
		time.Duration(a.cfg.Finder.RetryDelaySeconds)*time.Second), nil
}

// buildTransport picks SMTP or Gmail from config. A deployment runs exactly
// one of the two.
func (a *app) buildTransport() (outreach.Transport, error) {
	switch a.cfg.Mail.Transport {
	case "smtp":
		m := a.cfg.Mail.SMTP
		account := secrets.SMTPKeyringAccount(m.Username, m.Host)
		password, err := secrets.GetSMTPPassword(account, a.sec.SMTPPassword)
		if err != nil {
			return nil, fmt.Errorf("smtp password: %w", err)
		}
		return &outreach.SMTPTransport{
			Host:      m.Host,
			Port:      m.Port,
			Username:  m.Username,
			Password:  password,
			FromEmail: m.FromEmail,
			FromName:  m.FromName,
		}, nil
	case "gmail":
		svc, err := a.buildGmail()
		if err != nil {
			return nil, err
		}
		return &outreach.GmailTransport{
			Service:   svc,
			UserEmail: a.cfg.Mail.SMTP.FromEmail,
			FromName:  a.cfg.Mail.SMTP.FromName,
		}, nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", a.cfg.Mail.Transport)
	}
}

func (a *app) buildGmail() (*gmail.Service, error) {
	g := a.cfg.Mail.Gmail
	tokenDir := g.TokenDir
	if !filepath.IsAbs(tokenDir) {
		tokenDir = filepath.Join(a.dataDir, tokenDir)
	}
	return gmail.NewService(g.CredentialsFile, tokenDir)
}

func (a *app) buildOutreach(c outreach.Completer) (*outreach.Agent, error) {
	tr, err := a.buildTransport()
	if err != nil {
		return nil, err
	}
	pacer := outreach.NewRandomPacer(
		time.Duration(a.cfg.Mail.DelayMinSeconds)*time.Second,
		time.Duration(a.cfg.Mail.DelayMaxSeconds)*time.Second,
	)
	return outreach.NewAgent(c, tr, pacer), nil
}

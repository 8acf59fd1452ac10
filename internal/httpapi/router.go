package httpapi

import "net/http"

// NewMux wires the handler set. main() wraps the result with the middleware
// chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Session: search, prospect lookup, status, reset
	sh := SessionHandler{Session: d.Session, Hub: d.Hub, RunSearch: d.RunSearch}
	mux.HandleFunc("/api/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Search,
	}))
	mux.HandleFunc("/api/prospect/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.GetProspect, // expects /api/prospect/{index}
	}))
	mux.HandleFunc("/api/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/api/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Reset,
	}))

	// Outreach
	snd := SendHandler{Session: d.Session, Hub: d.Hub, SendBulk: d.SendBulk, SendOne: d.SendOne}
	mux.HandleFunc("/api/send-emails", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: snd.SendEmails,
	}))
	mux.HandleFunc("/api/send-one/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: snd.SendOneByPath, // expects /api/send-one/{index}
	}))

	// Gmail OAuth
	gh := GmailHandler{Service: d.Gmail}
	mux.HandleFunc("/api/auth/gmail", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    gh.AuthStatus,
		http.MethodPost:   gh.Auth,
		http.MethodDelete: gh.Revoke,
	}))

	// Config (use cfgVal, NOT a snapshot cfg)
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath, LoadCfg: d.LoadCfg}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sec := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sec.SetSMTPPassword,
		http.MethodDelete: sec.DeleteSMTPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	if d.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(d.StaticDir)))
	}

	return mux
}

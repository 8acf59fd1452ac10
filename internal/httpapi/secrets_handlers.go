package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"outreach-engine/internal/config"
	"outreach-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setSMTPPasswordReq struct {
	Password string `json:"password"`
}

func (h SecretsHandler) SetSMTPPassword(w http.ResponseWriter, r *http.Request) {
	var req setSMTPPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	account := secrets.SMTPKeyringAccount(cfg.Mail.SMTP.Username, cfg.Mail.SMTP.Host)
	if err := secrets.SetSMTPPassword(account, req.Password); err != nil {
		http.Error(w, "failed to store password: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteSMTPPassword(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	account := secrets.SMTPKeyringAccount(cfg.Mail.SMTP.Username, cfg.Mail.SMTP.Host)
	if err := secrets.DeleteSMTPPassword(account); err != nil {
		http.Error(w, "failed to delete password: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

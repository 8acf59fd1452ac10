package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus validation results.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Mail.Transport = strings.ToLower(strings.TrimSpace(out.Mail.Transport))
	out.Search.Depth = strings.ToLower(strings.TrimSpace(out.Search.Depth))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.RequestsPerSecond <= 0 {
		res.addErr("search.requests_per_second must be > 0")
	} else if out.Search.RequestsPerSecond > 20 {
		res.addWarn("search.requests_per_second is very high (%.0f) and may hit provider limits.", out.Search.RequestsPerSecond)
	}
	if out.Search.Depth != "basic" && out.Search.Depth != "advanced" {
		res.addErr("search.depth must be basic or advanced")
	}
	if out.Search.DaysFilter <= 0 {
		res.addErr("search.days_filter must be > 0")
	}
	if out.Search.MaxResults <= 0 {
		res.addErr("search.max_results must be > 0")
	}

	if out.Finder.RequestsPerSecond <= 0 {
		res.addErr("finder.requests_per_second must be > 0")
	}
	if out.Finder.MinConfidence < 0 || out.Finder.MinConfidence > 100 {
		res.addErr("finder.min_confidence must be 0..100")
	}
	if out.Finder.MaxRetries <= 0 {
		res.addErr("finder.max_retries must be > 0")
	}
	if out.Finder.RetryDelaySeconds < 0 {
		res.addErr("finder.retry_delay_seconds must be >= 0")
	}

	if strings.TrimSpace(out.LLM.Model) == "" {
		res.addErr("llm.model is required")
	}
	if strings.TrimSpace(out.LLM.BaseURL) == "" {
		res.addErr("llm.base_url is required")
	}

	switch out.Mail.Transport {
	case "smtp":
		if strings.TrimSpace(out.Mail.SMTP.Host) == "" {
			res.addErr("mail.smtp.host is required when mail.transport=smtp")
		}
		if out.Mail.SMTP.Port == 0 {
			res.addErr("mail.smtp.port is required when mail.transport=smtp")
		}
		if strings.TrimSpace(out.Mail.SMTP.Username) == "" {
			res.addErr("mail.smtp.username is required when mail.transport=smtp")
		}
	case "gmail":
		if strings.TrimSpace(out.Mail.Gmail.CredentialsFile) == "" {
			res.addErr("mail.gmail.credentials_file is required when mail.transport=gmail")
		}
		if strings.TrimSpace(out.Mail.Gmail.TokenDir) == "" {
			res.addErr("mail.gmail.token_dir is required when mail.transport=gmail")
		}
	default:
		res.addErr("mail.transport must be smtp or gmail")
	}

	if out.Mail.DelayMinSeconds < 0 || out.Mail.DelayMaxSeconds < out.Mail.DelayMinSeconds {
		res.addErr("mail delay window invalid: want 0 <= delay_min_seconds <= delay_max_seconds")
	}
	if out.Mail.DelayMinSeconds == 0 && out.Mail.Transport == "smtp" {
		res.addWarn("mail.delay_min_seconds is 0; bulk sends without pacing look like spam.")
	}

	return out, res
}

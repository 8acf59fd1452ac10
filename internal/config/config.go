package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Depth             string  `yaml:"depth" json:"depth"` // basic|advanced
		DaysFilter        int     `yaml:"days_filter" json:"days_filter"`
		MaxResults        int     `yaml:"max_results" json:"max_results"`
	} `yaml:"search" json:"search"`

	Finder struct {
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		MinConfidence     int     `yaml:"min_confidence" json:"min_confidence"`
		MaxRetries        int     `yaml:"max_retries" json:"max_retries"`
		RetryDelaySeconds int     `yaml:"retry_delay_seconds" json:"retry_delay_seconds"`
	} `yaml:"finder" json:"finder"`

	LLM struct {
		BaseURL string `yaml:"base_url" json:"base_url"`
		Model   string `yaml:"model" json:"model"`
	} `yaml:"llm" json:"llm"`

	Mail struct {
		Transport string `yaml:"transport" json:"transport"` // smtp|gmail

		SMTP struct {
			Host      string `yaml:"host" json:"host"`
			Port      int    `yaml:"port" json:"port"`
			Username  string `yaml:"username" json:"username"`
			FromEmail string `yaml:"from_email" json:"from_email"`
			FromName  string `yaml:"from_name" json:"from_name"`
		} `yaml:"smtp" json:"smtp"`

		Gmail struct {
			CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`
			TokenDir        string `yaml:"token_dir" json:"token_dir"`
		} `yaml:"gmail" json:"gmail"`

		DelayMinSeconds int `yaml:"delay_min_seconds" json:"delay_min_seconds"`
		DelayMaxSeconds int `yaml:"delay_max_seconds" json:"delay_max_seconds"`
	} `yaml:"mail" json:"mail"`
}

// Default returns the built-in settings written on first start.
func Default() Config {
	var cfg Config
	cfg.App.Port = 8000
	cfg.App.DataDir = "."
	cfg.Search.RequestsPerSecond = 5
	cfg.Search.Depth = "advanced"
	cfg.Search.DaysFilter = 45
	cfg.Search.MaxResults = 50
	cfg.Finder.RequestsPerSecond = 10
	cfg.Finder.MinConfidence = 50
	cfg.Finder.MaxRetries = 3
	cfg.Finder.RetryDelaySeconds = 2
	cfg.LLM.BaseURL = "https://api.openai.com/v1"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Mail.Transport = "smtp"
	cfg.Mail.SMTP.Host = "smtp.gmail.com"
	cfg.Mail.SMTP.Port = 465
	cfg.Mail.SMTP.FromName = "Job Seeker"
	cfg.Mail.Gmail.CredentialsFile = "credentials.json"
	cfg.Mail.Gmail.TokenDir = "tokens"
	cfg.Mail.DelayMinSeconds = 5
	cfg.Mail.DelayMaxSeconds = 15
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

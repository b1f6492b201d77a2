package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config carries every runtime setting. It is resolved once at startup and
// treated as immutable afterwards; components receive it by reference and
// never re-read the process environment themselves.
type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	LLM           LLMConfig           `yaml:"llm"`
	Output        OutputConfig        `yaml:"output"`
	Email         EmailConfig         `yaml:"email"`
	HTTP          HTTPConfig          `yaml:"http"`
	Logging       LoggingConfig       `yaml:"logging"`
	Timeouts      TimeoutConfig       `yaml:"-"`
}

type TranscriptionConfig struct {
	APIKey       string        `yaml:"api_key" env:"ASSEMBLYAI_API_KEY"`
	BaseURL      string        `yaml:"base_url" env:"ASSEMBLYAI_BASE_URL"`
	PollInterval time.Duration `yaml:"-" env:"ASSEMBLYAI_POLL_INTERVAL"`
}

type LLMConfig struct {
	OpenAIKey   string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIModel string `yaml:"openai_model" env:"OPENAI_MODEL"`
	BaseURL     string `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	GeminiKey   string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	GeminiModel string `yaml:"gemini_model" env:"GEMINI_MODEL"`
	// SpeakerNames decides whether the summarisation prompt sees user display
	// names ("display") or raw diarised ids ("raw").
	SpeakerNames string `yaml:"speaker_names" env:"SUMMARY_SPEAKER_NAMES"`
}

type OutputConfig struct {
	Dir        string `yaml:"dir" env:"OUTPUT_DIR"`
	ExportDocx bool   `yaml:"export_docx" env:"EXPORT_DOCX"`
	InboxDir   string `yaml:"inbox_dir" env:"INBOX_DIR"`
}

type EmailConfig struct {
	Host      string `yaml:"smtp_host" env:"SMTP_HOST"`
	Port      int    `yaml:"smtp_port" env:"SMTP_PORT"`
	Username  string `yaml:"smtp_username" env:"SMTP_USERNAME"`
	Password  string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	UseTLS    bool   `yaml:"smtp_use_tls" env:"SMTP_USE_TLS"`
	Sender    string `yaml:"sender" env:"EMAIL_SENDER"`
	Recipient string `yaml:"recipient" env:"EMAIL_RECIPIENT"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type TimeoutConfig struct {
	Transcribe time.Duration `env:"TRANSCRIBE_TIMEOUT"`
	Summarize  time.Duration `env:"SUMMARIZE_TIMEOUT"`
	Email      time.Duration `env:"EMAIL_TIMEOUT"`
}

// SpeakerNames values for LLMConfig.
const (
	SpeakerNamesDisplay = "display"
	SpeakerNamesRaw     = "raw"
)

// Load resolves configuration from an optional YAML file overlaid with
// process environment variables. A missing file is not an error; every
// setting has a default or gates an optional feature.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("SCRIBE_CONFIG")
	}
	if path == "" {
		path = "scribe.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			BaseURL:      "https://api.assemblyai.com/v2",
			PollInterval: 3 * time.Second,
		},
		LLM: LLMConfig{
			OpenAIModel:  "gpt-4o-mini",
			GeminiModel:  "gemini-2.5-flash",
			SpeakerNames: SpeakerNamesDisplay,
		},
		Output: OutputConfig{
			Dir: "meeting_outputs",
		},
		Email: EmailConfig{
			Port:   587,
			UseTLS: true,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Timeouts: TimeoutConfig{
			Transcribe: 5 * time.Minute,
			Summarize:  2 * time.Minute,
			Email:      30 * time.Second,
		},
	}
}

// normalize backfills values the file or environment cleared.
func (c *Config) normalize() {
	d := defaults()
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = d.Transcription.BaseURL
	}
	if c.Transcription.PollInterval <= 0 {
		c.Transcription.PollInterval = d.Transcription.PollInterval
	}
	if c.LLM.OpenAIModel == "" {
		c.LLM.OpenAIModel = d.LLM.OpenAIModel
	}
	if c.LLM.GeminiModel == "" {
		c.LLM.GeminiModel = d.LLM.GeminiModel
	}
	if c.LLM.SpeakerNames != SpeakerNamesRaw {
		c.LLM.SpeakerNames = SpeakerNamesDisplay
	}
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Email.Port == 0 {
		c.Email.Port = d.Email.Port
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = d.HTTP.Addr
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Timeouts.Transcribe <= 0 {
		c.Timeouts.Transcribe = d.Timeouts.Transcribe
	}
	if c.Timeouts.Summarize <= 0 {
		c.Timeouts.Summarize = d.Timeouts.Summarize
	}
	if c.Timeouts.Email <= 0 {
		c.Timeouts.Email = d.Timeouts.Email
	}
}

// TranscriptionConfigured reports whether a real transcription provider is
// available; without it the deterministic fallback transcriber is used.
func (c *Config) TranscriptionConfigured() bool {
	return c.Transcription.APIKey != ""
}

// SummaryConfigured reports whether any LLM provider is available.
func (c *Config) SummaryConfigured() bool {
	return c.LLM.OpenAIKey != "" || c.LLM.BaseURL != "" || c.LLM.GeminiKey != ""
}

// EmailConfigured reports whether meeting notes can be emailed.
func (c *Config) EmailConfigured() bool {
	if c.Email.Host == "" || c.Email.Recipient == "" {
		return false
	}
	return c.Email.Sender != "" || c.Email.Username != ""
}

// SenderAddress returns the from address, defaulting to the SMTP username.
func (c *EmailConfig) SenderAddress() string {
	if c.Sender != "" {
		return c.Sender
	}
	return c.Username
}

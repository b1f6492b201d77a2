package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Dir != "meeting_outputs" {
		t.Errorf("Output.Dir = %q, want meeting_outputs", cfg.Output.Dir)
	}
	if cfg.LLM.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.LLM.OpenAIModel)
	}
	if cfg.LLM.SpeakerNames != SpeakerNamesDisplay {
		t.Errorf("SpeakerNames = %q, want display", cfg.LLM.SpeakerNames)
	}
	if cfg.Email.Port != 587 || !cfg.Email.UseTLS {
		t.Errorf("email defaults = port %d tls %v", cfg.Email.Port, cfg.Email.UseTLS)
	}
	if cfg.Timeouts.Transcribe != 5*time.Minute {
		t.Errorf("Transcribe timeout = %v", cfg.Timeouts.Transcribe)
	}
	if cfg.TranscriptionConfigured() || cfg.SummaryConfigured() || cfg.EmailConfigured() {
		t.Error("no feature should be configured without credentials")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scribe.yaml")
	content := `
transcription:
  api_key: "aai-test-key"

llm:
  openai_api_key: "sk-test"
  openai_model: "gpt-4.1"
  speaker_names: "raw"

output:
  dir: "notes"
  export_docx: true

email:
  smtp_host: "smtp.example.com"
  smtp_port: 2525
  smtp_use_tls: false
  sender: "bot@example.com"
  recipient: "team@example.com"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.TranscriptionConfigured() {
		t.Error("transcription should be configured")
	}
	if !cfg.SummaryConfigured() {
		t.Error("summary should be configured")
	}
	if !cfg.EmailConfigured() {
		t.Error("email should be configured")
	}
	if cfg.LLM.SpeakerNames != SpeakerNamesRaw {
		t.Errorf("SpeakerNames = %q, want raw", cfg.LLM.SpeakerNames)
	}
	if cfg.Output.Dir != "notes" || !cfg.Output.ExportDocx {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Email.Port != 2525 || cfg.Email.UseTLS {
		t.Errorf("email = %+v", cfg.Email)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scribe.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: from_file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OUTPUT_DIR", "from_env")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Dir != "from_env" {
		t.Errorf("Output.Dir = %q, want from_env", cfg.Output.Dir)
	}
	if cfg.LLM.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want gpt-4o", cfg.LLM.OpenAIModel)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scribe.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestEmailConfigured(t *testing.T) {
	tests := []struct {
		name  string
		email EmailConfig
		want  bool
	}{
		{"empty", EmailConfig{}, false},
		{"missing recipient", EmailConfig{Host: "smtp.example.com", Sender: "a@b.c"}, false},
		{"missing sender and username", EmailConfig{Host: "smtp.example.com", Recipient: "a@b.c"}, false},
		{"sender set", EmailConfig{Host: "smtp.example.com", Recipient: "a@b.c", Sender: "s@b.c"}, true},
		{"username doubles as sender", EmailConfig{Host: "smtp.example.com", Recipient: "a@b.c", Username: "u@b.c"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Email: tt.email}
			if got := cfg.EmailConfigured(); got != tt.want {
				t.Errorf("EmailConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSenderAddress(t *testing.T) {
	e := EmailConfig{Username: "user@example.com"}
	if got := e.SenderAddress(); got != "user@example.com" {
		t.Errorf("SenderAddress() = %q", got)
	}
	e.Sender = "noreply@example.com"
	if got := e.SenderAddress(); got != "noreply@example.com" {
		t.Errorf("SenderAddress() = %q", got)
	}
}

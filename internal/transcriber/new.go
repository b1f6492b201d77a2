package transcriber

import (
	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
)

// New selects the transcriber once at construction time: the AssemblyAI
// client when a key is configured, otherwise the deterministic fallback.
// Call sites never branch on credential presence themselves.
func New(cfg *config.Config, log logger.Logger) Transcriber {
	if cfg.TranscriptionConfigured() {
		return newAssemblyAI(cfg.Transcription, log)
	}
	return &implFallback{}
}

package summarizer

import (
	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
)

// New selects the summariser once at construction time. An OpenAI-compatible
// endpoint wins when configured (a bare OPENAI_BASE_URL is enough for local
// servers that need no key), then Gemini, then the deterministic fallback.
func New(cfg *config.Config, log logger.Logger) Summarizer {
	switch {
	case cfg.LLM.OpenAIKey != "" || cfg.LLM.BaseURL != "":
		return newOpenAI(cfg.LLM, log)
	case cfg.LLM.GeminiKey != "":
		return newGemini(cfg.LLM, log)
	default:
		return &implFallback{}
	}
}

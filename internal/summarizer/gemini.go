package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
)

type implGemini struct {
	apiKey string
	model  string
	logger logger.Logger
}

func newGemini(cfg config.LLMConfig, log logger.Logger) *implGemini {
	return &implGemini{
		apiKey: cfg.GeminiKey,
		model:  cfg.GeminiModel,
		logger: log,
	}
}

func (s *implGemini) Summarize(ctx context.Context, transcript string) (meeting.Summary, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("create client: %w", err)}
	}

	prompt := systemPrompt + "\n\n" + buildPrompt(transcript)
	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("generate content: %w", err)}
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("empty response from model %s", s.model)}
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("empty response from model %s", s.model)}
	}

	s.logger.Debug(ctx, "summarised transcript with %s", s.model)
	return parseResponse(text), nil
}

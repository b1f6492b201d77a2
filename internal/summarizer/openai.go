package summarizer

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/meetscribe/scribe/internal/config"
	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
)

// implOpenAI talks to OpenAI or any chat-completion compatible endpoint
// (Ollama, LocalAI, vLLM) via an optional base URL override.
type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func newOpenAI(cfg config.LLMConfig, log logger.Logger) *implOpenAI {
	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &implOpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
		logger: log,
	}
}

func (s *implOpenAI) Summarize(ctx context.Context, transcript string) (meeting.Summary, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(transcript)},
		},
	})
	if err != nil {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return meeting.Summary{}, &meeting.SummarizationError{Err: fmt.Errorf("empty completion from model %s", s.model)}
	}

	s.logger.Debug(ctx, "summarised transcript with %s", s.model)
	return parseResponse(resp.Choices[0].Message.Content), nil
}

package repository

import (
	"context"
	"fmt"

	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

type openaiScriptRepository struct {
	client         *openai.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewOpenAIScriptRepository creates a script writer backed by an OpenAI-compatible chat API.
func NewOpenAIScriptRepository(cfg *config.Config, log *logger.Logger) ScriptRepository {
	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	return &openaiScriptRepository{
		client:         openai.NewClientWithConfig(clientCfg),
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.OpenAI.MaxRequestPerMinute),
	}
}

func (r *openaiScriptRepository) GenerateScript(ctx context.Context, req *dto.ScriptRequest) (*dto.ScriptResult, error) {
	prompt := BuildDigestScriptPrompt(req)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.cfg.OpenAI.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
	})
	if err != nil {
		r.logger.Error("Failed to send request to OpenAI API", logger.ErrorField(err), logger.StringField("day", req.Day))
		return nil, fmt.Errorf("failed to send request to OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("invalid response from OpenAI API: no choices")
	}

	model := resp.Model
	if model == "" {
		model = r.cfg.OpenAI.Model
	}
	return ParseScriptResponse(model, resp.Choices[0].Message.Content)
}

package repository

import (
	"context"
	"fmt"

	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type geminiScriptRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiScriptRepository creates a script writer backed by the Gemini API.
func NewGeminiScriptRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) ScriptRepository {
	return &geminiScriptRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Gemini.MaxRequestPerMinute),
		genAiClient:    genAiClient,
	}
}

func (r *geminiScriptRepository) GenerateScript(ctx context.Context, req *dto.ScriptRequest) (*dto.ScriptResult, error) {
	prompt := BuildDigestScriptPrompt(req)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err), logger.StringField("day", req.Day))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	result, err := ParseScriptResponse(r.cfg.Gemini.Model, text)
	if err != nil {
		r.logger.Error("Failed to parse digest script", logger.ErrorField(err), logger.StringField("response", clip(text, 500)))
		return nil, err
	}
	return result, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ScriptRepository writes a spoken script for a filled digest.
type ScriptRepository interface {
	GenerateScript(ctx context.Context, req *dto.ScriptRequest) (*dto.ScriptResult, error)
}

// NewScriptRepository picks the provider named in cfg.AI.Provider.
func NewScriptRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (ScriptRepository, error) {
	switch cfg.AI.Provider {
	case "", "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return NewGeminiScriptRepository(cfg, log, client), nil
	case "openai":
		return NewOpenAIScriptRepository(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.AI.Provider)
	}
}

func newRequestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

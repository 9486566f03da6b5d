package strategy

import (
	"context"
	"fmt"
	"strconv"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/telegram"
)

// NotifyStepStrategy posts the digest headlines to Telegram.
type NotifyStepStrategy struct {
	digests  DigestBuilder
	notifier telegram.Notifier
	logger   *logger.Logger
}

// NewNotifyStepStrategy creates a new instance of NotifyStepStrategy. A nil notifier turns the step into a no-op.
func NewNotifyStepStrategy(digests DigestBuilder, notifier telegram.Notifier, log *logger.Logger) *NotifyStepStrategy {
	return &NotifyStepStrategy{digests: digests, notifier: notifier, logger: log}
}

// GetName returns the step name this strategy handles.
func (s *NotifyStepStrategy) GetName() string {
	return StepNotify
}

func (s *NotifyStepStrategy) Execute(ctx context.Context, run *dto.AutomationRunRequest) (map[string]string, error) {
	if s.notifier == nil || run.SkipNotify {
		return map[string]string{"skipped": "true"}, nil
	}

	digest, err := s.digests.GetByDay(ctx, run.Day)
	if err != nil {
		return nil, err
	}

	messages := telegram.FormatDigestForTelegram(digest)
	for i, msg := range messages {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send telegram message", logger.ErrorField(err), logger.IntField("part", i+1))
			return nil, fmt.Errorf("failed to send telegram message part %d: %w", i+1, err)
		}
	}
	return map[string]string{"messages": strconv.Itoa(len(messages))}, nil
}

package strategy

import (
	"context"
	"strconv"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"
)

// DigestStepStrategy refills the day's digest with the configured defaults.
type DigestStepStrategy struct {
	builder DigestBuilder
	logger  *logger.Logger
}

// NewDigestStepStrategy creates a new instance of DigestStepStrategy.
func NewDigestStepStrategy(builder DigestBuilder, log *logger.Logger) *DigestStepStrategy {
	return &DigestStepStrategy{builder: builder, logger: log}
}

// GetName returns the step name this strategy handles.
func (s *DigestStepStrategy) GetName() string {
	return StepDigest
}

func (s *DigestStepStrategy) Execute(ctx context.Context, run *dto.AutomationRunRequest) (map[string]string, error) {
	res, err := s.builder.CreateOrRefill(ctx, run.Day, s.builder.DefaultParams(), true, run.ForceDigest)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Automation digest step finished",
		logger.StringField("run_id", run.RunID),
		logger.StringField("day", run.Day),
		logger.StringField("status", string(res.Digest.Status)))

	return map[string]string{
		"status":   string(res.Digest.Status),
		"items":    strconv.Itoa(res.Digest.ItemsCount),
		"inserted": strconv.Itoa(res.Inserted),
		"changed":  strconv.FormatBool(res.Changed),
	}, nil
}

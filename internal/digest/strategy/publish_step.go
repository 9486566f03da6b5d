package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/common"

	"github.com/redis/go-redis/v9"
)

// PublishStepStrategy announces a scripted digest on the digest.ready stream for the media workers.
type PublishStepStrategy struct {
	redisClient *redis.Client
	digests     DigestBuilder
	maxLen      int64
}

// NewPublishStepStrategy creates a new instance of PublishStepStrategy.
func NewPublishStepStrategy(redisClient *redis.Client, digests DigestBuilder, maxLen int64) *PublishStepStrategy {
	return &PublishStepStrategy{redisClient: redisClient, digests: digests, maxLen: maxLen}
}

// GetName returns the step name this strategy handles.
func (s *PublishStepStrategy) GetName() string {
	return StepPublish
}

func (s *PublishStepStrategy) Execute(ctx context.Context, run *dto.AutomationRunRequest) (map[string]string, error) {
	digest, err := s.digests.GetByDay(ctx, run.Day)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.DigestReadyEvent{
		Day:      digest.Day,
		DigestID: digest.ID,
		Status:   string(digest.Status),
		Items:    digest.ItemsCount,
		RunID:    run.RunID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal digest ready event: %w", err)
	}

	id, err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamDigestReady,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to publish digest ready event: %w", err)
	}
	return map[string]string{"message_id": id}, nil
}

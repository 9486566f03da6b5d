package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/common"
	"dfo-news-digest/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDigests struct {
	digest *dto.DigestResponse
	refill bool
	force  bool
	params entity.DigestParams
	getErr error
}

func (f *fakeDigests) DefaultParams() entity.DigestParams { return entity.DefaultDigestParams() }

func (f *fakeDigests) CreateOrRefill(_ context.Context, _ string, params entity.DigestParams, refill, force bool) (*dto.BuildDigestResponse, error) {
	f.params, f.refill, f.force = params, refill, force
	return &dto.BuildDigestResponse{Digest: f.digest, Changed: true, Inserted: f.digest.ItemsCount}, nil
}

func (f *fakeDigests) GetByDay(context.Context, string) (*dto.DigestResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.digest, nil
}

type fakeScripts struct {
	force bool
	resp  *dto.DigestResponse
}

func (f *fakeScripts) GenerateScript(_ context.Context, _ string, force bool) (*dto.DigestResponse, error) {
	f.force = force
	return f.resp, nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

func sampleDigest() *dto.DigestResponse {
	return &dto.DigestResponse{
		ID:         7,
		Day:        "2024-06-01",
		Status:     entity.DigestStatusReady,
		ItemsCount: 1,
		Items:      []entity.DigestEntry{{Rank: 1, ItemID: 3, Title: "порт", URL: "https://example.com/3"}},
		Script:     []byte(`[{"type":"intro","text":"a"},{"type":"outro","text":"b"}]`),
	}
}

func TestDigestStepStrategy(t *testing.T) {
	digests := &fakeDigests{digest: sampleDigest()}
	step := NewDigestStepStrategy(digests, logger.NewNop())

	extra, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01", ForceDigest: true})
	require.NoError(t, err)
	assert.Equal(t, StepDigest, step.GetName())
	assert.True(t, digests.refill)
	assert.True(t, digests.force)
	assert.Equal(t, entity.DefaultDigestParams(), digests.params)
	assert.Equal(t, "ready", extra["status"])
	assert.Equal(t, "1", extra["items"])
}

func TestScriptStepStrategy(t *testing.T) {
	scripts := &fakeScripts{resp: &dto.DigestResponse{ScriptModel: "gemini-2.0-flash", Script: sampleDigest().Script}}
	step := NewScriptStepStrategy(scripts)

	extra, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01", ForceScript: true})
	require.NoError(t, err)
	assert.True(t, scripts.force)
	assert.Equal(t, "2", extra["segments"])
	assert.Equal(t, "gemini-2.0-flash", extra["model"])
}

func TestPublishStepStrategy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	step := NewPublishStepStrategy(rdb, &fakeDigests{digest: sampleDigest()}, 100)
	extra, err := step.Execute(context.Background(), &dto.AutomationRunRequest{RunID: "r1", Day: "2024-06-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, extra["message_id"])

	msgs, err := rdb.XRange(context.Background(), common.RedisStreamDigestReady, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	var event dto.DigestReadyEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["payload"].(string)), &event))
	assert.Equal(t, dto.DigestReadyEvent{Day: "2024-06-01", DigestID: 7, Status: "ready", Items: 1, RunID: "r1"}, event)
}

func TestNotifyStepStrategy(t *testing.T) {
	t.Run("sends digest", func(t *testing.T) {
		notifier := &fakeNotifier{}
		step := NewNotifyStepStrategy(&fakeDigests{digest: sampleDigest()}, notifier, logger.NewNop())

		extra, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01"})
		require.NoError(t, err)
		assert.Equal(t, "1", extra["messages"])
		require.Len(t, notifier.sent, 1)
		assert.Contains(t, notifier.sent[0], "порт")
	})

	t.Run("skipped without notifier", func(t *testing.T) {
		step := NewNotifyStepStrategy(&fakeDigests{getErr: errors.New("unused")}, nil, logger.NewNop())
		extra, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01"})
		require.NoError(t, err)
		assert.Equal(t, "true", extra["skipped"])
	})

	t.Run("skip flag", func(t *testing.T) {
		notifier := &fakeNotifier{}
		step := NewNotifyStepStrategy(&fakeDigests{digest: sampleDigest()}, notifier, logger.NewNop())
		_, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01", SkipNotify: true})
		require.NoError(t, err)
		assert.Empty(t, notifier.sent)
	})

	t.Run("send failure", func(t *testing.T) {
		notifier := &fakeNotifier{err: errors.New("forbidden")}
		step := NewNotifyStepStrategy(&fakeDigests{digest: sampleDigest()}, notifier, logger.NewNop())
		_, err := step.Execute(context.Background(), &dto.AutomationRunRequest{Day: "2024-06-01"})
		assert.ErrorContains(t, err, "forbidden")
	})
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/strategy"
	"dfo-news-digest/pkg/common"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/telegram"
	"dfo-news-digest/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

const (
	maxErrorLen    = 800
	maxRunLogLimit = 800
)

// releaseLockScript deletes the lock only while it is still held by the given run.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AutomationService queues, executes and reports daily pipeline runs.
type AutomationService interface {
	Enqueue(ctx context.Context, req dto.AutomationRunRequest) (*dto.AutomationRunResponse, error)
	ProcessTask(ctx context.Context)
	Run(ctx context.Context, req *dto.AutomationRunRequest) error
	State(ctx context.Context) (*dto.AutomationStateResponse, error)
	ListRuns(ctx context.Context, limit, offset int) (*dto.AutomationRunsResponse, error)
	GetRun(ctx context.Context, runID string, logLimit int) (*dto.AutomationRunDetail, error)
}

// NewAutomationService creates a new AutomationService. Steps run in the given order.
// notifier may be nil.
func NewAutomationService(
	redisClient *redis.Client,
	steps []strategy.StepStrategy,
	notifier telegram.Notifier,
	log *logger.Logger,
	loc *time.Location,
	cfg config.Automation,
	streamMaxLen int64,
) AutomationService {
	if loc == nil {
		loc = time.UTC
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Hour
	}
	if cfg.LogMaxLines <= 0 {
		cfg.LogMaxLines = 800
	}
	if cfg.LogTTL <= 0 {
		cfg.LogTTL = 72 * time.Hour
	}
	if cfg.MaxRuns <= 0 {
		cfg.MaxRuns = 500
	}
	return &automationService{
		redisClient:  redisClient,
		steps:        steps,
		notifier:     notifier,
		logger:       log,
		loc:          loc,
		cfg:          cfg,
		streamMaxLen: streamMaxLen,
	}
}

type automationService struct {
	redisClient  *redis.Client
	steps        []strategy.StepStrategy
	notifier     telegram.Notifier
	logger       *logger.Logger
	loc          *time.Location
	cfg          config.Automation
	streamMaxLen int64
}

func utcISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func newRunID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func runKey(runID string) string {
	return common.RedisKeyAutomationRun + runID
}

func runLogKey(runID string) string {
	return common.RedisKeyAutomationRunLog + runID
}

// Enqueue takes the single-flight lock and places a run on the automation stream.
func (s *automationService) Enqueue(ctx context.Context, req dto.AutomationRunRequest) (*dto.AutomationRunResponse, error) {
	if req.Day == "" {
		req.Day = utils.Today(s.loc)
	}
	if _, err := utils.ParseDay(req.Day, s.loc); err != nil {
		return nil, newValidationError("day", "must be YYYY-MM-DD, got %q", req.Day)
	}
	if req.TriggeredBy == "" {
		req.TriggeredBy = "api"
	}
	req.RunID = newRunID()

	ok, err := s.redisClient.SetNX(ctx, common.RedisKeyAutomationLock, req.RunID, s.cfg.LockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire automation lock: %w", err)
	}
	if !ok {
		holder, _ := s.redisClient.Get(ctx, common.RedisKeyAutomationLock).Result()
		s.logger.Warn("Automation run rejected, lock is held", logger.StringField("holder", holder), logger.StringField("day", req.Day))
		return nil, fmt.Errorf("%w: %s", ErrRunInProgress, holder)
	}

	if err := s.addRun(ctx, req.RunID); err != nil {
		s.releaseLock(ctx, req.RunID)
		return nil, err
	}
	if err := s.setRun(ctx, req.RunID, map[string]interface{}{
		"status":       dto.RunStatusQueued,
		"day":          req.Day,
		"triggered_by": req.TriggeredBy,
		"created_at":   utcISO(),
		"steps":        "{}",
	}); err != nil {
		s.releaseLock(ctx, req.RunID)
		return nil, err
	}
	s.appendLog(ctx, req.RunID, fmt.Sprintf("pipeline: QUEUED day=%s triggered_by=%s force_digest=%t force_script=%t",
		req.Day, req.TriggeredBy, req.ForceDigest, req.ForceScript))

	payload, err := json.Marshal(req)
	if err != nil {
		s.releaseLock(ctx, req.RunID)
		return nil, fmt.Errorf("failed to marshal run payload: %w", err)
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamAutomationRun,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.streamMaxLen,
		Approx: s.streamMaxLen > 0,
	}).Err(); err != nil {
		s.logger.Error("Failed to enqueue automation run", logger.ErrorField(err), logger.StringField("run_id", req.RunID))
		s.finishRun(ctx, req.RunID, err)
		s.releaseLock(ctx, req.RunID)
		return nil, fmt.Errorf("enqueue automation run: %w", err)
	}

	s.logger.Info("Automation run queued", logger.StringField("run_id", req.RunID), logger.StringField("day", req.Day))
	return &dto.AutomationRunResponse{RunID: req.RunID, Day: req.Day}, nil
}

// ProcessTask dequeues and executes a single run.
func (s *automationService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamAutomationRun, ">"},
		Count:    1,
		Block:    2 * time.Second,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}
	message := streams[0].Messages[0]
	defer s.ack(ctx, message.ID)

	data, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.StringField("message_id", message.ID))
		return
	}

	var req dto.AutomationRunRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		s.logger.Error("Failed to unmarshal run payload", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		return
	}

	runCtx := ctx
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	if err := s.Run(runCtx, &req); err != nil {
		s.logger.Error("Automation run failed", logger.ErrorField(err), logger.StringField("run_id", req.RunID))
	}
}

func (s *automationService) ack(ctx context.Context, id string) {
	if err := s.redisClient.XAck(context.WithoutCancel(ctx), common.RedisStreamAutomationRun, common.RedisStreamGroup, id).Err(); err != nil {
		s.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.StringField("message_id", id))
	}
}

// Run executes every step in order and records the outcome. The lock taken by Enqueue is released on return.
func (s *automationService) Run(ctx context.Context, req *dto.AutomationRunRequest) (runErr error) {
	// bookkeeping must survive a cancelled run context
	bctx := context.WithoutCancel(ctx)
	if req.RunID == "" {
		req.RunID = newRunID()
		if err := s.addRun(bctx, req.RunID); err != nil {
			return err
		}
	}

	defer func() {
		s.finishRun(bctx, req.RunID, runErr)
		if runErr != nil {
			s.notifyFailure(req, runErr)
		}
		state, err := s.redisClient.HGet(bctx, common.RedisKeyAutomationState, "running_run_id").Result()
		if err == nil && state == req.RunID {
			s.setState(bctx, map[string]interface{}{"running_run_id": "", "running_day": ""})
		}
		s.releaseLock(bctx, req.RunID)
	}()

	if err := s.setRun(bctx, req.RunID, map[string]interface{}{
		"status":     dto.RunStatusRunning,
		"day":        req.Day,
		"started_at": utcISO(),
	}); err != nil {
		return err
	}
	s.setState(bctx, map[string]interface{}{"running_run_id": req.RunID, "running_day": req.Day})
	s.appendLog(bctx, req.RunID, fmt.Sprintf("pipeline: RUNNING day=%s", req.Day))

	for _, step := range s.steps {
		name := step.GetName()
		s.recordStep(bctx, req.RunID, name, dto.RunStatusRunning, nil)

		extra, err := step.Execute(ctx, req)
		if err != nil {
			s.recordStep(bctx, req.RunID, name, dto.RunStatusFailed, map[string]string{"error": clipError(err.Error())})
			s.appendLog(bctx, req.RunID, fmt.Sprintf("%s: FAILED: %v", name, err))
			return fmt.Errorf("step %s: %w", name, err)
		}

		s.recordStep(bctx, req.RunID, name, dto.RunStatusDone, extra)
		s.appendLog(bctx, req.RunID, fmt.Sprintf("%s: done %s", name, formatExtra(extra)))
	}
	return nil
}

func (s *automationService) finishRun(ctx context.Context, runID string, runErr error) {
	now := utcISO()
	if runErr != nil {
		msg := clipError(runErr.Error())
		_ = s.setRun(ctx, runID, map[string]interface{}{"status": dto.RunStatusFailed, "finished_at": now, "error": msg})
		s.setState(ctx, map[string]interface{}{"last_failed_run_id": runID, "last_failed_at": now, "last_failed_error": msg})
		s.appendLog(ctx, runID, "pipeline: FAILED: "+msg)
		return
	}
	_ = s.setRun(ctx, runID, map[string]interface{}{"status": dto.RunStatusDone, "finished_at": now})
	s.setState(ctx, map[string]interface{}{"last_ok_run_id": runID, "last_ok_at": now})
	s.appendLog(ctx, runID, "pipeline: DONE")
}

func (s *automationService) notifyFailure(req *dto.AutomationRunRequest, runErr error) {
	if s.notifier == nil || !s.cfg.Notify {
		return
	}
	msg := telegram.FormatErrorAlertMessage(time.Now().In(s.loc), req.RunID, req.Day, clipError(runErr.Error()))
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Error("Failed to send failure alert", logger.ErrorField(err), logger.StringField("run_id", req.RunID))
	}
}

func (s *automationService) recordStep(ctx context.Context, runID, name, status string, extra map[string]string) {
	steps := map[string]dto.StepState{}
	raw, err := s.redisClient.HGet(ctx, runKey(runID), "steps").Result()
	if err == nil && raw != "" {
		_ = json.Unmarshal([]byte(raw), &steps)
	}
	steps[name] = dto.StepState{Status: status, TS: utcISO(), Extra: extra}

	encoded, err := json.Marshal(steps)
	if err != nil {
		s.logger.Error("Failed to marshal run steps", logger.ErrorField(err), logger.StringField("run_id", runID))
		return
	}
	if err := s.setRun(ctx, runID, map[string]interface{}{"steps": string(encoded)}); err != nil {
		s.logger.Error("Failed to record run step", logger.ErrorField(err), logger.StringField("run_id", runID), logger.StringField("step", name))
	}
}

func (s *automationService) setRun(ctx context.Context, runID string, fields map[string]interface{}) error {
	if _, ok := fields["updated_at"]; !ok {
		fields["updated_at"] = utcISO()
	}
	key := runKey(runID)
	pipe := s.redisClient.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.cfg.LogTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save automation run %s: %w", runID, err)
	}
	return nil
}

func (s *automationService) setState(ctx context.Context, fields map[string]interface{}) {
	fields["updated_at"] = utcISO()
	pipe := s.redisClient.TxPipeline()
	pipe.HSet(ctx, common.RedisKeyAutomationState, fields)
	pipe.Expire(ctx, common.RedisKeyAutomationState, s.cfg.LogTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Failed to save automation state", logger.ErrorField(err))
	}
}

func (s *automationService) addRun(ctx context.Context, runID string) error {
	pipe := s.redisClient.TxPipeline()
	pipe.ZAdd(ctx, common.RedisKeyAutomationRuns, redis.Z{Score: float64(time.Now().UnixNano()), Member: runID})
	pipe.ZRemRangeByRank(ctx, common.RedisKeyAutomationRuns, 0, -(s.cfg.MaxRuns + 1))
	pipe.Expire(ctx, common.RedisKeyAutomationRuns, s.cfg.LogTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("index automation run %s: %w", runID, err)
	}
	return nil
}

func (s *automationService) appendLog(ctx context.Context, runID, msg string) {
	key := runLogKey(runID)
	pipe := s.redisClient.TxPipeline()
	pipe.RPush(ctx, key, utcISO()+" | "+msg)
	pipe.LTrim(ctx, key, -s.cfg.LogMaxLines, -1)
	pipe.Expire(ctx, key, s.cfg.LogTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error("Failed to append run log", logger.ErrorField(err), logger.StringField("run_id", runID))
	}
}

func (s *automationService) releaseLock(ctx context.Context, runID string) {
	if err := releaseLockScript.Run(ctx, s.redisClient, []string{common.RedisKeyAutomationLock}, runID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Error("Failed to release automation lock", logger.ErrorField(err), logger.StringField("run_id", runID))
	}
}

// State returns the global automation state hash.
func (s *automationService) State(ctx context.Context) (*dto.AutomationStateResponse, error) {
	state, err := s.redisClient.HGetAll(ctx, common.RedisKeyAutomationState).Result()
	if err != nil {
		return nil, fmt.Errorf("load automation state: %w", err)
	}
	return &dto.AutomationStateResponse{State: state}, nil
}

// ListRuns returns run ids, newest first.
func (s *automationService) ListRuns(ctx context.Context, limit, offset int) (*dto.AutomationRunsResponse, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, newValidationError("limit", "must be between 1 and %d, got %d", maxListLimit, limit)
	}
	if offset < 0 {
		return nil, newValidationError("offset", "must not be negative, got %d", offset)
	}

	total, err := s.redisClient.ZCard(ctx, common.RedisKeyAutomationRuns).Result()
	if err != nil {
		return nil, fmt.Errorf("count automation runs: %w", err)
	}
	ids, err := s.redisClient.ZRevRange(ctx, common.RedisKeyAutomationRuns, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list automation runs: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.AutomationRunsResponse{Total: total, Limit: limit, Offset: offset, Items: ids}, nil
}

// GetRun returns a run and the tail of its log.
func (s *automationService) GetRun(ctx context.Context, runID string, logLimit int) (*dto.AutomationRunDetail, error) {
	if logLimit < 0 || logLimit > maxRunLogLimit {
		return nil, newValidationError("log_limit", "must be between 0 and %d, got %d", maxRunLogLimit, logLimit)
	}

	raw, err := s.redisClient.HGetAll(ctx, runKey(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load automation run %s: %w", runID, err)
	}
	if len(raw) == 0 || raw["status"] == "" {
		return nil, ErrRunNotFound
	}

	run := &dto.AutomationRun{
		RunID:       runID,
		Status:      raw["status"],
		Day:         raw["day"],
		TriggeredBy: raw["triggered_by"],
		CreatedAt:   raw["created_at"],
		UpdatedAt:   raw["updated_at"],
		StartedAt:   raw["started_at"],
		FinishedAt:  raw["finished_at"],
		Error:       raw["error"],
		Steps:       map[string]dto.StepState{},
	}
	if steps := raw["steps"]; steps != "" {
		if err := json.Unmarshal([]byte(steps), &run.Steps); err != nil {
			s.logger.Warn("Malformed run steps", logger.ErrorField(err), logger.StringField("run_id", runID))
		}
	}

	lines := []string{}
	if logLimit > 0 {
		lines, err = s.redisClient.LRange(ctx, runLogKey(runID), int64(-logLimit), -1).Result()
		if err != nil {
			return nil, fmt.Errorf("load automation run log %s: %w", runID, err)
		}
		if lines == nil {
			lines = []string{}
		}
	}
	return &dto.AutomationRunDetail{Run: run, Log: lines}, nil
}

func clipError(msg string) string {
	r := []rune(msg)
	if len(r) <= maxErrorLen {
		return msg
	}
	return string(r[:maxErrorLen])
}

func formatExtra(extra map[string]string) string {
	keys := lo.Keys(extra)
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+extra[k])
	}
	return strings.Join(parts, " ")
}

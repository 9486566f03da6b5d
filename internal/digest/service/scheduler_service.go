package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService triggers the daily automation run on a cron expression.
type SchedulerService interface {
	ProcessSchedule(ctx context.Context, now time.Time)
	NextRun() time.Time
}

// NewSchedulerService creates a new scheduler service. The cron expression is evaluated in loc.
func NewSchedulerService(automation AutomationService, log *logger.Logger, loc *time.Location, cronExpr string) (SchedulerService, error) {
	if loc == nil {
		loc = time.UTC
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", cronExpr, err)
	}

	return &schedulerService{
		automation: automation,
		logger:     log,
		loc:        loc,
		schedule:   schedule,
		next:       schedule.Next(time.Now().In(loc)),
	}, nil
}

type schedulerService struct {
	automation AutomationService
	logger     *logger.Logger
	loc        *time.Location
	mu         sync.Mutex
	schedule   cron.Schedule
	next       time.Time
}

// ProcessSchedule enqueues a run for the current day once the next fire time has passed.
func (s *schedulerService) ProcessSchedule(ctx context.Context, now time.Time) {
	now = now.In(s.loc)
	s.mu.Lock()
	if now.Before(s.next) {
		s.mu.Unlock()
		return
	}
	s.next = s.schedule.Next(now)
	next := s.next
	s.mu.Unlock()

	day := utils.DayKey(now, s.loc)
	res, err := s.automation.Enqueue(ctx, dto.AutomationRunRequest{Day: day, TriggeredBy: "cron"})
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			s.logger.Warn("Scheduled run skipped, another run is in progress", logger.StringField("day", day))
			return
		}
		s.logger.Error("Failed to enqueue scheduled run", logger.ErrorField(err), logger.StringField("day", day))
		return
	}

	s.logger.Info("Scheduled run queued",
		logger.StringField("run_id", res.RunID),
		logger.StringField("day", day),
		logger.Field("next_run", next))
}

// NextRun returns the next fire time.
func (s *schedulerService) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

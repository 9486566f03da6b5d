package consumer

import (
	"context"
	"sync"
	"time"

	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/pkg/common"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/utils"
)

// RedisConsumer runs the automation stream reader and the schedule ticker.
type RedisConsumer struct {
	automationService service.AutomationService
	schedulerService  service.SchedulerService
	pollingInterval   time.Duration
	logger            *logger.Logger
	stopChan          chan struct{}
	wg                sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer. schedulerService may be nil when automation is triggered only by API.
func NewRedisConsumer(
	automationService service.AutomationService,
	schedulerService service.SchedulerService,
	pollingInterval time.Duration,
	log *logger.Logger,
) *RedisConsumer {
	if pollingInterval <= 0 {
		pollingInterval = 30 * time.Second
	}
	return &RedisConsumer{
		automationService: automationService,
		schedulerService:  schedulerService,
		pollingInterval:   pollingInterval,
		logger:            log,
		stopChan:          make(chan struct{}),
	}
}

// Start begins the consumer's processing loops.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.automationService.ProcessTask, common.RedisStreamAutomationRun)

	if c.schedulerService != nil {
		c.RegisterTickerHandler(ctx, func(ctx context.Context) {
			c.schedulerService.ProcessSchedule(ctx, time.Now())
		}, c.pollingInterval, 10*time.Second, "automation-schedule")
	}
}

// RegisterStreamHandler calls fn in a loop until the consumer stops. fn is expected to block on the stream read.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				fn(ctx)
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/delivery/consumer"
	delivery "dfo-news-digest/internal/digest/delivery/http"
	_ "dfo-news-digest/internal/digest/docs"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/internal/digest/strategy"
	"dfo-news-digest/pkg/common"
	"dfo-news-digest/pkg/database"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/redis"
	"dfo-news-digest/pkg/telegram"
	"dfo-news-digest/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the digest API, the automation consumer and the daily scheduler",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Digest Service", logger.Field("name", cfg.App.Name))

	loc, err := utils.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		appLogger.Fatal("Invalid digest timezone", logger.ErrorField(err))
	}

	db, err := database.NewDB(database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	defer db.Close()

	// postgres schemas come from cmd/migrate
	if cfg.Database.Driver == database.DriverSQLite {
		if err := repository.AutoMigrate(db.DB); err != nil {
			appLogger.Fatal("Failed to migrate sqlite schema", logger.ErrorField(err))
		}
	}

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	if err := redis.EnsureGroup(ctx, redisClient.Client, common.RedisStreamAutomationRun, common.RedisStreamGroup); err != nil {
		appLogger.Fatal("Failed to create automation consumer group", logger.ErrorField(err))
	}

	filter := candidate.DefaultContentFilter()
	if len(cfg.Digest.ExcludedTerms) > 0 {
		filter = candidate.NewKeywordExclusion(cfg.Digest.ExcludedTerms)
	}

	// Initialize repositories
	digestRepo := repository.NewDigestRepository(db.DB)
	itemRepo := repository.NewItemRepository(db.DB)
	candidateRepo := repository.NewCandidateRepository(db.DB, candidate.NewBuilder(filter))
	scriptRepo, err := repository.NewScriptRepository(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize script provider", logger.ErrorField(err))
	}

	// Initialize services
	digestSvc := service.NewDigestService(digestRepo, candidateRepo, appLogger, loc, cfg.Digest.Defaults, cfg.Digest.CacheTTL)
	itemSvc := service.NewItemService(itemRepo, filter, appLogger, loc)
	scriptSvc := service.NewScriptService(digestSvc, digestRepo, scriptRepo, appLogger, cfg.AI.Tone)

	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	} else {
		appLogger.Warn("Telegram bot token is empty, notifications are disabled")
	}

	steps := []strategy.StepStrategy{
		strategy.NewDigestStepStrategy(digestSvc, appLogger),
		strategy.NewScriptStepStrategy(scriptSvc),
		strategy.NewPublishStepStrategy(redisClient.Client, digestSvc, cfg.Redis.StreamMaxLen),
		strategy.NewNotifyStepStrategy(digestSvc, notifier, appLogger),
	}
	automationSvc := service.NewAutomationService(redisClient.Client, steps, notifier, appLogger, loc, cfg.Automation, cfg.Redis.StreamMaxLen)

	var schedulerSvc service.SchedulerService
	if cfg.Automation.Enabled {
		schedulerSvc, err = service.NewSchedulerService(automationSvc, appLogger, loc, cfg.Automation.Cron)
		if err != nil {
			appLogger.Fatal("Invalid automation schedule", logger.ErrorField(err))
		}
		appLogger.Info("Daily automation scheduled",
			logger.StringField("cron", cfg.Automation.Cron),
			logger.Field("next_run", schedulerSvc.NextRun()))
	}

	redisConsumer := consumer.NewRedisConsumer(automationSvc, schedulerSvc, cfg.Automation.PollingInterval, appLogger)
	redisConsumer.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")
	delivery.NewDigestHandler(digestSvc, scriptSvc, appLogger).RegisterRoutes(apiV1.Group("/digests"))
	delivery.NewItemHandler(itemSvc, appLogger).RegisterRoutes(apiV1.Group("/items"))
	delivery.NewAutomationHandler(automationSvc, appLogger).RegisterRoutes(apiV1.Group("/automation"))

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	redisConsumer.Stop()

	appLogger.Info("Server exiting")
}

// @title DFO News Digest API
// @version 1.0
// @description Daily business news digest for the Russian Far East: item intake, digest selection, scripts and automation runs.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "digest-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-digest.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing digest-service CLI: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/config"
	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/digest/service"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/database"
	"dfo-news-digest/pkg/logger"
	"dfo-news-digest/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	configPath string

	refill        bool
	force         bool
	limit         int
	offset        int
	olderThanDays int
	params        entity.DigestParams
)

var recent = dto.DefaultListItemsRequest()

var rootCmd = &cobra.Command{
	Use:   "digestctl",
	Short: "One-shot operations against the DFO digest store",
	Long: `digestctl builds, inspects and lists daily digests and purges stale items
using the same configuration and database as the digest service.`,
}

// app is the slice of the service stack the CLI needs.
type app struct {
	logger  *logger.Logger
	db      *database.DB
	digests service.DigestService
	items   service.ItemService
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	loc, err := utils.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	if cfg.Database.Driver == database.DriverSQLite {
		if err := repository.AutoMigrate(db.DB); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite schema: %w", err)
		}
	}

	filter := candidate.DefaultContentFilter()
	if len(cfg.Digest.ExcludedTerms) > 0 {
		filter = candidate.NewKeywordExclusion(cfg.Digest.ExcludedTerms)
	}

	digestRepo := repository.NewDigestRepository(db.DB)
	candidateRepo := repository.NewCandidateRepository(db.DB, candidate.NewBuilder(filter))

	return &app{
		logger:  appLogger,
		db:      db,
		digests: service.NewDigestService(digestRepo, candidateRepo, appLogger, loc, cfg.Digest.Defaults, cfg.Digest.CacheTTL),
		items:   service.NewItemService(repository.NewItemRepository(db.DB), filter, appLogger, loc),
	}, nil
}

func (a *app) close() {
	_ = a.db.Close()
	_ = a.logger.Sync()
}

// applyParamFlags overlays the selection flags the user actually set on the configured defaults.
func applyParamFlags(cmd *cobra.Command, defaults entity.DigestParams) entity.DigestParams {
	out := defaults
	flags := cmd.Flags()
	if flags.Changed("top-n") {
		out.TopN = params.TopN
	}
	if flags.Changed("prefer-days") {
		out.PreferDays = params.PreferDays
	}
	if flags.Changed("max-lookback-days") {
		out.MaxLookbackDays = params.MaxLookbackDays
	}
	if flags.Changed("min-interest") {
		out.MinInterest = params.MinInterest
	}
	if flags.Changed("min-business") {
		out.MinBusiness = params.MinBusiness
	}
	if flags.Changed("min-dfo") {
		out.MinDFO = params.MinDFO
	}
	if flags.Changed("exclude-war") {
		out.ExcludeWar = params.ExcludeWar
	}
	if flags.Changed("only-dfo-business") {
		out.OnlyDFOBusiness = params.OnlyDFOBusiness
	}
	return out
}

// withApp runs fn with a signal-aware context and prints its result as JSON.
func withApp(fn func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error)) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}

		out, err := fn(ctx, cmd, a, args)
		if err != nil {
			a.logger.Error("Command failed", logger.ErrorField(err), logger.StringField("command", cmd.Name()))
			a.close()
			os.Exit(1)
		}
		defer a.close()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			a.logger.Error("Failed to write output", logger.ErrorField(err))
		}
	}
}

func dayArg(a *app, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return utils.Today(a.digests.Location())
}

var buildCmd = &cobra.Command{
	Use:   "build [day]",
	Short: "Create or refill the digest for a day (defaults to today)",
	Args:  cobra.MaximumNArgs(1),
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		p := applyParamFlags(cmd, a.digests.DefaultParams())
		return a.digests.CreateOrRefill(ctx, dayArg(a, args), p, refill, force)
	}),
}

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics [day]",
	Short: "Show candidate counts for a day without changing anything",
	Args:  cobra.MaximumNArgs(1),
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		p := applyParamFlags(cmd, a.digests.DefaultParams())
		return a.digests.ComputeDiagnostics(ctx, dayArg(a, args), p)
	}),
}

var getCmd = &cobra.Command{
	Use:   "get [day]",
	Short: "Print a digest with its ranked items",
	Args:  cobra.MaximumNArgs(1),
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		return a.digests.GetByDay(ctx, dayArg(a, args))
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List digests, newest day first",
	Args:  cobra.NoArgs,
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		return a.digests.List(ctx, limit, offset)
	}),
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete items older than the retention window that no digest references",
	Args:  cobra.NoArgs,
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		return a.items.PurgeUnused(ctx, olderThanDays)
	}),
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent items by publication time, newest first",
	Args:  cobra.NoArgs,
	Run: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) (interface{}, error) {
		return a.items.ListRecent(ctx, recent)
	}),
}

func addParamFlags(cmd *cobra.Command) {
	d := entity.DefaultDigestParams()
	cmd.Flags().IntVar(&params.TopN, "top-n", d.TopN, "Digest size")
	cmd.Flags().IntVar(&params.PreferDays, "prefer-days", d.PreferDays, "Preferred window in days")
	cmd.Flags().IntVar(&params.MaxLookbackDays, "max-lookback-days", d.MaxLookbackDays, "Backfill bound in days")
	cmd.Flags().IntVar(&params.MinInterest, "min-interest", d.MinInterest, "Minimum interest score")
	cmd.Flags().IntVar(&params.MinBusiness, "min-business", d.MinBusiness, "Minimum business score")
	cmd.Flags().IntVar(&params.MinDFO, "min-dfo", d.MinDFO, "Minimum DFO score")
	cmd.Flags().BoolVar(&params.ExcludeWar, "exclude-war", d.ExcludeWar, "Exclude war-related items")
	cmd.Flags().BoolVar(&params.OnlyDFOBusiness, "only-dfo-business", d.OnlyDFOBusiness, "Only items analysed as DFO business")
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-digest.yaml", "Path to the configuration file")

	addParamFlags(buildCmd)
	buildCmd.Flags().BoolVar(&refill, "refill", true, "Top up a partially filled digest")
	buildCmd.Flags().BoolVar(&force, "force", false, "Release current items and rebuild")
	addParamFlags(diagnosticsCmd)
	listCmd.Flags().IntVar(&limit, "limit", 30, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	purgeCmd.Flags().IntVar(&olderThanDays, "older-than-days", 30, "Retention window in days")

	recentCmd.Flags().IntVar(&recent.WindowHours, "window-hours", recent.WindowHours, "Window in hours")
	recentCmd.Flags().IntVar(&recent.MinBusiness, "min-business", recent.MinBusiness, "Minimum business score")
	recentCmd.Flags().IntVar(&recent.MinDFO, "min-dfo", recent.MinDFO, "Minimum DFO score")
	recentCmd.Flags().BoolVar(&recent.RequireCompany, "require-company", recent.RequireCompany, "Only items naming a company")
	recentCmd.Flags().BoolVar(&recent.ExcludeWar, "exclude-war", recent.ExcludeWar, "Exclude war-related items")
	recentCmd.Flags().IntVar(&recent.Limit, "limit", recent.Limit, "Maximum number of items")

	rootCmd.AddCommand(buildCmd, diagnosticsCmd, getCmd, listCmd, purgeCmd, recentCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}

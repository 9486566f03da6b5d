package config

import (
	"time"

	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/config"

	"github.com/spf13/viper"
)

// DefaultCacheTTL bounds how long a process serves a cached digest read. The cache is per process,
// so fills made by digestctl or another replica become visible only after it expires.
const DefaultCacheTTL = 5 * time.Second

// Digest holds selection defaults and the reference timezone for day bucketing.
type Digest struct {
	Timezone      string              `mapstructure:"timezone"`
	Defaults      entity.DigestParams `mapstructure:"defaults"`
	CacheTTL      time.Duration       `mapstructure:"cache_ttl"`
	ExcludedTerms []string            `mapstructure:"excluded_terms"`
}

// Automation holds the daily pipeline trigger and run bookkeeping settings.
type Automation struct {
	Enabled         bool          `mapstructure:"enabled"`
	Cron            string        `mapstructure:"cron"`
	PollingInterval time.Duration `mapstructure:"polling_interval"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
	RunTimeout      time.Duration `mapstructure:"run_timeout"`
	LogMaxLines     int64         `mapstructure:"log_max_lines"`
	LogTTL          time.Duration `mapstructure:"log_ttl"`
	MaxRuns         int64         `mapstructure:"max_runs"`
	Notify          bool          `mapstructure:"notify"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
	Tone     string `mapstructure:"tone"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// OpenAI holds the configuration for the OpenAI API.
type OpenAI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the digest service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Digest     Digest          `mapstructure:"digest"`
	Automation Automation      `mapstructure:"automation"`
	AI         AI              `mapstructure:"ai"`
	Gemini     Gemini          `mapstructure:"gemini"`
	OpenAI     OpenAI          `mapstructure:"openai"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the digest configuration from the given path.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := config.LoadWith(v, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := entity.DefaultDigestParams()

	v.SetDefault("app.name", "dfo-news-digest")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.path", "digest.db")
	v.SetDefault("api.port", 8080)
	v.SetDefault("redis.stream_max_len", 1000)

	v.SetDefault("digest.timezone", "Asia/Vladivostok")
	v.SetDefault("digest.cache_ttl", DefaultCacheTTL)
	v.SetDefault("digest.defaults.top_n", d.TopN)
	v.SetDefault("digest.defaults.prefer_days", d.PreferDays)
	v.SetDefault("digest.defaults.max_lookback_days", d.MaxLookbackDays)
	v.SetDefault("digest.defaults.min_interest", d.MinInterest)
	v.SetDefault("digest.defaults.min_business", d.MinBusiness)
	v.SetDefault("digest.defaults.min_dfo", d.MinDFO)
	v.SetDefault("digest.defaults.exclude_war", d.ExcludeWar)
	v.SetDefault("digest.defaults.only_dfo_business", d.OnlyDFOBusiness)

	v.SetDefault("automation.cron", "0 8 * * *")
	v.SetDefault("automation.polling_interval", 30*time.Second)
	v.SetDefault("automation.lock_ttl", 2*time.Hour)
	v.SetDefault("automation.run_timeout", 30*time.Minute)
	v.SetDefault("automation.log_max_lines", 800)
	v.SetDefault("automation.log_ttl", 72*time.Hour)
	v.SetDefault("automation.max_runs", 500)
	v.SetDefault("automation.notify", true)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.tone", "деловой")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.max_request_per_minute", 10)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_request_per_minute", 20)
}

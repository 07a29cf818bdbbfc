package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lumastory/lumastory/internal/domain/usage"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	sharedConfig "github.com/lumastory/lumastory/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig               `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig             `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig               `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig                 `mapstructure:"auth"`
	Email      sharedConfig.EmailConfig                `mapstructure:"email"`
	Redis      sharedConfig.RedisConfig                `mapstructure:"redis"`
	Cache      sharedConfig.CacheConfig                `mapstructure:"cache"`
	Storage    sharedConfig.StorageConfig              `mapstructure:"storage"`
	AI         sharedConfig.AIConfig                   `mapstructure:"ai"`
	Tiers      map[string]sharedConfig.TierLimitConfig `mapstructure:"tiers"`
	RateLimit  sharedConfig.RateLimitConfig            `mapstructure:"ratelimit"`
	Cron       sharedConfig.CronConfig                 `mapstructure:"cron"`
	Payment    sharedConfig.PaymentConfig              `mapstructure:"payment"`
	Permission sharedConfig.PermissionConfig           `mapstructure:"permission"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// requiredTiers must each have a policy row, otherwise Load fails.
var requiredTiers = []string{"trial", "pro", "family"}

// Load reads .env (if present), the config file and LUMA_* environment variables.
func Load(env string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("LUMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate checks settings whose absence would only surface at request time.
func (c *Config) Validate() error {
	for _, tier := range requiredTiers {
		if _, ok := c.Tiers[tier]; !ok {
			return fmt.Errorf("tier policy for %q is not configured", tier)
		}
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Mode == "release" && c.Auth.JWT.Secret == defaultJWTSecret {
		return errors.New("auth.jwt.secret must be set in release mode")
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.timezone", "UTC")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "lumastory_dev")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.issuer", "lumastory")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)
	v.SetDefault("auth.jwt.cookie_name", "access_token")

	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_address", "noreply@lumastory.local")
	v.SetDefault("email.from_name", "LumaStory")
	v.SetDefault("email.support_inbox", "support@lumastory.local")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.user_ttl", "60s")

	v.SetDefault("storage.bucket", "avatars")
	v.SetDefault("storage.fetch_timeout", "10s")
	v.SetDefault("storage.upload_timeout", "15s")

	v.SetDefault("ai.story_model", "gemini-1.5-flash")
	v.SetDefault("ai.generation_timeout", "60s")

	v.SetDefault("tiers.trial.max_stories_per_day", 0)
	v.SetDefault("tiers.trial.max_child_profiles", 0)
	v.SetDefault("tiers.trial.images_allowed", false)
	v.SetDefault("tiers.trial.trial_story_cap", 1)
	v.SetDefault("tiers.pro.max_stories_per_day", 10)
	v.SetDefault("tiers.pro.max_child_profiles", 1)
	v.SetDefault("tiers.pro.images_allowed", true)
	v.SetDefault("tiers.family.unlimited_stories", true)
	v.SetDefault("tiers.family.max_child_profiles", 3)
	v.SetDefault("tiers.family.images_allowed", true)

	v.SetDefault("ratelimit.support_contact.limit", 5)
	v.SetDefault("ratelimit.support_contact.window", "1h")

	v.SetDefault("cron.reset_schedule", "0 0 * * *")
}

// TierPolicy converts the tiers section into the usage policy table.
func (c *Config) TierPolicy() (*usage.Policy, error) {
	limits := make(map[vo.Tier]usage.TierLimits, len(c.Tiers))
	for name, l := range c.Tiers {
		tier, err := vo.NewTier(name)
		if err != nil {
			return nil, err
		}
		limits[tier] = usage.TierLimits{
			MaxStoriesPerDay: l.MaxStoriesPerDay,
			UnlimitedStories: l.UnlimitedStories,
			MaxChildProfiles: l.MaxChildProfiles,
			ImagesAllowed:    l.ImagesAllowed,
			TrialStoryCap:    l.TrialStoryCap,
		}
	}
	return usage.NewPolicy(limits)
}

// PriceTiers indexes the configured payment prices by price id.
func (c *Config) PriceTiers() (map[string]vo.Tier, error) {
	out := make(map[string]vo.Tier, len(c.Payment.Stripe.PriceTiers))
	for _, pt := range c.Payment.Stripe.PriceTiers {
		tier, err := vo.NewTier(pt.Tier)
		if err != nil {
			return nil, fmt.Errorf("price %s: %w", pt.PriceID, err)
		}
		out[pt.PriceID] = tier
	}
	return out, nil
}

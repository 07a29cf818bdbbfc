package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Timezone sets the business day boundary for daily usage counters.
	Timezone string `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, d.SSLMode)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	CookieName       string `mapstructure:"cookie_name"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	SupportInbox string `mapstructure:"support_inbox"`
}

func (e *EmailConfig) IsConfigured() bool {
	return e.SMTPHost != "" && e.FromAddress != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type CacheConfig struct {
	UserTTL time.Duration `mapstructure:"user_ttl"`
}

type StorageConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

func (s *StorageConfig) IsConfigured() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

type AIConfig struct {
	GeminiAPIKey      string        `mapstructure:"gemini_api_key"`
	StoryModel        string        `mapstructure:"story_model"`
	ImageEndpoint     string        `mapstructure:"image_endpoint"`
	ImageAPIKey       string        `mapstructure:"image_api_key"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout"`
}

// TierLimitConfig is the entitlement row for one subscription tier.
type TierLimitConfig struct {
	MaxStoriesPerDay int  `mapstructure:"max_stories_per_day"`
	UnlimitedStories bool `mapstructure:"unlimited_stories"`
	MaxChildProfiles int  `mapstructure:"max_child_profiles"`
	ImagesAllowed    bool `mapstructure:"images_allowed"`
	TrialStoryCap    int  `mapstructure:"trial_story_cap"`
}

type RateLimitRule struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	SupportContact RateLimitRule `mapstructure:"support_contact"`
}

type CronConfig struct {
	Secret        string `mapstructure:"secret"`
	ResetSchedule string `mapstructure:"reset_schedule"`
}

// PriceTier maps a payment provider price id to a subscription tier.
// Kept as a list because viper lowercases map keys.
type PriceTier struct {
	PriceID string `mapstructure:"price_id"`
	Tier    string `mapstructure:"tier"`
}

type StripeConfig struct {
	WebhookSecret string      `mapstructure:"webhook_secret"`
	PriceTiers    []PriceTier `mapstructure:"price_tiers"`
}

type PaymentConfig struct {
	Stripe StripeConfig `mapstructure:"stripe"`
}

type PermissionConfig struct {
	PolicyFile string `mapstructure:"policy_file"`
}

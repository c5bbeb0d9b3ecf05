// Package config handles application configuration loading and validation using Viper.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // scheduler timezones must resolve in slim images

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Discord     DiscordConfig     `mapstructure:"discord"`
	Habbo       HabboConfig       `mapstructure:"habbo"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Eligibility EligibilityConfig `mapstructure:"eligibility"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Environment     string `mapstructure:"environment"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// DiscordConfig contains the outbound webhook used for action logs.
type DiscordConfig struct {
	WebhookURL  string  `mapstructure:"webhook_url"`
	Enabled     bool    `mapstructure:"enabled"`
	Username    string  `mapstructure:"username"`
	AvatarURL   string  `mapstructure:"avatar_url"`
	Footer      string  `mapstructure:"footer"`
	RatePerSec  float64 `mapstructure:"rate_per_sec"`
	Burst       int     `mapstructure:"burst"`
	SendTimeout int     `mapstructure:"send_timeout"` // seconds
}

// HabboConfig contains the public profile API settings.
type HabboConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ImagingURL string `mapstructure:"imaging_url"`
	Timeout    int    `mapstructure:"timeout"`   // seconds
	CacheTTL   int    `mapstructure:"cache_ttl"` // seconds
}

// DatabaseConfig contains database connection settings for PostgreSQL and Redis.
type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains PostgreSQL database connection and pool settings.
type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// DSN returns the libpq connection string.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// URL returns the connection string in URL form, as expected by the migrator.
func (c *PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// RedisConfig contains Redis cache connection and pool settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr returns host:port.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig contains account and session settings.
type AuthConfig struct {
	SessionTTL int `mapstructure:"session_ttl"` // seconds
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// EligibilityConfig points at an optional tier table file.
type EligibilityConfig struct {
	TablesPath string `mapstructure:"tables_path"`
}

// SchedulerConfig contains the daily license expiry job settings.
type SchedulerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Time     string `mapstructure:"time"`
	Timezone string `mapstructure:"timezone"`
}

// MetricsConfig contains Prometheus exporter settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig contains application logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdown_timeout", 15)

	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.username", "TÖH Bot")
	v.SetDefault("discord.avatar_url", "https://images.habbo.com/c_images/album1584/TUR44.gif")
	v.SetDefault("discord.footer", "TÖH Yönetim Sistemi")
	v.SetDefault("discord.rate_per_sec", 0.5)
	v.SetDefault("discord.burst", 5)
	v.SetDefault("discord.send_timeout", 10)

	v.SetDefault("habbo.base_url", "https://www.habbo.com.tr/api/public")
	v.SetDefault("habbo.imaging_url", "https://www.habbo.com.tr/habbo-imaging/avatarimage")
	v.SetDefault("habbo.timeout", 10)
	v.SetDefault("habbo.cache_ttl", 300)

	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.ssl_mode", "disable")
	v.SetDefault("database.postgres.max_open_conns", 10)
	v.SetDefault("database.postgres.max_idle_conns", 5)
	v.SetDefault("database.postgres.conn_max_lifetime", 300)
	v.SetDefault("database.redis.port", 6379)
	v.SetDefault("database.redis.pool_size", 10)

	v.SetDefault("auth.session_ttl", 86400)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.time", "03:00")
	v.SetDefault("scheduler.timezone", "Europe/Istanbul")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/toh-dashboard/")
	}

	// Server configuration
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.environment", "SERVER_ENVIRONMENT")

	// Discord configuration
	_ = v.BindEnv("discord.webhook_url", "DISCORD_WEBHOOK_URL")
	_ = v.BindEnv("discord.enabled", "DISCORD_ENABLED")

	// Habbo configuration
	_ = v.BindEnv("habbo.base_url", "HABBO_BASE_URL")
	_ = v.BindEnv("habbo.cache_ttl", "HABBO_CACHE_TTL")

	// PostgreSQL configuration
	_ = v.BindEnv("database.postgres.host", "POSTGRES_HOST")
	_ = v.BindEnv("database.postgres.port", "POSTGRES_PORT")
	_ = v.BindEnv("database.postgres.database", "POSTGRES_DB")
	_ = v.BindEnv("database.postgres.user", "POSTGRES_USER")
	_ = v.BindEnv("database.postgres.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("database.postgres.ssl_mode", "POSTGRES_SSL_MODE")

	// Redis configuration
	_ = v.BindEnv("database.redis.host", "REDIS_HOST")
	_ = v.BindEnv("database.redis.port", "REDIS_PORT")
	_ = v.BindEnv("database.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("database.redis.db", "REDIS_DB")

	// Eligibility tables
	_ = v.BindEnv("eligibility.tables_path", "ELIGIBILITY_TABLES_PATH")

	// Scheduler configuration
	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.time", "SCHEDULER_TIME")
	_ = v.BindEnv("scheduler.timezone", "SCHEDULER_TIMEZONE")

	// Logging configuration
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.output", "LOG_OUTPUT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Discord.Enabled && c.Discord.WebhookURL == "" {
		return fmt.Errorf("discord.webhook_url is required when discord is enabled")
	}
	if c.Habbo.BaseURL == "" {
		return fmt.Errorf("habbo.base_url is required")
	}
	if c.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if c.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if c.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}
	if c.Database.Redis.Host == "" {
		return fmt.Errorf("database.redis.host is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if c.Scheduler.Enabled {
		if _, err := c.Scheduler.GetLocation(); err != nil {
			return fmt.Errorf("scheduler.timezone: %w", err)
		}
	}
	return nil
}

// GetLocation returns the timezone location.
func (c *SchedulerConfig) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// SessionDuration returns the session lifetime.
func (c *AuthConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

// CacheDuration returns the profile cache lifetime.
func (c *HabboConfig) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

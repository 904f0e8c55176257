package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	AWS          AWSConfig          `mapstructure:"aws"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Application  ApplicationConfig  `mapstructure:"application"`
	Notification NotificationConfig `mapstructure:"notification"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	AllowOrigins string        `mapstructure:"allow_origins"`
	BodyLimitMB  int           `mapstructure:"body_limit_mb"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AWSConfig struct {
	Region      string `mapstructure:"region"`
	Bucket      string `mapstructure:"bucket"`
	PhotoPrefix string `mapstructure:"photo_prefix"`
	SESSender   string `mapstructure:"ses_sender"`
	SNSTopicARN string `mapstructure:"sns_topic_arn"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type ApplicationConfig struct {
	SubmitLockTTL  time.Duration `mapstructure:"submit_lock_ttl"`
	FieldCacheTTL  time.Duration `mapstructure:"field_cache_ttl"`
	MaxPhotoSizeMB int           `mapstructure:"max_photo_size_mb"`
}

type NotificationConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	QueueName    string        `mapstructure:"queue_name"`
	Workers      int           `mapstructure:"workers"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// Load reads config.yaml (optional), .env (optional) and the environment.
// Environment keys use underscores: DATABASE_HOST overrides database.host.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Hirely API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("server.body_limit_mb", 8)
	v.SetDefault("server.read_timeout", 30*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "hirely")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("aws.region", "ap-southeast-1")
	v.SetDefault("aws.bucket", "")
	v.SetDefault("aws.photo_prefix", "photos")
	v.SetDefault("aws.ses_sender", "")
	v.SetDefault("aws.sns_topic_arn", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "hirely")
	v.SetDefault("auth.access_token_ttl", 24*time.Hour)

	v.SetDefault("application.submit_lock_ttl", 30*time.Second)
	v.SetDefault("application.field_cache_ttl", 5*time.Minute)
	v.SetDefault("application.max_photo_size_mb", 5)

	v.SetDefault("notification.enabled", true)
	v.SetDefault("notification.queue_name", "hirely:notifications")
	v.SetDefault("notification.workers", 2)
	v.SetDefault("notification.max_retries", 3)
	v.SetDefault("notification.retry_backoff", 30*time.Second)
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("auth.jwt_secret is required in production")
		}
		c.Auth.JWTSecret = "dev-secret-change-me"
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return errors.New("database host and name are required")
	}
	if c.Application.SubmitLockTTL <= 0 {
		return errors.New("application.submit_lock_ttl must be positive")
	}
	if c.Notification.Workers < 1 {
		c.Notification.Workers = 1
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

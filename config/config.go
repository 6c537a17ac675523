package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Upstream UpstreamConfig
	Wizard   WizardConfig
	Report   ReportConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// UpstreamConfig points at the platform REST backend the console drives.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type WizardConfig struct {
	TTL               time.Duration
	ConsultationMode  string
	ReferenceCacheTTL time.Duration
}

type ReportConfig struct {
	RetentionDays int
	RetentionCron string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("UPSTREAM_BASE_URL", "https://forpharma-backend-c019df77bb93.herokuapp.com/api")
	viper.SetDefault("WIZARD_CONSULTATION_MODE", "all")
	viper.SetDefault("REPORT_RETENTION_DAYS", 90)
	viper.SetDefault("REPORT_RETENTION_CRON", "5 0 * * *")

	// A missing .env is fine, the environment alone can configure the service.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  parseDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: parseDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("UPSTREAM_BASE_URL"),
			Timeout: parseDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		},
		Wizard: WizardConfig{
			TTL:               parseDuration("WIZARD_TTL", 2*time.Hour),
			ConsultationMode:  viper.GetString("WIZARD_CONSULTATION_MODE"),
			ReferenceCacheTTL: parseDuration("REFERENCE_CACHE_TTL", 5*time.Minute),
		},
		Report: ReportConfig{
			RetentionDays: viper.GetInt("REPORT_RETENTION_DAYS"),
			RetentionCron: viper.GetString("REPORT_RETENTION_CRON"),
		},
	}

	return config, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

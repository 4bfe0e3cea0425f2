package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Reserve  ReserveConfig
	Payment  PaymentConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	StorageDriver   string
	SeasonFile      string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// ReserveConfig bounds the reservation retry loop.
type ReserveConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Timeout        time.Duration
}

type PaymentConfig struct {
	CallbackSecret string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("APP_NAME", "rancho-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("SEASON_FILE", "")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RESERVE_MAX_ATTEMPTS", 5)
	v.SetDefault("RESERVE_INITIAL_BACKOFF_MS", 20)
	v.SetDefault("RESERVE_MAX_BACKOFF_MS", 500)
	v.SetDefault("RESERVE_TIMEOUT_SECONDS", 10)
	v.SetDefault("PAYMENT_CALLBACK_SECRET", "")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")

	// .env is optional, the environment always wins
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			StorageDriver:   v.GetString("STORAGE_DRIVER"),
			SeasonFile:      v.GetString("SEASON_FILE"),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Reserve: ReserveConfig{
			MaxAttempts:    v.GetInt("RESERVE_MAX_ATTEMPTS"),
			InitialBackoff: time.Duration(v.GetInt("RESERVE_INITIAL_BACKOFF_MS")) * time.Millisecond,
			MaxBackoff:     time.Duration(v.GetInt("RESERVE_MAX_BACKOFF_MS")) * time.Millisecond,
			Timeout:        time.Duration(v.GetInt("RESERVE_TIMEOUT_SECONDS")) * time.Second,
		},
		Payment: PaymentConfig{
			CallbackSecret: v.GetString("PAYMENT_CALLBACK_SECRET"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case StorageDriverPostgres:
		if c.Database.Name == "" || c.Database.User == "" {
			return errors.New("config: DB_NAME and DB_USER are required for the postgres storage driver")
		}
		if c.Database.MaxConns < 2 {
			return errors.New("config: DB_MAX_CONNS must be at least 2")
		}
	case StorageDriverMemory:
	default:
		return errors.New("config: STORAGE_DRIVER must be postgres or memory")
	}

	if c.Reserve.MaxAttempts < 1 {
		return errors.New("config: RESERVE_MAX_ATTEMPTS must be at least 1")
	}
	if c.Reserve.InitialBackoff <= 0 || c.Reserve.MaxBackoff < c.Reserve.InitialBackoff {
		return errors.New("config: reserve backoff must be positive and RESERVE_MAX_BACKOFF_MS >= RESERVE_INITIAL_BACKOFF_MS")
	}
	if c.Reserve.Timeout <= 0 {
		return errors.New("config: RESERVE_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

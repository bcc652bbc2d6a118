package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv  string
	AppName string

	HTTPAddr string

	Database DatabaseConfig

	// AMQPURL empty means the server publishes through the in-memory queue.
	AMQPURL      string
	PublishQueue string

	Currency           string
	PaymentCallbackURL string

	// SimulatorSeed 0 seeds from the clock.
	SimulatorSeed int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a lib/pq connection URL.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found.
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "adboost-backend")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "adboost")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("PUBLISH_QUEUE", "ad_publish")
	v.SetDefault("CURRENCY", "NGN")
	v.SetDefault("PAYMENT_CALLBACK_URL", "http://localhost:8080/payments/verify")
	v.SetDefault("SIMULATOR_SEED", 0)

	cfg := &Config{
		AppEnv:   v.GetString("APP_ENV"),
		AppName:  v.GetString("APP_NAME"),
		HTTPAddr: v.GetString("HTTP_ADDR"),
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		AMQPURL:            v.GetString("AMQP_URL"),
		PublishQueue:       v.GetString("PUBLISH_QUEUE"),
		Currency:           strings.ToUpper(v.GetString("CURRENCY")),
		PaymentCallbackURL: v.GetString("PAYMENT_CALLBACK_URL"),
		SimulatorSeed:      v.GetInt64("SIMULATOR_SEED"),
	}

	if len(cfg.Currency) != 3 {
		return nil, envLoaded, fmt.Errorf("CURRENCY must be a 3-letter code, got %q", cfg.Currency)
	}
	if cfg.PublishQueue == "" {
		return nil, envLoaded, fmt.Errorf("PUBLISH_QUEUE must not be empty")
	}

	return cfg, envLoaded, nil
}

// Seed returns the simulator seed, falling back to the clock.
func (c *Config) Seed() int64 {
	if c.SimulatorSeed != 0 {
		return c.SimulatorSeed
	}
	return time.Now().UnixNano()
}

package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings read from config.yaml and the environment.
type Config struct {
	DatabaseURL      string
	DBSSLMode        string
	DBRequireTLS     bool
	DBConnectTimeout time.Duration
	DBMaxConns       int32

	HTTPAddr string

	SeedConcurrency   int
	SeedHashPasswords bool
	BcryptCost        int

	RabbitMQURL     string
	SeedEventsQueue string
}

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("database_url is not set")

// SetDefaults registers the default value of every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db_sslmode", "verify-full")
	v.SetDefault("db_require_tls", true)
	v.SetDefault("db_connect_timeout", 60*time.Second)
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("seed_concurrency", 10)
	v.SetDefault("seed_hash_passwords", true)
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("seed_events_queue", "seed:completed")
}

// Load reads a Config out of v. Environment variables named after the
// upper-cased keys override config file values when v uses AutomaticEnv.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		DatabaseURL:       v.GetString("database_url"),
		DBSSLMode:         v.GetString("db_sslmode"),
		DBRequireTLS:      v.GetBool("db_require_tls"),
		DBConnectTimeout:  v.GetDuration("db_connect_timeout"),
		DBMaxConns:        v.GetInt32("db_max_conns"),
		HTTPAddr:          v.GetString("http_addr"),
		SeedConcurrency:   v.GetInt("seed_concurrency"),
		SeedHashPasswords: v.GetBool("seed_hash_passwords"),
		BcryptCost:        v.GetInt("bcrypt_cost"),
		RabbitMQURL:       v.GetString("rabbitmq_url"),
		SeedEventsQueue:   v.GetString("seed_events_queue"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrMissingDatabaseURL
	}
	return cfg, nil
}

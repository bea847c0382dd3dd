package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Postgres PostgresConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Migrate  MigrateConfig
}

// PostgresConfig holds database connection settings
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DB              string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level    string
	Format   string
	SQLLevel string
}

type MigrateConfig struct {
	OnStart bool
}

// DSN returns the Postgres connection URL.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DB,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads configuration.
// Priority (highest to lowest):
// 1. Environment variables (e.g. POSTGRES_PASSWORD)
// 2. The given .env files, or .env in the working directory
// 3. Built-in defaults
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		// A missing .env is fine, the environment may carry everything.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("error loading env files: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Postgres: PostgresConfig{
			Host:            v.GetString("postgres.host"),
			Port:            v.GetInt("postgres.port"),
			User:            v.GetString("postgres.user"),
			Password:        v.GetString("postgres.password"),
			DB:              v.GetString("postgres.db"),
			SSLMode:         v.GetString("postgres.sslmode"),
			MaxOpenConns:    v.GetInt("postgres.max_open_conns"),
			MaxIdleConns:    v.GetInt("postgres.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("postgres.conn_max_lifetime"),
		},
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:    v.GetString("log.level"),
			Format:   v.GetString("log.format"),
			SQLLevel: v.GetString("log.sql_level"),
		},
		Migrate: MigrateConfig{
			OnStart: v.GetBool("migrate.on_start"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "catalog")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.sql_level", "warn")

	v.SetDefault("migrate.on_start", true)
}

// Validate checks values that would otherwise fail late at connect time.
func (c *Config) Validate() error {
	if c.Postgres.Host == "" {
		return errors.New("postgres.host is required")
	}
	if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
		return fmt.Errorf("postgres.port %d out of range", c.Postgres.Port)
	}
	if c.Postgres.DB == "" {
		return errors.New("postgres.db is required")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	return nil
}

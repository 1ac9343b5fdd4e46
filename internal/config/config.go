package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the development signing key. Production refuses it.
const DefaultJWTSecret = "dev-secret-change-me"

var ErrInsecureSecret = errors.New("config: JWT_SECRET must be set in production")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env          string   `mapstructure:"env"`           // local, dev, production
	Port         string   `mapstructure:"port"`          // HTTP listen port
	LogLevel     string   `mapstructure:"log_level"`     // zerolog level name
	ClientOrigin string   `mapstructure:"client_origin"` // allowed CORS origin
	DailySalt    string   `mapstructure:"daily_salt"`    // HMAC key for the daily puzzle
	ContentFile  string   `mapstructure:"content_file"`  // overrides the embedded content when set
	Speech       bool     `mapstructure:"speech"`        // clients can synthesize speech
	DB           Database `mapstructure:"database"`
	Auth         Auth     `mapstructure:"auth"`
	Game         Game     `mapstructure:"game"`
	Rate         Rate     `mapstructure:"rate"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Auth struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiresDays int    `mapstructure:"jwt_expires_days"`
	CookieName     string `mapstructure:"cookie_name"`
}

// Game tunes the session host.
type Game struct {
	Seed           uint64 `mapstructure:"seed"`            // 0 draws a random seed per session
	SessionIdleMin int    `mapstructure:"session_idle_min"` // idle sessions are evicted after this many minutes
}

type Rate struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
}

// Production reports whether the app runs in production.
func (c *Config) Production() bool { return c.Env == "production" }

// Load reads .env, an optional ./config/config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("port", "5175")
	v.SetDefault("log_level", "info")
	v.SetDefault("client_origin", "http://localhost:5173")
	v.SetDefault("daily_salt", "reflexe-daily")
	v.SetDefault("content_file", "")
	v.SetDefault("speech", true)
	v.SetDefault("database.path", "./data/app.db")
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.jwt_expires_days", 14)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.session_idle_min", 60)
	v.SetDefault("rate.auth_per_minute", 10)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // database.path -> DATABASE_PATH
	v.AutomaticEnv()

	// Short names the deployment already uses.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("database.path", "DB_PATH")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.jwt_expires_days", "JWT_EXPIRES_DAYS")
	_ = v.BindEnv("auth.cookie_name", "COOKIE_NAME")
	_ = v.BindEnv("game.seed", "GAME_SEED")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Production() && cfg.Auth.JWTSecret == DefaultJWTSecret {
		return nil, ErrInsecureSecret
	}
	return &cfg, nil
}

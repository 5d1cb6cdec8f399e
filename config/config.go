package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"gin_mode"`
	Port       int    `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
	LogLevel   string `mapstructure:"log_level"`

	DatabaseURL       string        `mapstructure:"database_url"`
	DBHost            string        `mapstructure:"db_host"`
	DBPort            string        `mapstructure:"db_port"`
	DBUser            string        `mapstructure:"db_user"`
	DBPass            string        `mapstructure:"db_pass"`
	DBName            string        `mapstructure:"db_name"`
	DBConnectAttempts int           `mapstructure:"db_connect_attempts"`
	DBConnectDelay    time.Duration `mapstructure:"db_connect_delay"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	OpenViduURL          string        `mapstructure:"openvidu_url"`
	OpenViduPublicURL    string        `mapstructure:"openvidu_public_url"`
	OpenViduSecret       string        `mapstructure:"openvidu_secret"`
	MediaConnectAttempts int           `mapstructure:"media_connect_attempts"`
	MediaConnectDelay    time.Duration `mapstructure:"media_connect_delay"`
	MediaRequired        bool          `mapstructure:"media_required"`

	RedisURL string `mapstructure:"redis_url"`
}

var keys = []string{
	"gin_mode", "port", "cors_origin", "log_level",
	"database_url", "db_host", "db_port", "db_user", "db_pass", "db_name",
	"db_connect_attempts", "db_connect_delay",
	"jwt_secret", "token_ttl",
	"openvidu_url", "openvidu_public_url", "openvidu_secret",
	"media_connect_attempts", "media_connect_delay", "media_required",
	"redis_url",
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Str("module", "config").Msg("no .env file found, using system environment variables")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about; bind each one explicitly.
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	v.SetDefault("gin_mode", "release")
	v.SetDefault("port", 5005)
	v.SetDefault("cors_origin", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_pass", "postgres")
	v.SetDefault("db_name", "meetroom")
	v.SetDefault("db_connect_attempts", 10)
	v.SetDefault("db_connect_delay", "2s")
	v.SetDefault("jwt_secret", "your-secret-key")
	v.SetDefault("token_ttl", "168h")
	v.SetDefault("openvidu_url", "http://localhost:4443")
	v.SetDefault("openvidu_secret", "MY_SECRET")
	v.SetDefault("media_connect_attempts", 10)
	v.SetDefault("media_connect_delay", "3s")
	v.SetDefault("media_required", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.Mode = normalizeMode(cfg.Mode)
	if cfg.OpenViduPublicURL == "" {
		cfg.OpenViduPublicURL = cfg.OpenViduURL
	}
	if cfg.JWTSecret == "your-secret-key" {
		log.Warn().Str("module", "config").Msg("JWT_SECRET not set, using the built-in development secret")
	}

	log.Info().Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("openvidu", cfg.OpenViduURL).
		Bool("redis", cfg.RedisURL != "").
		Msg("configuration loaded")
	return &cfg, nil
}

// normalizeMode maps GIN_MODE onto a mode gin accepts; gin.SetMode panics
// on anything else.
func normalizeMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	switch m {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return m
	}
	log.Warn().Str("module", "config").Str("gin_mode", mode).Msg("unknown GIN_MODE, using release")
	return gin.ReleaseMode
}

// DSN returns DATABASE_URL when set, otherwise a keyword DSN built from the
// DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort)
}

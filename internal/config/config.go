package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Refdata   RefdataConfig   `mapstructure:"refdata"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type BackendConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Token          string        `mapstructure:"token"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PageSize       int           `mapstructure:"page_size"`
	BreakerMaxFail int           `mapstructure:"breaker_max_failures"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type RefdataConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// envOverrides holds the settings that may be injected through the
// environment in containerized deployments.
type envOverrides struct {
	Port         int    `envconfig:"PORT"`
	BackendURL   string `envconfig:"BACKEND_BASE_URL"`
	BackendToken string `envconfig:"BACKEND_TOKEN"`
	RedisURL     string `envconfig:"REDIS_URL"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("AGENDA", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.BackendURL != "" {
		config.Backend.BaseURL = env.BackendURL
	}
	if env.BackendToken != "" {
		config.Backend.Token = env.BackendToken
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.LogLevel != "" {
		config.Log.Level = env.LogLevel
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = 30
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Backend.PageSize == 0 {
		c.Backend.PageSize = 200
	}
	if c.Backend.BreakerMaxFail == 0 {
		c.Backend.BreakerMaxFail = 5
	}
	if c.Redis.SessionTTL == 0 {
		c.Redis.SessionTTL = 12 * time.Hour
	}
	if c.Refdata.TTL == 0 {
		c.Refdata.TTL = 5 * time.Minute
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 50
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

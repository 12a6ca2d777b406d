package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBase is the local development backend.
const DefaultAPIBase = "http://localhost:8000"

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	API struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"session"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
	} `yaml:"ratelimit"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load resolves configuration once from defaults, an optional config.yaml
// (or the explicit file), and the environment.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("api.base_url", DefaultAPIBase)
	v.SetDefault("api.timeout", 0)
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("ratelimit.per_minute", 30)
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("api.base_url", "API_BASE", "VITE_API_BASE")
	_ = v.BindEnv("api.timeout", "API_TIMEOUT")
	_ = v.BindEnv("session.ttl", "SESSION_TTL")
	_ = v.BindEnv("ratelimit.per_minute", "RATE_LIMIT_PER_MINUTE")
	_ = v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	config.Server.Port = v.GetString("server.port")
	config.API.BaseURL = v.GetString("api.base_url")
	config.API.Timeout = v.GetDuration("api.timeout")
	config.Session.TTL = v.GetDuration("session.ttl")
	config.RateLimit.PerMinute = v.GetInt("ratelimit.per_minute")
	config.Log.Level = v.GetString("log.level")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API base URL %q must use http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API base URL %q has no host", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must not be negative")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

// Addr is the listen address for the web UI.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

/*
Package configs is responsible for loading and parsing the application's configuration settings.

It reads settings through viper, which layers an optional rbacgate.yaml file under
environment variables, including the running environment, port, CORS allowed origins,
remote session API address, and session store settings.
*/
package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session store backend selectors accepted by SessionBackend.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// AppConfig contains all configuration parameters required for the gateway to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Remote Session API Settings
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	// Session Store Settings
	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
}

// LoadConfig reads and parses the application configuration.
// Defaults cover local development; every value can be overridden by an
// RBACGATE_* environment variable or an rbacgate.yaml file in the working
// directory. It returns a pointer to the AppConfig struct and any error
// encountered during validation.
func LoadConfig() (*AppConfig, error) {
	vp := viper.New()

	vp.SetDefault("environment", "development")
	vp.SetDefault("port", 8080)
	vp.SetDefault("allowed_origins", "")
	vp.SetDefault("upstream.base_url", "")
	vp.SetDefault("upstream.timeout", "10s")
	vp.SetDefault("session.backend", BackendMemory)
	vp.SetDefault("session.ttl", "24h")
	vp.SetDefault("session.redis_addr", "localhost:6379")
	vp.SetDefault("session.redis_password", "")
	vp.SetDefault("session.redis_db", 0)

	vp.SetEnvPrefix("rbacgate")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	vp.SetConfigName("rbacgate")
	vp.SetConfigType("yaml")
	vp.AddConfigPath("./")
	if err := vp.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &AppConfig{
		Environment:     vp.GetString("environment"),
		Port:            vp.GetInt("port"),
		UpstreamBaseURL: vp.GetString("upstream.base_url"),
		UpstreamTimeout: vp.GetDuration("upstream.timeout"),
		SessionBackend:  vp.GetString("session.backend"),
		SessionTTL:      vp.GetDuration("session.ttl"),
		RedisAddr:       vp.GetString("session.redis_addr"),
		RedisPassword:   vp.GetString("session.redis_password"),
		RedisDB:         vp.GetInt("session.redis_db"),
	}

	for _, origin := range strings.Split(vp.GetString("allowed_origins"), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.UpstreamBaseURL == "" {
		if cfg.Environment == "development" {
			cfg.UpstreamBaseURL = "http://localhost:3001/api"
		} else {
			return nil, fmt.Errorf("upstream.base_url is required in %s environment", cfg.Environment)
		}
	}

	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("upstream.timeout must be positive, got %s", cfg.UpstreamTimeout)
	}

	switch cfg.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("session.redis_addr is required when session.backend is %q", BackendRedis)
		}
	default:
		return nil, fmt.Errorf("unknown session backend %q (expected %q or %q)", cfg.SessionBackend, BackendRedis, BackendMemory)
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session.ttl must be positive, got %s", cfg.SessionTTL)
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ServerConfiguration contains the server settings
type ServerConfiguration struct {
	Port    int
	Address string
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
}

// TokenConfiguration harbours everything the token authority needs
type TokenConfiguration struct {
	// Lifetime of a freshly issued access token
	Lifetime time.Duration `mapstructure:"lifetime"`
	// RefreshLifetime is measured from the issuance of the original token
	RefreshLifetime  time.Duration `mapstructure:"refresh-lifetime"`
	TokenType        string        `mapstructure:"token-type"`
	EntropyBytes     int           `mapstructure:"entropy-bytes"`
	MaxIssueAttempts int           `mapstructure:"max-issue-attempts"`
	// Store is either sql or redis
	Store string `mapstructure:"store"`
}

// RateLimitConfiguration configures the per ip rate limiting of the user endpoints
type RateLimitConfiguration struct {
	Enable bool
	// Rate in the limiter format, 5-M means five requests per minute
	Rate               string
	Store              string
	TrustForwardHeader bool `mapstructure:"trust-forward-header"`
}

// RedisConfiguration is used by the redis token store and the redis rate limit store
type RedisConfiguration struct {
	Address  string
	Password string `json:"-"`
	DB       int
}

// MetricsConfiguration toggles the prometheus endpoint
type MetricsConfiguration struct {
	Enable bool
	Path   string
}

// Configuration habours the entire tokenkeep configuration
type Configuration struct {
	Server    *ServerConfiguration    `mapstructure:"server"`
	Database  *DatabaseConfiguration  `mapstructure:"database"`
	Tokens    *TokenConfiguration     `mapstructure:"tokens"`
	RateLimit *RateLimitConfiguration `mapstructure:"rate-limit"`
	Redis     *RedisConfiguration     `mapstructure:"redis"`
	Metrics   *MetricsConfiguration   `mapstructure:"metrics"`
}

// MinEntropyBytes is the smallest token size accepted, 128 bits
const MinEntropyBytes = 16

// Validate does some basic validation of the config file and tries to be helpful on missconfiguration
func (c *Configuration) Validate() error {
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	switch c.Database.Type {
	case "sqlite", "mysql", "pg":
	default:
		return fmt.Errorf("unknown database.type %q, possible values: sqlite, mysql, pg", c.Database.Type)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is empty")
	}
	if c.Tokens == nil {
		return errors.New("no tokens configuration found")
	}
	if c.Tokens.Lifetime <= 0 {
		return errors.New("tokens.lifetime has to be positive")
	}
	if c.Tokens.RefreshLifetime < c.Tokens.Lifetime {
		return errors.New("tokens.refresh-lifetime may not be shorter than tokens.lifetime")
	}
	if c.Tokens.EntropyBytes < MinEntropyBytes {
		return fmt.Errorf("tokens.entropy-bytes has to be at least %d", MinEntropyBytes)
	}
	if c.Tokens.MaxIssueAttempts < 1 {
		return errors.New("tokens.max-issue-attempts has to be at least 1")
	}
	usesRedis := false
	switch c.Tokens.Store {
	case "sql":
	case "redis":
		usesRedis = true
	default:
		return fmt.Errorf("unknown tokens.store %q, possible values: sql, redis", c.Tokens.Store)
	}
	if c.RateLimit != nil && c.RateLimit.Enable {
		if c.RateLimit.Rate == "" {
			return errors.New("rate-limit.rate is empty")
		}
		switch c.RateLimit.Store {
		case "memory":
		case "redis":
			usesRedis = true
		default:
			return fmt.Errorf("unknown rate-limit.store %q, possible values: memory, redis", c.RateLimit.Store)
		}
	}
	if usesRedis && (c.Redis == nil || c.Redis.Address == "") {
		return errors.New("redis is used as a store but redis.address is not set")
	}
	if c.Metrics != nil && c.Metrics.Enable && c.Metrics.Path == "" {
		return errors.New("metrics.path is empty")
	}
	return nil
}

// DebugMode returns true if the TOKENKEEP_DEBUG_MODE variable is set
func (*Configuration) DebugMode() bool {
	if r := os.Getenv("TOKENKEEP_DEBUG_MODE"); r == "true" {
		return true
	}
	return false
}

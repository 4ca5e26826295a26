package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Configuration {
	return &Configuration{
		Server:   &ServerConfiguration{Port: 3000},
		Database: &DatabaseConfiguration{Type: "sqlite", DSN: ":memory:"},
		Tokens: &TokenConfiguration{
			Lifetime:         1800 * time.Second,
			RefreshLifetime:  24 * time.Hour,
			TokenType:        "bearer",
			EntropyBytes:     32,
			MaxIssueAttempts: 3,
			Store:            "sql",
		},
		RateLimit: &RateLimitConfiguration{Enable: true, Rate: "5-M", Store: "memory"},
	}
}

func TestValidConfiguration(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestConfigurationRejectsLowEntropy(t *testing.T) {
	c := validConfig()
	c.Tokens.EntropyBytes = 8
	assert.Error(t, c.Validate())
}

func TestConfigurationRejectsUnknownDatabase(t *testing.T) {
	c := validConfig()
	c.Database.Type = "oracle"
	assert.Error(t, c.Validate())
}

func TestConfigurationRejectsZeroAttempts(t *testing.T) {
	c := validConfig()
	c.Tokens.MaxIssueAttempts = 0
	assert.Error(t, c.Validate())
}

func TestConfigurationRedisRequiresAddress(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	c.Tokens.Store = "redis"
	assert.Error(c.Validate())
	c.Redis = &RedisConfiguration{Address: "localhost:6379"}
	assert.NoError(c.Validate())

	c = validConfig()
	c.RateLimit.Store = "redis"
	assert.Error(c.Validate())
}

func TestConfigurationRateLimitDisabledSkipsChecks(t *testing.T) {
	c := validConfig()
	c.RateLimit = &RateLimitConfiguration{Enable: false}
	assert.NoError(t, c.Validate())
}

func TestConfigurationRefreshShorterThanLifetime(t *testing.T) {
	c := validConfig()
	c.Tokens.RefreshLifetime = time.Minute
	assert.Error(t, c.Validate())
}

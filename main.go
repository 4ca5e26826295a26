package main

import (
	"log"
	"os"

	"github.com/eisenwinter/tokenkeep/cmd"
	"github.com/eisenwinter/tokenkeep/config"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()
	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger) })
	return logger
}

func setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.dsn", "file:data/tokenkeep.db?_foreign_keys=on")
	viper.SetDefault("tokens.lifetime", "1800s")
	viper.SetDefault("tokens.refresh-lifetime", "24h")
	viper.SetDefault("tokens.token-type", "bearer")
	viper.SetDefault("tokens.entropy-bytes", 32)
	viper.SetDefault("tokens.max-issue-attempts", 3)
	viper.SetDefault("tokens.store", "sql")
	viper.SetDefault("rate-limit.enable", true)
	viper.SetDefault("rate-limit.rate", "5-M")
	viper.SetDefault("rate-limit.store", "memory")
	viper.SetDefault("rate-limit.trust-forward-header", false)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("metrics.enable", false)
	viper.SetDefault("metrics.path", "/metrics")
}

func initConfig(logger *zap.Logger) {
	bind := func(from string, to string) {
		err := viper.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String("to", to), zap.Error(err))
		}

	}
	setDefaults()
	bind("PORT", "server.port")
	bind("ADDRESS", "server.address")

	bind("TOKENKEEP_PORT", "server.port")
	bind("TOKENKEEP_ADDRESS", "server.address")

	bind("TOKENKEEP_DATABASE_TYPE", "database.type")
	bind("TOKENKEEP_DATABASE_DSN", "database.dsn")

	bind("TOKENKEEP_TOKENS_LIFETIME", "tokens.lifetime")
	bind("TOKENKEEP_TOKENS_REFRESH_LIFETIME", "tokens.refresh-lifetime")
	bind("TOKENKEEP_TOKENS_TOKEN_TYPE", "tokens.token-type")
	bind("TOKENKEEP_TOKENS_ENTROPY_BYTES", "tokens.entropy-bytes")
	bind("TOKENKEEP_TOKENS_MAX_ISSUE_ATTEMPTS", "tokens.max-issue-attempts")
	bind("TOKENKEEP_TOKENS_STORE", "tokens.store")

	bind("TOKENKEEP_RATE_LIMIT_ENABLE", "rate-limit.enable")
	bind("TOKENKEEP_RATE_LIMIT_RATE", "rate-limit.rate")
	bind("TOKENKEEP_RATE_LIMIT_STORE", "rate-limit.store")
	bind("TOKENKEEP_RATE_LIMIT_TRUST_FORWARD_HEADER", "rate-limit.trust-forward-header")

	bind("TOKENKEEP_REDIS_ADDRESS", "redis.address")
	bind("TOKENKEEP_REDIS_PASSWORD", "redis.password")
	bind("TOKENKEEP_REDIS_DB", "redis.db")

	bind("TOKENKEEP_METRICS_ENABLE", "metrics.enable")
	bind("TOKENKEEP_METRICS_PATH", "metrics.path")

	if cmd.ConfigFileLocation != "" {
		logger.Debug("Using supplied config file", zap.String("file", cmd.ConfigFileLocation))
		viper.SetConfigFile(cmd.ConfigFileLocation)
	} else {
		path, err := os.Getwd()
		if err != nil {
			logger.Warn("Unable to get current working dir", zap.Error(err))
		}
		cobra.CheckErr(err)
		viper.AddConfigPath(path)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("No confg file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", viper.ConfigFileUsed()))
	}

	conf := &config.Configuration{}
	err := viper.Unmarshal(conf)
	if err != nil {
		logger.Fatal("Unable to unmarshall config", zap.Error(err))
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err = conf.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cmd.LoadedConfig = conf
}

package cmd

import (
	"context"
	"time"

	"github.com/eisenwinter/tokenkeep/client"
	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/kvstore"
	"github.com/eisenwinter/tokenkeep/events"
	"github.com/eisenwinter/tokenkeep/generator"
	"github.com/eisenwinter/tokenkeep/metrics"
	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func mustResolveUsableDataStore() *db.DataStore {
	dataStore, err := db.NewStore(TopLevelLogger.Named("database"), LoadedConfig.Database)
	if err != nil {
		TopLevelLogger.Fatal("Failed to create datastore", zap.Error(err))
	}
	err = dataStore.EnsureUsable()
	if err != nil {
		TopLevelLogger.Fatal("Datastore is unusable", zap.Error(err))
	}
	return dataStore
}

func usesRedis() bool {
	if LoadedConfig.Tokens.Store == "redis" {
		return true
	}
	return LoadedConfig.RateLimit != nil &&
		LoadedConfig.RateLimit.Enable &&
		LoadedConfig.RateLimit.Store == "redis"
}

// mustResolveRedisClient returns nil if nothing is configured to use redis
func mustResolveRedisClient() redis.UniversalClient {
	if !usesRedis() {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     LoadedConfig.Redis.Address,
		Password: LoadedConfig.Redis.Password,
		DB:       LoadedConfig.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		TopLevelLogger.Fatal("Redis is unreachable", zap.String("address", LoadedConfig.Redis.Address), zap.Error(err))
	}
	return rdb
}

type redisPinger struct {
	client redis.UniversalClient
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func resolveTokenStore(dataStore *db.DataStore, rdb redis.UniversalClient) tokens.Store {
	if LoadedConfig.Tokens.Store == "redis" {
		TopLevelLogger.Info("Using redis token store")
		return kvstore.New(TopLevelLogger.Named("token_store"), rdb)
	}
	return dataStore
}

func bootstrapDispatcher(auditor db.Auditor, m *metrics.Metrics) *events.Dispatcher {
	dispatcher := events.NewDispatcher(TopLevelLogger.Named("event_dispatcher"))
	//bootstrap listeners
	dbLayer := db.BootstrapListeners(auditor, TopLevelLogger.Named("event_listener"))
	dispatcher.Register(dbLayer...)
	if m != nil {
		dispatcher.Register(m.Listeners()...)
	}
	return dispatcher
}

func mustResolveAuthority(store tokens.Store, dispatcher *events.Dispatcher) *tokens.Authority {
	gen, err := generator.NewWithSize(LoadedConfig.Tokens.EntropyBytes)
	if err != nil {
		TopLevelLogger.Fatal("Failed to create token generator", zap.Error(err))
	}
	return tokens.NewAuthority(
		TopLevelLogger.Named("token_authority"),
		LoadedConfig.Tokens,
		store,
		gen,
		time.Now,
		dispatcher,
	)
}

func resolveClientService(dataStore *db.DataStore, dispatcher *events.Dispatcher) *client.Service {
	return client.NewService(TopLevelLogger.Named("client_service"), dataStore, dispatcher)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/eisenwinter/tokenkeep/config"
	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"

	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "tokenkeep:ratelimit"

// RateLimitObserver gets told about every rejected request
type RateLimitObserver interface {
	ObserveRateLimited()
}

type rateLimitResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (*rateLimitResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusTooManyRequests)
	return nil
}

// newRateLimiter limits requests per client address, the counters live in memory
// or in redis so several instances can share them
func newRateLimiter(
	log *zap.Logger,
	cfg *config.RateLimitConfiguration,
	client redis.UniversalClient,
	observer RateLimitObserver,
) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		log.Error("invalid rate limit", zap.String("rate", cfg.Rate), zap.Error(err))
		return nil, err
	}
	var store limiter.Store
	switch cfg.Store {
	case "redis":
		if client == nil {
			return nil, errors.New("redis rate limit store requires a redis client")
		}
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: rateLimitPrefix,
		})
		if err != nil {
			log.Error("could not create redis rate limit store", zap.Error(err))
			return nil, err
		}
	default:
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		})
	}
	instance := limiter.New(store, rate)
	middleware := mhttp.NewMiddleware(instance,
		mhttp.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			if observer != nil {
				observer.ObserveRateLimited()
			}
			log.Info("rate limit reached", zap.String("remote_addr", r.RemoteAddr), zap.String("path", r.URL.Path))
			err := render.Render(w, r, &rateLimitResponse{
				Error:            "rate_limit_exceeded",
				ErrorDescription: "Too many requests",
			})
			if err != nil {
				log.Error("unable to render response", zap.Error(err))
			}
		}),
		mhttp.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("rate limiter failed", zap.Error(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "server_error"})
		}),
	)
	return middleware.Handler, nil
}

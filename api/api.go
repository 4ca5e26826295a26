package api

import (
	"net/http"
	"time"

	"github.com/eisenwinter/tokenkeep/api/app/meta"
	"github.com/eisenwinter/tokenkeep/api/app/oauth"
	"github.com/eisenwinter/tokenkeep/api/app/users"
	"github.com/eisenwinter/tokenkeep/api/auth"
	"github.com/eisenwinter/tokenkeep/client"
	"github.com/eisenwinter/tokenkeep/config"
	"github.com/eisenwinter/tokenkeep/metrics"
	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/eisenwinter/tokenkeep/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"

	"go.uber.org/zap"
)

type methodNotAllowedResponse struct {
	Error string `json:"error"`
}

func (*methodNotAllowedResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusMethodNotAllowed)
	return nil
}

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	authority *tokens.Authority,
	clientService *client.Service,
	userService *user.Service,
	m *metrics.Metrics,
	redisClient redis.UniversalClient,
	pingers map[string]meta.Pinger) (*chi.Mux, error) {

	var validationObserver auth.ValidationObserver
	var rateLimitObserver RateLimitObserver
	if m != nil {
		validationObserver = m
		rateLimitObserver = m
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.RateLimit != nil && cfg.RateLimit.TrustForwardHeader {
		r.Use(middleware.RealIP)
	}

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		err := render.Render(w, r, &methodNotAllowedResponse{Error: "Method Not Allowed"})
		if err != nil {
			logger.Error("unable to render response", zap.Error(err))
		}
	})

	metaRessource := meta.NewMetaRessource(logger.Named("meta_ressource"), pingers)
	oauthRessource := oauth.NewOAuthRessource(
		logger.Named("oauth_ressource"),
		authority,
		clientService,
	)
	usersRessource := users.NewUsersRessource(logger.Named("users_ressource"), userService)

	var rateLimiter func(http.Handler) http.Handler
	if cfg.RateLimit != nil && cfg.RateLimit.Enable {
		var err error
		rateLimiter, err = newRateLimiter(logger.Named("rate_limiter"), cfg.RateLimit, redisClient, rateLimitObserver)
		if err != nil {
			return nil, err
		}
	}

	r.Get("/", metaRessource.Welcome)
	r.Get("/health", metaRessource.Health)

	r.Group(func(gr chi.Router) {
		if rateLimiter != nil {
			gr.Use(rateLimiter)
		}
		gr.Mount("/oauth", oauthRessource.Router())
	})

	r.Group(func(gr chi.Router) {
		if rateLimiter != nil {
			gr.Use(rateLimiter)
		}
		gr.Use(auth.BearerAuthenticator(logger.Named("bearer"), authority, validationObserver))
		gr.Post("/insert_user", usersRessource.InsertUser)
		gr.Get("/list_users", usersRessource.ListUsers)
	})

	if m != nil && cfg.Metrics != nil && cfg.Metrics.Enable {
		r.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	return r, nil
}

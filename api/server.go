package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/eisenwinter/tokenkeep/api/app/meta"
	"github.com/eisenwinter/tokenkeep/client"
	"github.com/eisenwinter/tokenkeep/config"
	"github.com/eisenwinter/tokenkeep/metrics"
	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/eisenwinter/tokenkeep/user"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	server *http.Server
	log    *zap.Logger
}

func NewServer(
	cfg *config.Configuration,
	logger *zap.Logger,
	authority *tokens.Authority,
	clientService *client.Service,
	userService *user.Service,
	m *metrics.Metrics,
	redisClient redis.UniversalClient,
	pingers map[string]meta.Pinger) (*Server, error) {
	api, err := compose(logger.Named("api"),
		cfg,
		authority,
		clientService,
		userService,
		m,
		redisClient,
		pingers)
	if err != nil {
		return nil, err
	}
	bind := net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
	srv := http.Server{
		Addr:              bind,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{
		server: &srv,
		log:    logger,
	}, nil
}

// Start runs ListenAndServe on the http.Server with graceful shutdown.
func (srv *Server) Start() error {
	srv.log.Info("starting server")
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.server.ListenAndServe(); err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	srv.log.Info("listening", zap.String("addr", srv.server.Addr))

	quit := make(chan os.Signal, 1)
	//nolint
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-serveErr:
		srv.log.Error("server failed", zap.Error(err))
		return err
	case sig := <-quit:
		srv.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.server.Shutdown(ctx); err != nil {
		srv.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	srv.log.Info("graceful shutdown completed")
	return nil
}

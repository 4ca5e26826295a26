package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// MetaRessource contains the welcome and health endpoints
type MetaRessource struct {
	log     *zap.Logger
	pingers map[string]Pinger
}

// Welcome greets on the root path
func (m *MetaRessource) Welcome(w http.ResponseWriter, r *http.Request) {
	err := render.Render(w, r, &welcomeResponse{Message: "Welcome to the API"})
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

// Health pings every backing store, the first failure makes the service unavailable
func (m *MetaRessource) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	res := &healthResponse{Status: "ok", StatusCode: http.StatusOK}
	for name, p := range m.pingers {
		if err := p.Ping(ctx); err != nil {
			m.log.Warn("health check failed", zap.String("store", name), zap.Error(err))
			res = &healthResponse{Status: "unavailable", StatusCode: http.StatusServiceUnavailable}
			break
		}
	}
	err := render.Render(w, r, res)
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func NewMetaRessource(log *zap.Logger, pingers map[string]Pinger) *MetaRessource {
	return &MetaRessource{log: log, pingers: pingers}
}

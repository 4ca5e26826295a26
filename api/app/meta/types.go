package meta

import (
	"net/http"

	"github.com/go-chi/render"
)

type welcomeResponse struct {
	Message string `json:"message"`
}

func (*welcomeResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

type healthResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"-"`
}

func (h *healthResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, h.StatusCode)
	return nil
}

package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/sanitize"
	"github.com/eisenwinter/tokenkeep/user"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// UsersRessource contains the user registration and listing endpoints,
// authorization and rate limiting are applied by the router mounting them
type UsersRessource struct {
	logger  *zap.Logger
	service UserService
}

func (u *UsersRessource) respond(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	err := render.Render(w, r, v)
	if err != nil {
		u.logger.Error("unable to render response", zap.Error(err))
	}
}

func (u *UsersRessource) InsertUser(w http.ResponseWriter, r *http.Request) {
	var req insertUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		u.logger.Debug("could not decode insert user request", zap.Error(err))
		u.respond(w, r, createError(http.StatusBadRequest, "Invalid parameters"))
		return
	}
	if !req.complete() {
		u.respond(w, r, createError(http.StatusBadRequest, "Missing required parameters"))
		return
	}
	created, err := u.service.Create(r.Context(), user.NewUser{
		FirstName:   *req.FirstName,
		LastName:    *req.LastName,
		Email:       *req.Email,
		PhoneNumber: *req.PhoneNumber,
		Address:     *req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidUser):
			u.respond(w, r, createError(http.StatusBadRequest, "Invalid parameters"))
		case errors.Is(err, user.ErrEmailExists):
			u.logger.Info("duplicate registration attempt", sanitize.String("email_id", *req.Email))
			u.respond(w, r, createError(http.StatusConflict, "Email ID already exists"))
		default:
			u.logger.Error("unable to insert user", zap.Error(err))
			u.respond(w, r, createError(http.StatusInternalServerError, "server_error"))
		}
		return
	}
	render.Status(r, http.StatusCreated)
	u.respond(w, r, userResponseFromTable(created))
}

func (u *UsersRessource) ListUsers(w http.ResponseWriter, r *http.Request) {
	opts := db.ListOptions{
		Query: r.URL.Query().Get("q"),
		Sort:  r.URL.Query().Get("sort"),
	}
	var err error
	if page := r.URL.Query().Get("page"); page != "" {
		opts.Page, err = strconv.Atoi(page)
		if err != nil || opts.Page < 1 {
			u.respond(w, r, createError(http.StatusBadRequest, "Invalid parameters"))
			return
		}
	}
	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		opts.PageSize, err = strconv.Atoi(pageSize)
		if err != nil || opts.PageSize < 1 {
			u.respond(w, r, createError(http.StatusBadRequest, "Invalid parameters"))
			return
		}
	}
	users, err := u.service.List(r.Context(), opts)
	if err != nil {
		if errors.Is(err, db.ErrInvalidQuery) {
			u.logger.Debug("invalid user query", sanitize.String("q", opts.Query), zap.Error(err))
			u.respond(w, r, createError(http.StatusBadRequest, "Invalid parameters"))
			return
		}
		u.logger.Error("unable to list users", zap.Error(err))
		u.respond(w, r, createError(http.StatusInternalServerError, "server_error"))
		return
	}
	list := make([]render.Renderer, len(users))
	for i, v := range users {
		list[i] = userResponseFromTable(v)
	}
	err = render.RenderList(w, r, list)
	if err != nil {
		u.logger.Error("unable to render response", zap.Error(err))
	}
}

func NewUsersRessource(logger *zap.Logger, service UserService) *UsersRessource {
	return &UsersRessource{
		logger:  logger,
		service: service,
	}
}

package oauth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eisenwinter/tokenkeep/api/auth"
	"github.com/eisenwinter/tokenkeep/client"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/sanitize"
	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// OAuthRessource contains the token endpoint
type OAuthRessource struct {
	logger    *zap.Logger
	authority TokenAuthority
	clients   ClientAuthenticator
}

func (o *OAuthRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.MethodNotAllowed(o.methodNotAllowed)
	r.Post("/token", o.token)

	return r
}

func (o *OAuthRessource) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	err := render.Render(w, r, &methodNotAllowedResponse{Error: "Method Not Allowed"})
	if err != nil {
		o.logger.Error("unable to render response", zap.Error(err))
	}
}

func (o *OAuthRessource) respondError(w http.ResponseWriter, r *http.Request, e *stdErrorResponse) {
	err := render.Render(w, r, e)
	if err != nil {
		o.logger.Error("unable to render response", zap.Error(err))
	}
}

func (o *OAuthRessource) token(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		o.logger.Info("could not parse form on token endpoint", zap.Error(err))
		o.respondError(w, r, createStdError(stdInvalidRequest, http.StatusBadRequest, ""))
		return
	}
	clientID := r.PostFormValue("client_id")
	clientSecret := r.PostFormValue("client_secret")
	viaBasicAuth := false
	if clientID == "" {
		id, secret, err := auth.ClientCredentialsFromBasicAuth(r)
		if err != nil && !errors.Is(err, auth.ErrBasicAuthHeaderNotFound) {
			o.logger.Info("unable to get client_id from basic auth", zap.Error(err))
			o.respondError(w, r, createStdError(stdInvalidRequest, http.StatusBadRequest, "malformed authorization header"))
			return
		}
		clientID = id
		clientSecret = secret
		viaBasicAuth = err == nil
	}
	if clientID == "" {
		o.respondError(w, r, createStdError(stdInvalidRequest, http.StatusBadRequest, "client_id field not supplied"))
		return
	}
	scope := strings.Join(strings.Fields(r.PostFormValue("scope")), " ")

	grant := r.PostFormValue("grant_type")
	switch grantType(grant) {
	case clientCredentialsGrant:
		o.logger.Debug("client credentials", sanitize.String("client_id", clientID))
		o.clientCredentialsGrant(&clientCredentialsTokenRequest{
			clientID:     clientID,
			clientSecret: clientSecret,
			viaBasicAuth: viaBasicAuth,
			scope:        scope,
		}, w, r)
	case refreshTokenGrant:
		refreshToken := r.PostFormValue("refresh_token")
		if refreshToken == "" {
			o.respondError(w, r, createStdError(stdInvalidRequest, http.StatusBadRequest, "refresh_token field not supplied"))
			return
		}
		o.refreshTokenGrant(&refreshTokenTokenRequest{
			refreshToken: refreshToken,
			clientID:     clientID,
			clientSecret: clientSecret,
			viaBasicAuth: viaBasicAuth,
			scope:        scope,
		}, w, r)
	case "":
		o.respondError(w, r, createStdError(stdInvalidRequest, http.StatusBadRequest, "grant_type field not supplied"))
	default:
		o.logger.Debug("unsupported grant type", sanitize.String("grant_type", grant))
		o.respondError(w, r, createStdError(stdUnspportedGrantType, http.StatusBadRequest, ""))
	}
}

// authenticate renders the error itself and returns nil if the client could not be authenticated
func (o *OAuthRessource) authenticate(
	w http.ResponseWriter,
	r *http.Request,
	clientID string,
	secret string,
	viaBasicAuth bool,
) *client.Client {
	c, err := o.clients.Authenticate(r.Context(), clientID, secret)
	if err != nil {
		if errors.Is(err, client.ErrInvalidClient) {
			o.logger.Info("client authentication failed", sanitize.String("client_id", clientID))
			if viaBasicAuth {
				w.Header().Set("WWW-Authenticate", `Basic realm="token"`)
			}
			o.respondError(w, r, createStdError(
				stdInvalidClient,
				http.StatusUnauthorized,
				"Client authentication failed, due to missing or invalid client credentials.",
			))
			return nil
		}
		o.logger.Error("failed to authenticate client", zap.Error(err))
		o.respondError(w, r, createStdError(stdInternalServerError, http.StatusInternalServerError, ""))
		return nil
	}
	return c
}

func (o *OAuthRessource) clientCredentialsGrant(
	req *clientCredentialsTokenRequest,
	w http.ResponseWriter,
	r *http.Request,
) {
	c := o.authenticate(w, r, req.clientID, req.clientSecret, req.viaBasicAuth)
	if c == nil {
		return
	}
	// https://datatracker.ietf.org/doc/html/rfc6749#section-4.4 is for confidential clients only
	if !c.HasSecret() {
		o.respondError(w, r, createStdError(stdUnauthorziedClient, http.StatusBadRequest, ""))
		return
	}
	if !c.AreScopesCovered(req.scope) {
		o.respondError(w, r, createStdError(stdInvalidScope, http.StatusBadRequest, ""))
		return
	}
	scope := req.scope
	if scope == "" {
		scope = strings.Join(c.Scopes(), " ")
	}
	t, err := o.authority.Issue(r.Context(), tokens.IssueRequest{
		ClientID:  c.ClientID(),
		UserID:    c.ClientID(),
		Scopes:    scope,
		GrantType: tokens.GrantClientCredentials,
	})
	if err != nil {
		o.logger.Error("client credentials flow: failed to issue a new access token", zap.Error(err))
		o.respondError(w, r, createStdError(stdInternalServerError, http.StatusInternalServerError, ""))
		return
	}
	o.respondToken(w, r, t)
}

func (o *OAuthRessource) refreshTokenGrant(
	req *refreshTokenTokenRequest,
	w http.ResponseWriter,
	r *http.Request,
) {
	c := o.authenticate(w, r, req.clientID, req.clientSecret, req.viaBasicAuth)
	if c == nil {
		return
	}
	if !c.AreScopesCovered(req.scope) {
		o.respondError(w, r, createStdError(stdInvalidScope, http.StatusBadRequest, ""))
		return
	}
	t, err := o.authority.Reissue(r.Context(), req.refreshToken, c.ClientID(), req.scope)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidGrant):
			o.respondError(w, r, createStdError(stdInvalidGrant, http.StatusBadRequest, ""))
		case errors.Is(err, tokens.ErrInvalidScope):
			o.respondError(w, r, createStdError(stdInvalidScope, http.StatusBadRequest, ""))
		default:
			o.logger.Error("refresh token flow: failed to issue a new access token", zap.Error(err))
			o.respondError(w, r, createStdError(stdInternalServerError, http.StatusInternalServerError, ""))
		}
		return
	}
	o.respondToken(w, r, t)
}

func (o *OAuthRessource) respondToken(w http.ResponseWriter, r *http.Request, t *tables.TokenTable) {
	response := &accessTokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   int(t.ExpiresAt.Sub(t.CreatedAt).Seconds()),
		Scope:       t.Scopes,
	}
	if t.RefreshToken != nil {
		response.RefreshToken = *t.RefreshToken
	}
	err := render.Render(w, r, response)
	if err != nil {
		o.logger.Error("unable to render response", zap.Error(err))
	}
}

func NewOAuthRessource(
	logger *zap.Logger,
	authority TokenAuthority,
	clients ClientAuthenticator,
) *OAuthRessource {
	return &OAuthRessource{
		logger:    logger,
		authority: authority,
		clients:   clients,
	}
}

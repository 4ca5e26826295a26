package oauth

import (
	"net/http"

	"github.com/go-chi/render"
)

// https://datatracker.ietf.org/doc/html/rfc6749#section-5.1
type accessTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

func (*accessTokenResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	return nil
}

// https://datatracker.ietf.org/doc/html/rfc6749#section-5.2
type oauthError string

// The request is missing a required parameter, includes an unsupported parameter value (other than grant type),
// repeats a parameter, includes multiple credentials, utilizes more than one mechanism for authenticating the client, or is otherwise malformed.
const stdInvalidRequest oauthError = "invalid_request"

// Client authentication failed (e.g., unknown client, no client authentication included, or unsupported authentication method).
const stdInvalidClient oauthError = "invalid_client"

// The provided refresh token is invalid, expired or was issued to another client.
const stdInvalidGrant oauthError = "invalid_grant"

// The authenticated client is not authorized to use this authorization grant type.
const stdUnauthorziedClient oauthError = "unauthorized_client"

// The authorization grant type is not supported by the authorization server.
const stdUnspportedGrantType oauthError = "unsupported_grant_type"

// this is a non oauth error indicating something went wrong beyond the rfc6749 error codes
const stdInternalServerError oauthError = "server_error"

// The requested scope is invalid, unknown, malformed, or exceeds the scope granted by the resource owner.
const stdInvalidScope oauthError = "invalid_scope"

type stdErrorResponse struct {
	Error            oauthError `json:"error,omitempty"`
	ErrorDescription string     `json:"error_description,omitempty"`
	StatusCode       int        `json:"-"`
}

func (e *stdErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")
	render.Status(r, e.StatusCode)
	return nil
}

func createStdError(err oauthError, status int, description string) *stdErrorResponse {
	return &stdErrorResponse{
		Error:            err,
		ErrorDescription: description,
		StatusCode:       status,
	}
}

type methodNotAllowedResponse struct {
	Error string `json:"error"`
}

func (*methodNotAllowedResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusMethodNotAllowed)
	return nil
}

type grantType string

const clientCredentialsGrant grantType = "client_credentials"
const refreshTokenGrant grantType = "refresh_token"

type clientCredentialsTokenRequest struct {
	clientID     string
	clientSecret string
	viaBasicAuth bool
	scope        string
}

type refreshTokenTokenRequest struct {
	refreshToken string
	clientID     string
	clientSecret string
	viaBasicAuth bool
	scope        string
}

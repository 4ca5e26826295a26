package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/eisenwinter/tokenkeep/metrics"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

var (
	ErrBasicAuthHeaderNotFound    = errors.New("no header value found")
	ErrHeaderValueMalformed       = errors.New("header value malformed")
	ErrInvalidAuthorizationResult = errors.New("invalid authorization result")
)

// TokenValidator checks presented access tokens
type TokenValidator interface {
	Validate(ctx context.Context, presented string) (bool, error)
}

// ValidationObserver gets told the outcome of every bearer check
type ValidationObserver interface {
	ObserveValidation(result string)
}

type noopObserver struct{}

func (noopObserver) ObserveValidation(string) {}

type errorResponse struct {
	Error string `json:"error"`
}

// BearerAuthenticator guards the wrapped handler with an access token from the Authorization header.
// Unknown, expired and missing tokens all get the same 401, the reason is never disclosed.
func BearerAuthenticator(
	log *zap.Logger,
	validator TokenValidator,
	observer ValidationObserver,
) func(http.Handler) http.Handler {
	if observer == nil {
		observer = noopObserver{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := bearerAuthorizationHeader(r)
			valid, err := validator.Validate(r.Context(), presented)
			if err != nil {
				log.Error("unable to validate access token", zap.Error(err))
				observer.ObserveValidation(metrics.ResultError)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, &errorResponse{Error: "server_error"})
				return
			}
			if !valid {
				observer.ObserveValidation(metrics.ResultInvalid)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, &errorResponse{Error: "Invalid access token"})
				return
			}
			observer.ObserveValidation(metrics.ResultValid)
			ctx := context.WithValue(r.Context(), AccessTokenContextKey, presented)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerAuthorizationHeader strips an optional Bearer prefix, bare token values are accepted as well
func bearerAuthorizationHeader(r *http.Request) string {
	val := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(val) > 7 && strings.EqualFold(val[0:7], "BEARER ") {
		return strings.TrimSpace(val[7:])
	}
	if strings.EqualFold(val, "bearer") {
		return ""
	}
	return val
}

// ClientCredentialsFromBasicAuth reads the client credentials of
// https://www.rfc-editor.org/rfc/rfc6749#section-2.3.1 from the Authorization header
func ClientCredentialsFromBasicAuth(r *http.Request) (string, string, error) {
	header := basicAuthorizationHeader(r)
	if header == "" {
		return "", "", ErrBasicAuthHeaderNotFound
	}
	text, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return "", "", ErrHeaderValueMalformed
	}
	split := strings.SplitN(string(text), ":", 2)
	if len(split) != 2 {
		return "", "", ErrHeaderValueMalformed
	}
	clientID, err := url.QueryUnescape(split[0])
	if err != nil {
		return "", "", ErrHeaderValueMalformed
	}
	secret, err := url.QueryUnescape(split[1])
	if err != nil {
		return "", "", ErrHeaderValueMalformed
	}
	return clientID, secret, nil
}

func basicAuthorizationHeader(r *http.Request) string {
	// Get token from authorization header.
	val := r.Header.Get("Authorization")
	if len(val) > 6 && strings.ToUpper(val[0:5]) == "BASIC" {
		return val[6:]
	}
	return ""
}

type contextKey struct {
	name string
}

var AccessTokenContextKey = &contextKey{"AccessToken"}

// AccessTokenFromContext returns the access token a request was let through with
func AccessTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(AccessTokenContextKey).(string)
	if !ok {
		return "", ErrInvalidAuthorizationResult
	}
	return token, nil
}

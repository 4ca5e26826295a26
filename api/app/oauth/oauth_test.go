package oauth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/eisenwinter/tokenkeep/api/app/oauth/mocks"
	"github.com/eisenwinter/tokenkeep/client"
	clientmocks "github.com/eisenwinter/tokenkeep/client/mocks"
	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func hashedSecret(t *testing.T, secret string) *string {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := string(h)
	return &s
}

func issuedToken() *tables.TokenTable {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	refresh := "rt"
	return &tables.TokenTable{
		ID:           uuid.New(),
		ClientID:     "svc",
		UserID:       "svc",
		TokenType:    "bearer",
		AccessToken:  "at",
		RefreshToken: &refresh,
		Scopes:       "read",
		ExpiresAt:    created.Add(1800 * time.Second),
		CreatedAt:    created,
	}
}

type fixture struct {
	authority *mocks.TokenAuthority
	store     *clientmocks.Storer
	handler   http.Handler
}

func newFixture(t *testing.T) *fixture {
	authority := mocks.NewTokenAuthority(t)
	store := clientmocks.NewStorer(t)
	clients := client.NewService(zaptest.NewLogger(t), store, clientmocks.NewDispatcher(t))
	res := NewOAuthRessource(zaptest.NewLogger(t), authority, clients)
	r := chi.NewRouter()
	r.Mount("/oauth", res.Router())
	return &fixture{authority: authority, store: store, handler: r}
}

func (f *fixture) registerClient(t *testing.T, clientID string, secret string, scopes string) {
	var hashed *string
	if secret != "" {
		hashed = hashedSecret(t, secret)
	}
	f.store.On("ClientByClientID", mock.Anything, clientID).Return(&tables.ClientTable{
		ID:           1,
		ClientID:     clientID,
		ClientSecret: hashed,
		Name:         clientID,
		Scopes:       scopes,
	}, nil)
}

func TestTokenEndpointRejectsOtherMethods(t *testing.T) {
	f := newFixture(t)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		apitest.New().
			Handler(f.handler).
			Method(method).
			URL("/oauth/token").
			Expect(t).
			Body(`{"error":"Method Not Allowed"}`).
			Status(http.StatusMethodNotAllowed).
			End()
	}
}

func TestClientCredentialsGrant(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read write")
	f.authority.On("Issue", mock.Anything, tokens.IssueRequest{
		ClientID:  "svc",
		UserID:    "svc",
		Scopes:    "read",
		GrantType: tokens.GrantClientCredentials,
	}).Return(issuedToken(), nil)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		FormData("client_id", "svc").
		FormData("client_secret", "s3cret").
		FormData("scope", "read").
		Expect(t).
		Header("Cache-Control", "no-store").
		Body(`{"access_token":"at","token_type":"bearer","expires_in":1800,"refresh_token":"rt","scope":"read"}`).
		Status(http.StatusOK).
		End()
}

func TestClientCredentialsGrantBasicAuthDefaultsScope(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read write")
	f.authority.On("Issue", mock.Anything, mock.MatchedBy(func(req tokens.IssueRequest) bool {
		return req.Scopes == "read write" && req.UserID == "svc"
	})).Return(issuedToken(), nil)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		BasicAuth("svc", "s3cret").
		FormData("grant_type", "client_credentials").
		Expect(t).
		Status(http.StatusOK).
		End()
}

func TestClientCredentialsGrantBadSecret(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read")

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		BasicAuth("svc", "wrong").
		FormData("grant_type", "client_credentials").
		Expect(t).
		Header("Www-Authenticate", `Basic realm="token"`).
		Body(`{"error":"invalid_client","error_description":"Client authentication failed, due to missing or invalid client credentials."}`).
		Status(http.StatusUnauthorized).
		End()
}

func TestClientCredentialsGrantUnknownClient(t *testing.T) {
	f := newFixture(t)
	f.store.On("ClientByClientID", mock.Anything, "ghost").Return(nil, db.ErrNotFound)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		FormData("client_id", "ghost").
		FormData("client_secret", "x").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestClientCredentialsGrantPublicClient(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "spa", "", "read")

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		FormData("client_id", "spa").
		Expect(t).
		Body(`{"error":"unauthorized_client"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestClientCredentialsGrantScopeNotCovered(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read")

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		FormData("client_id", "svc").
		FormData("client_secret", "s3cret").
		FormData("scope", "read admin").
		Expect(t).
		Body(`{"error":"invalid_scope"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestClientCredentialsGrantIssueFailure(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read")
	f.authority.On("Issue", mock.Anything, mock.Anything).Return(nil, tokens.ErrExhausted)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		FormData("client_id", "svc").
		FormData("client_secret", "s3cret").
		Expect(t).
		Body(`{"error":"server_error"}`).
		Status(http.StatusInternalServerError).
		End()
}

func TestTokenEndpointRequestErrors(t *testing.T) {
	f := newFixture(t)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "client_credentials").
		Expect(t).
		Body(`{"error":"invalid_request","error_description":"client_id field not supplied"}`).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("client_id", "svc").
		Expect(t).
		Body(`{"error":"invalid_request","error_description":"grant_type field not supplied"}`).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "password").
		FormData("client_id", "svc").
		Expect(t).
		Body(`{"error":"unsupported_grant_type"}`).
		Status(http.StatusBadRequest).
		End()

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "refresh_token").
		FormData("client_id", "svc").
		Expect(t).
		Body(`{"error":"invalid_request","error_description":"refresh_token field not supplied"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestRefreshTokenGrant(t *testing.T) {
	f := newFixture(t)
	f.registerClient(t, "svc", "s3cret", "read")
	reissued := issuedToken()
	reissued.AccessToken = "at2"
	f.authority.On("Reissue", mock.Anything, "rt", "svc", "").Return(reissued, nil)

	apitest.New().
		Handler(f.handler).
		Post("/oauth/token").
		FormData("grant_type", "refresh_token").
		FormData("refresh_token", "rt").
		FormData("client_id", "svc").
		FormData("client_secret", "s3cret").
		Expect(t).
		Body(`{"access_token":"at2","token_type":"bearer","expires_in":1800,"refresh_token":"rt","scope":"read"}`).
		Status(http.StatusOK).
		End()
}

func TestRefreshTokenGrantErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		body   string
		status int
	}{
		{"invalid grant", tokens.ErrInvalidGrant, `{"error":"invalid_grant"}`, http.StatusBadRequest},
		{"invalid scope", tokens.ErrInvalidScope, `{"error":"invalid_scope"}`, http.StatusBadRequest},
		{"store failure", errors.New("db down"), `{"error":"server_error"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.registerClient(t, "svc", "s3cret", "read")
			f.authority.On("Reissue", mock.Anything, "rt", "svc", "").Return(nil, tc.err)

			apitest.New().
				Handler(f.handler).
				Post("/oauth/token").
				BasicAuth("svc", "s3cret").
				FormData("grant_type", "refresh_token").
				FormData("refresh_token", "rt").
				Expect(t).
				Body(tc.body).
				Status(tc.status).
				End()
		})
	}
}

package tokens

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eisenwinter/tokenkeep/config"
	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultLifetime         = 1800 * time.Second
	DefaultRefreshLifetime  = 24 * time.Hour
	DefaultTokenType        = "bearer"
	DefaultMaxIssueAttempts = 3
)

const (
	GrantClientCredentials = "client_credentials"
	GrantRefreshToken      = "refresh_token"
	GrantCommandLine       = "cli"
)

var (
	// ErrConflict is returned by a Store when the access or refresh token is already taken
	ErrConflict = db.ErrAlreadyExists
	// ErrExhausted means every issuance attempt collided with an existing token
	ErrExhausted = errors.New("could not issue a unique token within the allowed attempts")
	// ErrInvalidGrant covers unknown, foreign and outdated refresh tokens
	ErrInvalidGrant = errors.New("refresh token is invalid")
	// ErrInvalidScope is returned when a reissue asks for more than the original token had
	ErrInvalidScope = errors.New("requested scope exceeds the original scope")
)

// IssueRequest describes the token to mint
type IssueRequest struct {
	ClientID  string
	UserID    string
	TokenType string
	Scopes    string
	// Lifetime of zero or less uses the configured lifetime
	Lifetime  time.Duration
	GrantType string
}

// Authority issues and validates opaque access tokens. It keeps no mutable
// state, all uniqueness guarantees come from the Store.
type Authority struct {
	log             *zap.Logger
	store           Store
	generator       Generator
	now             func() time.Time
	dispatcher      Dispatcher
	lifetime        time.Duration
	refreshLifetime time.Duration
	tokenType       string
	maxAttempts     int
}

// NewAuthority returns a new authority, a nil clock falls back to time.Now
func NewAuthority(
	log *zap.Logger,
	cfg *config.TokenConfiguration,
	store Store,
	generator Generator,
	clock func() time.Time,
	dispatcher Dispatcher,
) *Authority {
	a := &Authority{
		log:             log,
		store:           store,
		generator:       generator,
		now:             clock,
		dispatcher:      dispatcher,
		lifetime:        DefaultLifetime,
		refreshLifetime: DefaultRefreshLifetime,
		tokenType:       DefaultTokenType,
		maxAttempts:     DefaultMaxIssueAttempts,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if cfg != nil {
		if cfg.Lifetime > 0 {
			a.lifetime = cfg.Lifetime
		}
		if cfg.RefreshLifetime > 0 {
			a.refreshLifetime = cfg.RefreshLifetime
		}
		if cfg.TokenType != "" {
			a.tokenType = cfg.TokenType
		}
		if cfg.MaxIssueAttempts > 0 {
			a.maxAttempts = cfg.MaxIssueAttempts
		}
	}
	return a
}

// Lifetime is the default lifetime of issued access tokens
func (a *Authority) Lifetime() time.Duration {
	return a.lifetime
}

// Issue mints and persists a new token record. Collisions are retried with fresh
// tokens up to the configured attempts, then ErrExhausted is returned.
// Any other store error is handed back as is.
func (a *Authority) Issue(ctx context.Context, req IssueRequest) (*tables.TokenTable, error) {
	lifetime := req.Lifetime
	if lifetime <= 0 {
		lifetime = a.lifetime
	}
	tokenType := req.TokenType
	if tokenType == "" {
		tokenType = a.tokenType
	}
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		accessToken, err := a.generator.CreateSecureToken()
		if err != nil {
			a.log.Error("unable to generate access token", zap.Error(err))
			return nil, err
		}
		refreshToken, err := a.generator.CreateSecureToken()
		if err != nil {
			a.log.Error("unable to generate refresh token", zap.Error(err))
			return nil, err
		}
		createdAt := a.now().UTC()
		record := &tables.TokenTable{
			ID:           uuid.New(),
			ClientID:     req.ClientID,
			UserID:       req.UserID,
			TokenType:    tokenType,
			AccessToken:  accessToken,
			RefreshToken: &refreshToken,
			Scopes:       req.Scopes,
			ExpiresAt:    createdAt.Add(lifetime),
			CreatedAt:    createdAt,
		}
		err = a.store.SaveToken(ctx, record)
		if err == nil {
			a.dispatcher.Dispatch(ctx, &event.TokenIssued{
				TokenID:   record.ID,
				ClientID:  record.ClientID,
				UserID:    record.UserID,
				GrantType: req.GrantType,
				Scopes:    record.Scopes,
				ExpiresAt: record.ExpiresAt,
			})
			return record, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
		a.log.Warn("generated token collided, regenerating",
			zap.Int("attempt", attempt),
			zap.String("client_id", req.ClientID))
		a.dispatcher.Dispatch(ctx, &event.TokenIssueRetried{ClientID: req.ClientID, Attempt: attempt})
	}
	a.log.Error("token issuance exhausted", zap.Int("attempts", a.maxAttempts))
	return nil, ErrExhausted
}

// Validate reports whether the presented access token exists and has not expired.
// It only reads, the reason for a rejection is not exposed.
func (a *Authority) Validate(ctx context.Context, presented string) (bool, error) {
	if presented == "" {
		return false, nil
	}
	token, found, err := a.store.FindByAccessToken(ctx, presented)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return a.now().Before(token.ExpiresAt), nil
}

// Reissue exchanges a refresh token for a brand new token record for the same user.
// The refresh token has to belong to clientID and be younger than the refresh lifetime.
// An empty scope keeps the original scope, otherwise it has to be a subset of it.
// The original record is left untouched.
func (a *Authority) Reissue(
	ctx context.Context,
	refreshToken string,
	clientID string,
	scope string,
) (*tables.TokenTable, error) {
	if refreshToken == "" {
		return nil, ErrInvalidGrant
	}
	original, found, err := a.store.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrInvalidGrant
	}
	if original.ClientID != clientID {
		a.log.Warn("refresh token presented by another client",
			zap.String("client_id", clientID),
			zap.String("token_id", original.ID.String()))
		return nil, ErrInvalidGrant
	}
	if !a.now().Before(original.CreatedAt.Add(a.refreshLifetime)) {
		return nil, ErrInvalidGrant
	}
	scopes := original.Scopes
	if strings.TrimSpace(scope) != "" {
		if !ScopesCovered(scope, original.Scopes) {
			return nil, ErrInvalidScope
		}
		scopes = normalizeScopes(scope)
	}
	return a.Issue(ctx, IssueRequest{
		ClientID:  original.ClientID,
		UserID:    original.UserID,
		TokenType: original.TokenType,
		Scopes:    scopes,
		GrantType: GrantRefreshToken,
	})
}

// ScopesCovered reports whether every space delimited scope in requested is part of granted
func ScopesCovered(requested string, granted string) bool {
	available := make(map[string]struct{})
	for _, s := range strings.Fields(granted) {
		available[s] = struct{}{}
	}
	for _, s := range strings.Fields(requested) {
		if _, ok := available[s]; !ok {
			return false
		}
	}
	return true
}

func normalizeScopes(scope string) string {
	return strings.Join(strings.Fields(scope), " ")
}

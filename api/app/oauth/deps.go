package oauth

import (
	"context"

	"github.com/eisenwinter/tokenkeep/client"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/tokens"
)

// TokenAuthority issues access tokens
type TokenAuthority interface {
	Issue(ctx context.Context, req tokens.IssueRequest) (*tables.TokenTable, error)
	Reissue(
		ctx context.Context,
		refreshToken string,
		clientID string,
		scope string,
	) (*tables.TokenTable, error)
}

// ClientAuthenticator resolves and authenticates the requesting client
type ClientAuthenticator interface {
	Authenticate(ctx context.Context, clientID string, secret string) (*client.Client, error)
}

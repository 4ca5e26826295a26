package tokens

import (
	"context"

	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events"
)

// Store persists token records. Absence on lookup is reported through found, not as an error.
type Store interface {
	SaveToken(ctx context.Context, token *tables.TokenTable) error
	FindByAccessToken(ctx context.Context, accessToken string) (*tables.TokenTable, bool, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*tables.TokenTable, bool, error)
}

// Generator creates the opaque token strings
type Generator interface {
	CreateSecureToken() (string, error)
}

// Dispatcher dispatches events
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

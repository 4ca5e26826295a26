package tables

import (
	"time"

	"github.com/google/uuid"
)

// TokenTable represents the tokens table, rows are written once and never updated
type TokenTable struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	ClientID     string    `db:"client_id"     json:"client_id"`
	UserID       string    `db:"user_id"       json:"user_id"`
	TokenType    string    `db:"token_type"    json:"token_type"`
	AccessToken  string    `db:"access_token"  json:"access_token"`
	RefreshToken *string   `db:"refresh_token" json:"refresh_token,omitempty"`
	Scopes       string    `db:"scopes"        json:"scopes"`
	ExpiresAt    time.Time `db:"expires_at"    json:"expires_at"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

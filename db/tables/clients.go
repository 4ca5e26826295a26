package tables

import (
	"time"
)

// ClientTable represents the clients table
type ClientTable struct {
	ID           int        `db:"id,omitempty"  fiql:"id,db:id"`
	ClientID     string     `db:"client_id"     fiql:"client_id,db:client_id"`
	ClientSecret *string    `db:"client_secret"                                json:"-"`
	Name         string     `db:"name"          fiql:"name,db:name"`
	Scopes       string     `db:"scopes"`
	RetiredOn    *time.Time `db:"retired_on"    fiql:"retired_on,db:retired_on"`
	CreatedAt    time.Time  `db:"created_at"    fiql:"created_at,db:created_at"`
}

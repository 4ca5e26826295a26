package users

import (
	"context"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/user"
)

// UserService registers and lists users
type UserService interface {
	Create(ctx context.Context, nu user.NewUser) (*tables.UserTable, error)
	List(ctx context.Context, opts db.ListOptions) ([]*tables.UserTable, error)
}

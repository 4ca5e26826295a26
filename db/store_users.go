package db

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"go.uber.org/zap"
)

var userColumns = []string{
	"id",
	"f_name",
	"l_name",
	"email_id",
	"phone_number",
	"address",
	"created_date",
}

// InsertUser stores the user and fills in the generated id,
// a taken email surfaces as ErrAlreadyExists
func (d *DataStore) InsertUser(ctx context.Context, user *tables.UserTable) error {
	insert := d.sb.Insert("users").
		Columns(userColumns[1:]...).
		Values(
			user.FirstName,
			user.LastName,
			user.Email,
			user.PhoneNumber,
			user.Address,
			user.CreatedDate.UTC(),
		)
	id, err := d.insertReturningID(ctx, insert, nil)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrAlreadyExists) {
			d.log.Error("could not insert user", zap.Error(err))
		}
		return err
	}
	user.ID = id
	return nil
}

func (d *DataStore) UserByEmail(ctx context.Context, email string) (*tables.UserTable, error) {
	var entity tables.UserTable
	q := d.sb.Select(userColumns...).From("users").Where(sq.Eq{"email_id": email})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Users lists users, optionally filtered with a fiql query
func (d *DataStore) Users(ctx context.Context, opts ListOptions) ([]*tables.UserTable, error) {
	applyWhere, err := d.whereFromAdapter("users", opts.Query)
	if err != nil {
		return nil, err
	}
	q := applyWhere(d.sb.Select(userColumns...).From("users"))
	q = d.orderByFromAdapter(q, "users", "id ASC", opts)
	q = paginate(q, opts)
	entities := make([]*tables.UserTable, 0)
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

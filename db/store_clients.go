package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"go.uber.org/zap"
)

var clientColumns = []string{
	"id",
	"client_id",
	"client_secret",
	"name",
	"scopes",
	"retired_on",
	"created_at",
}

func (d *DataStore) ClientByClientID(
	ctx context.Context,
	clientID string,
) (*tables.ClientTable, error) {
	var entity tables.ClientTable
	q := d.sb.Select(clientColumns...).From("clients").Where(sq.Eq{"client_id": clientID})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) Clients(
	ctx context.Context,
	opts ListOptions,
) ([]*tables.ClientTable, error) {
	applyWhere, err := d.whereFromAdapter("clients", opts.Query)
	if err != nil {
		return nil, err
	}
	q := applyWhere(d.sb.Select(clientColumns...).From("clients"))
	q = d.orderByFromAdapter(q, "clients", "id ASC", opts)
	q = paginate(q, opts)
	entities := make([]*tables.ClientTable, 0)
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// InsertClient stores a new client, the secret is expected to be hashed already
func (d *DataStore) InsertClient(
	ctx context.Context,
	clientID string,
	hashedSecret *string,
	name string,
	scopes string,
) (int, error) {
	insert := d.sb.Insert("clients").SetMap(map[string]interface{}{
		"client_id":     clientID,
		"client_secret": hashedSecret,
		"name":          name,
		"scopes":        scopes,
		"created_at":    time.Now().UTC(),
	})
	id, err := d.insertReturningID(ctx, insert, nil)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrAlreadyExists) {
			d.log.Error("could not insert client", zap.Error(err))
		}
		return 0, err
	}
	return id, nil
}

// RetireClient marks the client as retired, already retired clients are not touched
func (d *DataStore) RetireClient(ctx context.Context, clientID string) error {
	update := d.sb.Update("clients").
		Set("retired_on", time.Now().UTC()).
		Where(sq.And{sq.Eq{"client_id": clientID}, sq.Eq{"retired_on": nil}})
	rs, err := d.updateStatement(ctx, update, nil)
	if err != nil {
		return err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

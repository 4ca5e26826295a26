package db

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"go.uber.org/zap"
)

var tokenColumns = []string{
	"id",
	"client_id",
	"user_id",
	"token_type",
	"access_token",
	"refresh_token",
	"scopes",
	"expires_at",
	"created_at",
}

// SaveToken inserts a new token record, uniqueness of the access and refresh token
// is left to the unique indexes so concurrent inserts can not both succeed
func (d *DataStore) SaveToken(ctx context.Context, token *tables.TokenTable) error {
	insert := d.sb.Insert("tokens").
		Columns(tokenColumns...).
		Values(
			token.ID.String(),
			token.ClientID,
			token.UserID,
			token.TokenType,
			token.AccessToken,
			token.RefreshToken,
			token.Scopes,
			token.ExpiresAt.UTC(),
			token.CreatedAt.UTC(),
		)
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrAlreadyExists) {
			d.log.Error("could not insert token", zap.Error(err))
		}
		return err
	}
	return nil
}

// FindByAccessToken returns the token for the given access token, found is false if there is none
func (d *DataStore) FindByAccessToken(ctx context.Context, accessToken string) (*tables.TokenTable, bool, error) {
	return d.findToken(ctx, sq.Eq{"access_token": accessToken})
}

// FindByRefreshToken returns the token for the given refresh token, found is false if there is none
func (d *DataStore) FindByRefreshToken(ctx context.Context, refreshToken string) (*tables.TokenTable, bool, error) {
	return d.findToken(ctx, sq.Eq{"refresh_token": refreshToken})
}

func (d *DataStore) findToken(ctx context.Context, pred sq.Eq) (*tables.TokenTable, bool, error) {
	var entity tables.TokenTable
	q := d.sb.Select(tokenColumns...).From("tokens").Where(pred).Limit(1)
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	entity.ExpiresAt = entity.ExpiresAt.UTC()
	entity.CreatedAt = entity.CreatedAt.UTC()
	return &entity, true, nil
}

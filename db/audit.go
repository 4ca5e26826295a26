package db

import (
	"context"
	"time"

	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/jmoiron/sqlx"

	sq "github.com/Masterminds/squirrel"
)

type auditor struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func (d *auditor) addToAuditLog(ctx context.Context, event string, payload tables.MapStructure) error {
	insert := d.sb.
		Insert("audit_logs").
		Columns("event_type", "event", "created_at").
		Values(event, payload, time.Now().UTC())
	q, a, err := insert.ToSql()
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx, q, a...)
	return err
}

// AuditLog returns the latest audit entries, newest first
func (d *DataStore) AuditLog(ctx context.Context, limit int) ([]*tables.AuditLogTable, error) {
	q := d.sb.Select("id", "event_type", "event", "created_at").
		From("audit_logs").
		OrderBy("id DESC").
		Limit(uint64(limit))
	entries := make([]*tables.AuditLogTable, 0)
	if err := d.selectStatement(ctx, &entries, q, nil); err != nil {
		return nil, err
	}
	return entries, nil
}

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adlio/schema"
	"github.com/eisenwinter/tokenkeep/config"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/jmoiron/sqlx"

	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v4/stdlib"

	sq "github.com/Masterminds/squirrel"
	fq "github.com/eisenwinter/fiql-sql-adapter"
)

//go:embed migrations
var migrations embed.FS

var (
	// ErrNotFound indicates the requested entry was not found
	ErrNotFound = errors.New("the requested entry was not found")
	// ErrAlreadyExists indicates a unique constraint of the store rejected the entry
	ErrAlreadyExists = errors.New("this entity already exists")
	// ErrInvalidQuery indicates a filter expression that could not be parsed
	ErrInvalidQuery = errors.New("invalid query")
)

// DataStore is the relational store, backed by sqlite, mysql or postgres
type DataStore struct {
	log       *zap.Logger
	db        *sqlx.DB
	sb        sq.StatementBuilderType
	adapters  map[string]*fq.Adapter
	migrate   func() error
	returning bool
}

// ListOptions pages, filters and sorts listings
type ListOptions struct {
	PageSize int
	Page     int
	Sort     string
	Query    string
}

func (d *DataStore) Close() error {
	return d.db.Close()
}

// EnsureUsable applies all pending migrations
func (d *DataStore) EnsureUsable() error {
	if d.migrate != nil {
		return d.migrate()
	}
	return nil
}

// Ping checks connectivity
func (d *DataStore) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DataStore) getStatement(
	ctx context.Context,
	dest interface{},
	statement sq.SelectBuilder,
	tx *sqlx.Tx,
) error {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return err
	}
	if tx != nil {
		return tx.GetContext(ctx, dest, q, a...)
	}
	return d.db.GetContext(ctx, dest, q, a...)
}

func (d *DataStore) selectStatement(
	ctx context.Context,
	dest interface{},
	statement sq.SelectBuilder,
	tx *sqlx.Tx,
) error {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return err
	}
	if tx != nil {
		return tx.SelectContext(ctx, dest, q, a...)
	}
	return d.db.SelectContext(ctx, dest, q, a...)
}

func (d *DataStore) insertStatement(
	ctx context.Context,
	statement sq.InsertBuilder,
	tx *sqlx.Tx,
) (sql.Result, error) {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		return tx.ExecContext(ctx, q, a...)
	}
	return d.db.ExecContext(ctx, q, a...)
}

// insertReturningID inserts and hands back the generated id,
// mysql has no RETURNING so the driver reported id is used there
func (d *DataStore) insertReturningID(
	ctx context.Context,
	statement sq.InsertBuilder,
	tx *sqlx.Tx,
) (int, error) {
	if !d.returning {
		rs, err := d.insertStatement(ctx, statement, tx)
		if err != nil {
			return 0, err
		}
		id, err := rs.LastInsertId()
		return int(id), err
	}
	q, a, err := statement.Suffix("RETURNING id").ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return 0, err
	}
	var id int
	if tx != nil {
		err = tx.GetContext(ctx, &id, q, a...)
	} else {
		err = d.db.GetContext(ctx, &id, q, a...)
	}
	return id, err
}

func (d *DataStore) updateStatement(
	ctx context.Context,
	statement sq.UpdateBuilder,
	tx *sqlx.Tx,
) (sql.Result, error) {
	q, a, err := statement.ToSql()
	if err != nil {
		d.log.Error("Unable to construct sql", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		return tx.ExecContext(ctx, q, a...)
	}
	return d.db.ExecContext(ctx, q, a...)
}

func (d *DataStore) whereFromAdapter(
	table string,
	query string,
) (func(sq.SelectBuilder) sq.SelectBuilder, error) {
	if query != "" {
		where, err := d.adapters[table].Where(query)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
		}
		w, a, err := where.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
		}
		return func(sb sq.SelectBuilder) sq.SelectBuilder {
			return sb.Where(w, a...)
		}, nil
	}
	return func(sb sq.SelectBuilder) sq.SelectBuilder {
		return sb
	}, nil
}

func (d *DataStore) orderByFromAdapter(
	q sq.SelectBuilder,
	table string,
	defaultOrderBy string,
	opts ListOptions,
) sq.SelectBuilder {
	if opts.Sort == "" {
		return q.OrderBy(defaultOrderBy)
	}
	order, err := d.adapters[table].OrderBy(opts.Sort)
	if err != nil {
		d.log.Debug("invalid sort, using default", zap.String("sort", opts.Sort), zap.Error(err))
		return q.OrderBy(defaultOrderBy)
	}
	or, _, _ := order.ToSql()
	return q.OrderBy(or)
}

// paginate applies offset and limit, a page size of zero lists everything
func paginate(q sq.SelectBuilder, opts ListOptions) sq.SelectBuilder {
	if opts.PageSize <= 0 {
		return q
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	return q.Offset(uint64((page - 1) * opts.PageSize)).Limit(uint64(opts.PageSize))
}

// NewStore resolves the store for the configured database type
func NewStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	switch cfg.Type {
	case "sqlite":
		return NewSqliteStore(logger, cfg)
	case "mysql":
		return NewMysqlStore(logger, cfg)
	case "pg":
		return NewPostgresStore(logger, cfg)
	default:
		return nil, errors.New("unknown datastore")
	}
}

func NewMysqlStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	db, err := sqlx.Open("mysql", appendDSNOption(cfg.DSN, "parseTime=true"))
	if err != nil {
		logger.Error("Could not open database", zap.Error(err))
		return nil, err
	}

	migrate := func() error {
		migdb, err := sqlx.Open("mysql", appendDSNOption(cfg.DSN, "multiStatements=true"))
		if err != nil {
			logger.Error("Could not open database", zap.Error(err))
			return err
		}
		defer migdb.Close()
		migrator := schema.NewMigrator(schema.WithDialect(schema.MySQL))
		mig, err := schema.FSMigrations(migrations, "migrations/mysql/*.sql")
		if err != nil {
			return err
		}
		return migrator.Apply(migdb, mig)
	}

	return &DataStore{
		log:      logger,
		db:       db,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Question),
		migrate:  migrate,
		adapters: createMapping(fq.WithDialectMariaDB()),
	}, nil
}

func NewPostgresStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	db, err := sqlx.Open("pgx", cfg.DSN)
	if err != nil {
		logger.Error("Could not open database", zap.Error(err))
		return nil, err
	}

	migrate := func() error {
		migrator := schema.NewMigrator(schema.WithDialect(schema.Postgres))
		mig, err := schema.FSMigrations(migrations, "migrations/pg/*.sql")
		if err != nil {
			return err
		}
		return migrator.Apply(db.DB, mig)
	}

	return &DataStore{
		log:       logger,
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		migrate:   migrate,
		adapters:  createMapping(fq.WithDialectPostgres()),
		returning: true,
	}, nil
}

func NewSqliteStore(logger *zap.Logger, cfg *config.DatabaseConfiguration) (*DataStore, error) {
	db, err := sqlx.Open("sqlite3", cfg.DSN)
	if err != nil {
		logger.Error("Could not open database", zap.Error(err))
		return nil, err
	}
	// every connection to :memory: gets its own database
	if strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	// check if dsn contains a directory which needs to be created
	split := strings.Split(cfg.DSN, "?")
	if len(split) >= 1 && strings.ContainsRune(split[0], os.PathSeparator) {
		striped := strings.TrimPrefix(split[0], "file:")
		dir := filepath.Dir(striped)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Warn("Trying to create directory", zap.String("directory", dir))
			err = os.MkdirAll(dir, 0750)
			if err != nil {
				logger.Error("Could not create database directory", zap.Error(err))
				return nil, err
			}
		}
	}

	migrate := func() error {
		migrator := schema.NewMigrator(schema.WithDialect(schema.SQLite))
		mig, err := schema.FSMigrations(migrations, "migrations/sqlite/*.sql")
		if err != nil {
			return err
		}
		return migrator.Apply(db.DB, mig)
	}

	return &DataStore{
		log:       logger,
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(sq.Question),
		migrate:   migrate,
		adapters:  createMapping(fq.WithDialectSQLite()),
		returning: true,
	}, nil
}

func appendDSNOption(dsn string, option string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + option
	}
	return dsn + "?" + option
}

func createMapping(options ...func(*fq.Adapter)) map[string]*fq.Adapter {
	adapters := make(map[string]*fq.Adapter)
	adapters["clients"] = fq.NewAdapterFor(tables.ClientTable{}, options...)
	adapters["users"] = fq.NewAdapterFor(tables.UserTable{}, options...)
	return adapters
}

func (d *DataStore) Auditor() Auditor {
	return &auditor{
		db: d.db,
		sb: d.sb,
	}
}

package database

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

// Postgres owns the connection pool shared by the per-entity repositories.
type Postgres struct {
	conn *sqlx.DB
	log  *zap.SugaredLogger
}

func NewPostgres(ctx context.Context, dsn string, maxOpen, maxIdle int, log *zap.SugaredLogger) (*Postgres, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	return &Postgres{conn: db, log: log}, nil
}

// NewPostgresFromDB wraps an already opened pool.
func NewPostgresFromDB(db *sqlx.DB, log *zap.SugaredLogger) *Postgres {
	return &Postgres{conn: db, log: log}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.conn.PingContext(ctx)
}

// EnsureSchema creates any missing tables. Existing tables are left untouched.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.conn.ExecContext(ctx, schema)
	logQuery(p.log, "ensure schema", nil, err)
	return errors.Wrap(err, "ensure schema")
}

func (p *Postgres) Users() *PgUserRepository {
	return &PgUserRepository{db: p.conn, log: p.log}
}

func (p *Postgres) Clubs() *PgClubRepository {
	return &PgClubRepository{db: p.conn, log: p.log}
}

func (p *Postgres) Books() *PgBookRepository {
	return &PgBookRepository{db: p.conn, log: p.log}
}

func (p *Postgres) Messages() *PgMessageRepository {
	return &PgMessageRepository{db: p.conn, log: p.log}
}

func (p *Postgres) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

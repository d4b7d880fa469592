package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var _ BlobStorage = (*SQLStorage)(nil)

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLDB struct {
	*sql.DB
}

// NewSQLDB opens a PostgreSQL database through the pgx driver
// and checks it is reachable.
func NewSQLDB(ctx context.Context, dsn string) (SQLDB, error) {
	const op = "SQLDB"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return SQLDB{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLDB{db}
	if err := s.PingContext(ctx); err != nil {
		_ = db.Close()
		return SQLDB{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	log.Info("database is available")
	return s, nil
}

func (s SQLDB) Close() {
	const op = "SQLDB.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.DB.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}

// A SQLStorage keeps blobs in the cart_blobs table created by the migrator.
type SQLStorage struct {
	sqldb  sqldb
	closer func()
}

func NewSQLStorage(db SQLDB) SQLStorage {
	return SQLStorage{sqldb: db, closer: db.Close}
}

func (s SQLStorage) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLStorage.Load"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT data FROM cart_blobs WHERE blob_key = $1;`

	var blob []byte
	err := s.sqldb.QueryRowContext(ctx, query, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(op, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return blob, nil
}

func (s SQLStorage) Save(ctx context.Context, key string, blob []byte) error {
	const op = "SQLStorage.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_blobs (blob_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (blob_key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.sqldb.ExecContext(ctx, query, key, blob); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (s SQLStorage) Delete(ctx context.Context, key string) error {
	const op = "SQLStorage.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM cart_blobs WHERE blob_key = $1;`

	res, err := s.sqldb.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return notFound(op, key)
	}
	return nil
}

func (s SQLStorage) Close() {
	if s.closer != nil {
		s.closer()
	}
}

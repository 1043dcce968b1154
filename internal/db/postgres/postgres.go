package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and creates the schema if it is missing.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 30 * time.Second
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats exposes the pgxpool statistics for the metrics exporter.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

const entryColumns = `id, latn, kana, cyrl, syllables, gloss, created_at, updated_at`

func (r *Repository) UpsertEntry(ctx context.Context, arg db.UpsertEntryParams) (db.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entries (latn, kana, cyrl, syllables, gloss)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (latn) DO UPDATE SET
			kana = EXCLUDED.kana,
			cyrl = EXCLUDED.cyrl,
			syllables = EXCLUDED.syllables,
			gloss = EXCLUDED.gloss,
			updated_at = NOW()
		RETURNING `+entryColumns,
		arg.Latn, arg.Kana, arg.Cyrl, arg.Syllables, arg.Gloss)
	return scanEntry(row)
}

func (r *Repository) GetEntryByLatn(ctx context.Context, latn string) (db.Entry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE latn = $1`, latn)
	return scanEntry(row)
}

func (r *Repository) ListEntries(ctx context.Context, arg db.ListEntriesParams) ([]db.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE latn LIKE $1 ESCAPE '\'
		ORDER BY latn
		LIMIT $2 OFFSET $3
	`, db.EscapeLike(arg.Prefix)+"%", arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []db.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) CountEntries(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE latn LIKE $1 ESCAPE '\'`,
		db.EscapeLike(prefix)+"%",
	).Scan(&count)
	return count, err
}

func (r *Repository) DeleteEntry(ctx context.Context, latn string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE latn = $1`, latn)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row) (db.Entry, error) {
	var e db.Entry
	err := row.Scan(&e.ID, &e.Latn, &e.Kana, &e.Cyrl, &e.Syllables, &e.Gloss, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Entry{}, db.ErrNoRows
	}
	if err != nil {
		return db.Entry{}, err
	}
	return e, nil
}

package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ainutools/ainconv/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens or creates the SQLite database at dbPath. The sqlite:// prefix
// is optional. ":memory:" gives a private in-memory database.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory") {
		sqliteDB.SetMaxOpenConns(1)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqliteDB.ExecContext(ctx, pragma); err != nil {
			sqliteDB.Close()
			return nil, fmt.Errorf("running %q: %w", pragma, err)
		}
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	slog.Debug("opened SQLite database", "path", dbPath)

	return &Repository{db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

const entryColumns = `id, latn, kana, cyrl, syllables, gloss, created_at, updated_at`

func (r *Repository) UpsertEntry(ctx context.Context, arg db.UpsertEntryParams) (db.Entry, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO entries (latn, kana, cyrl, syllables, gloss, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (latn) DO UPDATE SET
			kana = excluded.kana,
			cyrl = excluded.cyrl,
			syllables = excluded.syllables,
			gloss = excluded.gloss,
			updated_at = excluded.updated_at
	`, arg.Latn, arg.Kana, arg.Cyrl, arg.Syllables, arg.Gloss, now, now)
	if err != nil {
		return db.Entry{}, err
	}
	return r.GetEntryByLatn(ctx, arg.Latn)
}

func (r *Repository) GetEntryByLatn(ctx context.Context, latn string) (db.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE latn = ?`, latn)
	return scanEntry(row)
}

func (r *Repository) ListEntries(ctx context.Context, arg db.ListEntriesParams) ([]db.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE latn LIKE ? ESCAPE '\'
		ORDER BY latn
		LIMIT ? OFFSET ?
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
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE latn LIKE ? ESCAPE '\'`,
		db.EscapeLike(prefix)+"%",
	).Scan(&count)
	return count, err
}

func (r *Repository) DeleteEntry(ctx context.Context, latn string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE latn = ?`, latn)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (db.Entry, error) {
	var e db.Entry
	var createdAtStr, updatedAtStr string
	err := row.Scan(&e.ID, &e.Latn, &e.Kana, &e.Cyrl, &e.Syllables, &e.Gloss, &createdAtStr, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Entry{}, db.ErrNoRows
	}
	if err != nil {
		return db.Entry{}, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAtStr)
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAtStr)
	return e, nil
}

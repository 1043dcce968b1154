package db

import (
	"context"
	"database/sql"
	"time"
)

// Entry is a lexicon headword with its spelling in every script.
// Syllables holds the romanized syllables separated by single spaces.
type Entry struct {
	ID        int64
	Latn      string
	Kana      string
	Cyrl      string
	Syllables string
	Gloss     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UpsertEntryParams struct {
	Latn      string
	Kana      string
	Cyrl      string
	Syllables string
	Gloss     sql.NullString
}

type ListEntriesParams struct {
	Prefix string
	Limit  int32
	Offset int32
}

// Repository defines the interface for lexicon storage
type Repository interface {
	// UpsertEntry inserts an entry or, when Latn already exists, replaces
	// its other columns and bumps UpdatedAt.
	UpsertEntry(ctx context.Context, arg UpsertEntryParams) (Entry, error)
	GetEntryByLatn(ctx context.Context, latn string) (Entry, error)
	// ListEntries returns entries whose Latn starts with Prefix, ordered
	// by Latn.
	ListEntries(ctx context.Context, arg ListEntriesParams) ([]Entry, error)
	CountEntries(ctx context.Context, prefix string) (int64, error)
	DeleteEntry(ctx context.Context, latn string) (int64, error)

	// Lifecycle
	Close() error
}

package lexicon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) db.Repository {
	t.Helper()
	repo, err := OpenRepository(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenRepositoryPicksSQLite(t *testing.T) {
	repo := newTestRepo(t)
	_, ok := repo.(*sqlite.Repository)
	assert.True(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "aynu", Normalize("  Áynu "))
	assert.Equal(t, "akor", Normalize("a=kor"))
	assert.Equal(t, "a’e", Normalize("a’e"))
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("Aynu", " human ")
	assert.Equal(t, "aynu", e.Latn)
	assert.Equal(t, "アイヌ", e.Kana)
	assert.Equal(t, "айну", e.Cyrl)
	assert.Equal(t, "ay nu", e.Syllables)
	assert.True(t, e.Gloss.Valid)
	assert.Equal(t, "human", e.Gloss.String)

	e = NewEntry("itak", "")
	assert.False(t, e.Gloss.Valid)
	assert.Equal(t, "i tak", e.Syllables)
}

func TestImport(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"# headword\tgloss",
		"aynu\thuman",
		"",
		"itak\tspeech",
		"айну\tcyrillic is skipped",
		"kamuy\tbear",
		"kamuy\tgod",
		"sinep",
	}, "\n")

	stats, err := NewImporter(repo, 4, discardLogger()).Import(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Stats{Read: 6, Imported: 4, Skipped: 2}, stats)

	count, err := repo.CountEntries(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	kamuy, err := repo.GetEntryByLatn(ctx, "kamuy")
	require.NoError(t, err)
	assert.Equal(t, "god", kamuy.Gloss.String)
	assert.Equal(t, "カムイ", kamuy.Kana)

	sinep, err := repo.GetEntryByLatn(ctx, "sinep")
	require.NoError(t, err)
	assert.False(t, sinep.Gloss.Valid)
}

func TestImportEmpty(t *testing.T) {
	repo := newTestRepo(t)
	stats, err := NewImporter(repo, 0, discardLogger()).Import(context.Background(), strings.NewReader("\n# nothing\n"))
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

type failingRepo struct {
	db.Repository
}

func (failingRepo) UpsertEntry(context.Context, db.UpsertEntryParams) (db.Entry, error) {
	return db.Entry{}, errors.New("disk full")
}

func TestImportReportsRepositoryErrors(t *testing.T) {
	stats, err := NewImporter(failingRepo{}, 2, discardLogger()).Import(context.Background(), strings.NewReader("aynu\nitak\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(0), stats.Imported)
}

func TestLookupAnyScript(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.UpsertEntry(ctx, NewEntry("itak", "speech"))
	require.NoError(t, err)

	for _, word := range []string{"itak", "Ítak", "итак", "イタㇰ"} {
		e, err := Lookup(ctx, repo, word)
		require.NoError(t, err, word)
		assert.Equal(t, "speech", e.Gloss.String, word)
	}

	_, err = Lookup(ctx, repo, "kamuy")
	assert.True(t, db.IsNoRows(err))
}

// Package lexicon keeps a dictionary of Ainu headwords with their
// spellings precomputed for every script.
package lexicon

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/db/postgres"
	"github.com/ainutools/ainconv/internal/db/sqlite"
	"github.com/ainutools/ainconv/internal/metrics"
	"github.com/ainutools/ainconv/internal/transliteration"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// OpenRepository picks the backend from the URL scheme: postgres:// and
// postgresql:// go to PostgreSQL, everything else is a SQLite path.
func OpenRepository(ctx context.Context, databaseURL string) (db.Repository, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.New(ctx, databaseURL)
	}
	return sqlite.New(ctx, databaseURL)
}

// Normalize returns the headword key for word: trimmed, lower-cased,
// without stress accents or morpheme boundaries.
func Normalize(word string) string {
	word = strings.ReplaceAll(strings.TrimSpace(word), "=", "")
	return strings.ToLower(transliteration.RemoveAcuteAccent(word))
}

// NewEntry derives the stored spellings of a romanized headword.
func NewEntry(latn, gloss string) db.UpsertEntryParams {
	key := Normalize(latn)
	words := transliteration.Syllabify(key)
	gloss = strings.TrimSpace(gloss)
	return db.UpsertEntryParams{
		Latn:      key,
		Kana:      transliteration.LatnToKana(key),
		Cyrl:      transliteration.LatnToCyrl(key),
		Syllables: strings.Join(lo.Flatten(words), " "),
		Gloss:     sql.NullString{String: gloss, Valid: gloss != ""},
	}
}

// Lookup finds the entry for word written in any script. Katakana input
// is decoded to Latin first, so words whose romanization has y or w codas
// only match when spelled in Latin or Cyrillic.
func Lookup(ctx context.Context, repo db.Repository, word string) (db.Entry, error) {
	switch transliteration.Detect(word) {
	case transliteration.Cyrl:
		word = transliteration.CyrlToLatn(word)
	case transliteration.Kana:
		word = transliteration.KanaToLatn(word)
	}
	return repo.GetEntryByLatn(ctx, Normalize(word))
}

// Stats counts the lines of one import. Read excludes blank lines and
// comments. Skipped covers non-Latin headwords and lines replaced by a
// later line for the same headword.
type Stats struct {
	Read     int64
	Imported int64
	Skipped  int64
}

type Importer struct {
	repo    db.Repository
	workers int
	log     *slog.Logger
}

func NewImporter(repo db.Repository, workers int, log *slog.Logger) *Importer {
	return &Importer{repo: repo, workers: max(workers, 1), log: log}
}

type line struct {
	num   int
	latn  string
	gloss string
}

// Import reads one headword per line, optionally followed by a tab and a
// gloss. Blank lines and lines starting with # are ignored. Headwords that
// are not in the Latin script are skipped. A later line for the same
// headword replaces an earlier one.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Stats, error) {
	lines, err := readLines(r)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	stats.Read = int64(len(lines))

	valid := lo.Filter(lines, func(l line, _ int) bool {
		if transliteration.Detect(l.latn) != transliteration.Latn {
			im.log.WarnContext(ctx, "skipping non-Latin headword", "line", l.num, "headword", l.latn)
			return false
		}
		return true
	})
	// Keep the last line per headword.
	valid = lo.Values(lo.KeyBy(valid, func(l line) string {
		return Normalize(l.latn)
	}))
	stats.Skipped = stats.Read - int64(len(valid))
	metrics.LexiconImportTotal.WithLabelValues("skipped").Add(float64(stats.Skipped))

	var imported atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(im.workers)
	for _, l := range valid {
		eg.Go(func() error {
			if _, err := im.repo.UpsertEntry(egCtx, NewEntry(l.latn, l.gloss)); err != nil {
				metrics.LexiconImportTotal.WithLabelValues("failed").Inc()
				return fmt.Errorf("importing line %d %q: %w", l.num, l.latn, err)
			}
			metrics.LexiconImportTotal.WithLabelValues("imported").Inc()
			imported.Add(1)
			return nil
		})
	}
	err = eg.Wait()
	stats.Imported = imported.Load()

	im.log.InfoContext(ctx, "lexicon import finished",
		"read", stats.Read, "imported", stats.Imported, "skipped", stats.Skipped)
	if err != nil {
		return stats, fmt.Errorf("importing lexicon: %w", err)
	}
	return stats, nil
}

func readLines(r io.Reader) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		latn, gloss, _ := strings.Cut(text, "\t")
		lines = append(lines, line{num: num, latn: strings.TrimSpace(latn), gloss: gloss})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return lines, nil
}

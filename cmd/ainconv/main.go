package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/ainutools/ainconv/internal/lexicon"
	"github.com/ainutools/ainconv/internal/logger"
	"github.com/ainutools/ainconv/internal/transliteration"
	"github.com/ainutools/ainconv/internal/tui"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

const maxLineBytes = 1 << 20

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, logger.New())
}

type options struct {
	to          string
	from        string
	detect      bool
	syllables   bool
	interactive bool
	workers     int
	lexiconDB   string
	importMode  bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, log *slog.Logger) error {
	fs := ff.NewFlagSet("ainconv")

	var (
		to          = fs.StringLong("to", "", "target script: latn, kana or cyrl")
		from        = fs.StringLong("from", "auto", "source script: auto, latn, kana or cyrl")
		detect      = fs.BoolLong("detect", "print the detected script instead of converting")
		syllables   = fs.BoolLong("syllables", "print the syllables of romanized text")
		interactive = fs.BoolLong("interactive", "start the interactive converter")
		workers     = fs.IntLong("workers", runtime.GOMAXPROCS(0), "concurrent conversions for stdin input")
		lexiconDB   = fs.StringLong("lexicon-db", "sqlite://ainconv.db", "lexicon database URL for --import")
		importMode  = fs.BoolLong("import", "import tab-separated headwords and glosses from stdin into the lexicon")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("AINCONV")); err != nil {
		fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	opts := options{
		to:          *to,
		from:        *from,
		detect:      *detect,
		syllables:   *syllables,
		interactive: *interactive,
		workers:     max(*workers, 1),
		lexiconDB:   *lexiconDB,
		importMode:  *importMode,
	}

	switch {
	case opts.interactive:
		return tui.Run(stdin, stdout)
	case opts.importMode:
		return importLexicon(ctx, opts, stdin, stdout, log)
	}

	op, err := operation(opts)
	if err != nil {
		return err
	}

	if text := fs.GetArgs(); len(text) > 0 {
		_, err := fmt.Fprintln(stdout, op(strings.Join(text, " ")))
		return err
	}
	return convertLines(ctx, op, opts.workers, stdin, stdout)
}

// operation picks what to do with each input text.
func operation(opts options) (func(string) string, error) {
	if opts.detect {
		return func(text string) string {
			return transliteration.Detect(text).String()
		}, nil
	}
	if opts.syllables {
		return formatSyllables, nil
	}

	if opts.to == "" {
		return nil, errors.New("one of --to, --detect, --syllables, --interactive or --import is required")
	}
	to, err := parseConvertible(opts.to)
	if err != nil {
		return nil, fmt.Errorf("--to: %w", err)
	}

	if opts.from == "" || strings.EqualFold(opts.from, "auto") {
		return func(text string) string {
			converted, _ := transliteration.Convert(text, to)
			return converted
		}, nil
	}
	from, err := parseConvertible(opts.from)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	return func(text string) string {
		return transliteration.ConvertFrom(text, from, to)
	}, nil
}

func parseConvertible(name string) (transliteration.Script, error) {
	s, err := transliteration.ParseScript(name)
	if err != nil {
		return transliteration.Unknown, err
	}
	switch s {
	case transliteration.Latn, transliteration.Kana, transliteration.Cyrl:
		return s, nil
	default:
		return transliteration.Unknown, fmt.Errorf("cannot convert to or from %s", s)
	}
}

func formatSyllables(text string) string {
	switch from := transliteration.Detect(text); from {
	case transliteration.Cyrl, transliteration.Kana:
		text = transliteration.ConvertFrom(text, from, transliteration.Latn)
	}
	words := transliteration.Syllabify(text)
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.Join(w, "-")
	}
	return strings.Join(out, " ")
}

// convertLines converts every line of r on a bounded pool and writes the
// results in input order.
func convertLines(ctx context.Context, op func(string) string, workers int, r io.Reader, w io.Writer) error {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	results := make([]string, len(lines))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, line := range lines {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			results[i] = op(line)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, res := range results {
		bw.WriteString(res)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func importLexicon(ctx context.Context, opts options, r io.Reader, w io.Writer, log *slog.Logger) error {
	repo, err := lexicon.OpenRepository(ctx, opts.lexiconDB)
	if err != nil {
		return fmt.Errorf("opening lexicon database: %w", err)
	}
	defer repo.Close()

	stats, err := lexicon.NewImporter(repo, opts.workers, log).Import(ctx, r)
	fmt.Fprintf(w, "read %d, imported %d, skipped %d\n", stats.Read, stats.Imported, stats.Skipped)
	return err
}

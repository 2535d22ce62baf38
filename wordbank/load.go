package wordbank

import (
	"bufio"
	"context"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/powellquiring/wordlehint/wordle"
)

// built in list so the solver still works offline
//
//go:embed fallback.txt
var embeddedFallback string

const (
	AnswersFile = "wordle_answers.txt"
	AllowedFile = "valid_guesses.txt"
)

// Source supplies one word per line
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads a word list from a file
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return f.Path }

func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// ReaderSource reads a word list held in memory
type ReaderSource struct {
	Label string
	Text  string
}

func (r ReaderSource) Name() string { return r.Label }

func (r ReaderSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(r.Text)), nil
}

// DataFiles returns the answers and allowed guesses sources kept in dir
func DataFiles(dir string) []Source {
	return []Source{
		FileSource{Path: filepath.Join(dir, AnswersFile)},
		FileSource{Path: filepath.Join(dir, AllowedFile)},
	}
}

// Fallback returns a copy of the built in word list
func Fallback() []string {
	return normalizeLines(embeddedFallback)
}

// Load merges the words of all sources into a bank. A source that can not be read
// is skipped. When no source supplies a single word the built in list is used.
func Load(ctx context.Context, sources ...Source) *Bank {
	var words []string
	for _, source := range sources {
		sourceWords, err := readSource(ctx, source)
		if err != nil {
			log.Warn().Err(err).Str("source", source.Name()).Msg("word source unavailable")
			continue
		}
		log.Debug().Str("source", source.Name()).Int("words", len(sourceWords)).Msg("read word source")
		words = append(words, sourceWords...)
	}
	if len(words) == 0 {
		log.Warn().Msg("using fallback word list")
		words = Fallback()
	}
	bank := New(words)
	log.Info().Int("words", bank.Len()).Msg("loaded word bank")
	return bank
}

// readSource loads one word per line, lowercases, trims, and keeps only valid
// 5-letter alphabetic words.
func readSource(ctx context.Context, source Source) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var out []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		if w, ok := normalizeLine(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w, ok := normalizeLine(line); ok {
			out = append(out, w)
		}
	}
	return out
}

func normalizeLine(line string) (string, bool) {
	w, err := wordle.Normalize(line)
	return w, err == nil
}

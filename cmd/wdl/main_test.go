package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/powellquiring/wordlehint/session"
	"github.com/powellquiring/wordlehint/solver"
	"github.com/powellquiring/wordlehint/wordbank"
	"github.com/powellquiring/wordlehint/wordle"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	err := cmd.Run(context.Background(), append([]string{"wdl", "--data-dir", t.TempDir(), "--auto-fetch=false", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	ret, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), ret)

	path := filepath.Join(t.TempDir(), "wdl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: lists\nseed: 7\nopeners: [crane, slate]\naddr: \":9000\"\n"), 0o644))
	ret, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lists", ret.DataDir)
	assert.Equal(t, int64(7), ret.Seed)
	assert.Equal(t, []string{"crane", "slate"}, ret.Openers)
	assert.Equal(t, ":9000", ret.Addr)
	assert.Equal(t, solver.DefaultSampleSize, ret.SampleSize)
	assert.Equal(t, "info", ret.LogLevel)
	assert.True(t, ret.AutoFetch)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("seed: [not a number\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestConfigOpeners(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wdl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openers: [crash]\n"), 0o644))
	out, err := run(t, "--config", path, "--seed", "3", "sim", "crash")
	require.NoError(t, err)
	assert.Contains(t, out, "crash: crash\n")

	out, err = run(t, "--seed", "3", "play", "crash", "ggggg")
	require.NoError(t, err)
	assert.Equal(t, "solved: crash\n", out)
}

func TestPlay(t *testing.T) {
	out, err := run(t, "--seed", "1", "play", "soare", "rrrrr")
	require.NoError(t, err)
	suggestion, words, ok := strings.Cut(strings.TrimSpace(out), ":")
	require.True(t, ok, out)
	assert.NotEmpty(t, suggestion)
	assert.Contains(t, words, suggestion)
	for _, word := range strings.Fields(words) {
		assert.NotContains(t, word, "s")
		assert.NotContains(t, word, "e")
	}

	_, err = run(t, "play", "soare")
	assert.Error(t, err)
	_, err = run(t, "play", "zzzzz", "rrrrr")
	assert.Error(t, err)
}

func TestFirst(t *testing.T) {
	out, err := run(t, "first", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
	ranked := wordbank.New(wordbank.Fallback()).Ranked(1)
	assert.True(t, strings.HasPrefix(lines[0], ranked[0].Word+" "))
}

func TestSim(t *testing.T) {
	out, err := run(t, "--seed", "1", "sim", "--first", "soare", "crash", "slate")
	require.NoError(t, err)
	assert.Contains(t, out, "crash: soare")
	assert.Contains(t, out, "slate: soare")
	assert.Contains(t, out, "over 2 games")
}

func TestRepl(t *testing.T) {
	bank := wordbank.New(append(wordbank.Fallback(), "abase", "speed"))
	s := session.New(solver.New(bank, solver.WithSeed(1)))
	input := strings.Join([]string{
		"",
		"speed " + wordle.Pattern(wordle.Score("abase", "speed")),
		"bogus",
		"zzzzz rrrrr",
		"list",
		"undo",
		"undo",
		"abase ggggg",
		"quit",
	}, "\n")
	var out bytes.Buffer
	require.NoError(t, repl(strings.NewReader(input), &out, s, 5))
	text := out.String()
	assert.Contains(t, text, fmt.Sprintf("suggestion: soare (%d possible, 0 eliminated)", bank.Len()))
	assert.Contains(t, text, "expected <guess> <pattern>")
	assert.Contains(t, text, "word not in dictionary")
	assert.Contains(t, text, "nothing to undo")
	assert.Contains(t, text, "solved!")
	assert.Empty(t, s.Attempts())
}

func TestTiles(t *testing.T) {
	ret := tiles("crane", "gyrrr")
	for _, letter := range []string{"C", "R", "A", "N", "E"} {
		assert.Contains(t, ret, letter)
	}
	assert.Equal(t, "crane bad", tiles("crane", "bad"))
}

func TestAutoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/answers":
			_, _ = w.Write([]byte("cigar\nrebut\n"))
		case "/allowed":
			_, _ = w.Write([]byte("aahed\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	path := filepath.Join(dir, "wdl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+data+"\nanswers_url: "+srv.URL+"/answers\nallowed_url: "+srv.URL+"/allowed\n"), 0o644))

	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), []string{"wdl", "--config", path, "--log-level", "error", "first", "-n", "0"}))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 3)
	assert.FileExists(t, filepath.Join(data, wordbank.AnswersFile))
	assert.FileExists(t, filepath.Join(data, wordbank.AllowedFile))

	// a failed download still answers from the built in words
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+filepath.Join(dir, "other")+"\nanswers_url: "+srv.URL+"/gone\n"), 0o644))
	out.Reset()
	cmd = newCommand()
	cmd.Writer = &out
	require.NoError(t, cmd.Run(context.Background(), []string{"wdl", "--config", path, "--log-level", "error", "first", "-n", "0"}))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), len(wordbank.Fallback()))
}

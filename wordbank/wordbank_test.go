package wordbank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersAndDedupes(t *testing.T) {
	b := New([]string{"CRANE", "crane", " slate ", "toolong", "abc", "cr4ne", "", "Slate"})
	assert.Equal(t, []string{"crane", "slate"}, b.Words())
	assert.Equal(t, 2, b.Len())
}

func TestFrequency(t *testing.T) {
	assert := assert.New(t)
	b := New([]string{"aaaaa", "abbbb", "ccccc", "bcdef"})
	freq := b.Frequency()
	// repeated letters only count once per word
	assert.InDelta(0.5, freq.Of('a'), 1e-9)
	assert.InDelta(0.5, freq.Of('b'), 1e-9)
	assert.InDelta(0.5, freq.Of('c'), 1e-9)
	assert.InDelta(0.25, freq.Of('f'), 1e-9)
	assert.Zero(freq.Of('z'))
	assert.Zero(freq.Of('!'))
	for _, f := range freq {
		assert.GreaterOrEqual(f, 0.0)
		assert.LessOrEqual(f, 1.0)
	}
}

func TestScore(t *testing.T) {
	assert := assert.New(t)
	b := New([]string{"aaaaa", "abbbb", "ccccc", "bcdef"})
	assert.InDelta(0.5, b.Score("aaaaa"), 1e-9)
	assert.InDelta(1.0, b.Score("abbbb"), 1e-9)
	assert.InDelta(b.Score("abbbb"), b.Score("ABBBB"), 1e-9)
	assert.Equal(b.Score("bcdef"), b.Score("bcdef"))
	assert.InDelta(0.5+0.5+0.25+0.25+0.25, b.Score("bcdef"), 1e-9)
}

func TestIsValid(t *testing.T) {
	b := New(Fallback())
	assert.True(t, b.IsValid("crash"))
	assert.True(t, b.IsValid(" CRASH "))
	assert.False(t, b.IsValid("zzzzz"))
	assert.False(t, b.IsValid("cras"))
}

func TestEmptyBank(t *testing.T) {
	b := New(nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, uint(0), b.All().Count())
	assert.Zero(t, b.Score("crane"))
	assert.Empty(t, b.Ranked(5))
}

func TestIndex(t *testing.T) {
	assert := assert.New(t)
	b := New([]string{"aaazz", "abbzz", "abczz", "abazz", "bbazz"})
	assert.Equal([]string{"aaazz", "abazz", "abbzz", "abczz"}, b.Strings(b.At(0, 'a')))
	assert.Equal([]string{"aaazz", "abazz", "bbazz"}, b.Strings(b.At(2, 'a')))
	assert.Equal([]string{"abczz"}, b.Strings(b.Has('c')))
	assert.Equal(uint(5), b.All().Count())
	id, ok := b.ID("abczz")
	require.True(t, ok)
	assert.Equal("abczz", b.Word(id))

	// All hands out a copy
	all := b.All()
	all.Clear(0)
	assert.Equal(uint(5), b.All().Count())
}

func TestFallbackList(t *testing.T) {
	words := Fallback()
	assert.GreaterOrEqual(t, len(words), 100)
	assert.Equal(t, len(words), New(words).Len())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, AnswersFile), []byte("CIGAR\nrebut\n\nsissy\nbad line\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AllowedFile), []byte("aahed\ncigar\nzzzzzz\n"), 0o644))

	b := Load(context.Background(), DataFiles(dir)...)
	assert.Equal(t, []string{"aahed", "cigar", "rebut", "sissy"}, b.Words())
}

func TestLoadPartialSources(t *testing.T) {
	b := Load(context.Background(),
		FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")},
		ReaderSource{Label: "memory", Text: "crane\nslate\n"},
	)
	assert.Equal(t, []string{"crane", "slate"}, b.Words())
}

func TestLoadFallback(t *testing.T) {
	b := Load(context.Background(), DataFiles(t.TempDir())...)
	assert.Equal(t, len(Fallback()), b.Len())

	b = Load(context.Background(), ReaderSource{Label: "junk", Text: "no\nwords\nhere!\n"})
	assert.Equal(t, len(Fallback()), b.Len())
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Load(ctx, ReaderSource{Label: "memory", Text: "crane\n"})
	assert.Equal(t, len(Fallback()), b.Len())
}

func TestRanked(t *testing.T) {
	b := New([]string{"aaaaa", "abbbb", "ccccc", "bcdef"})
	ranked := b.Ranked(2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "bcdef", ranked[0].Word)
	assert.Equal(t, "abbbb", ranked[1].Word)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)

	all := b.Ranked(0)
	require.Len(t, all, 4)
	// equal scores come out alphabetically
	assert.Equal(t, "aaaaa", all[2].Word)
	assert.Equal(t, "ccccc", all[3].Word)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("crane\nslate\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "data", AnswersFile)
	require.NoError(t, Download(context.Background(), srv.Client(), srv.URL+"/list", path, false))
	b := Load(context.Background(), FileSource{Path: path})
	assert.Equal(t, []string{"crane", "slate"}, b.Words())

	missing := filepath.Join(t.TempDir(), AllowedFile)
	assert.Error(t, Download(context.Background(), srv.Client(), srv.URL+"/missing", missing, false))
	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func listServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	requests := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/answers":
			_, _ = w.Write([]byte("cigar\nrebut\n"))
		case "/allowed":
			_, _ = w.Write([]byte("aahed\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func TestEnsureLists(t *testing.T) {
	srv, requests := listServer(t)
	dir := t.TempDir()
	lists := Lists(srv.URL+"/answers", srv.URL+"/allowed")

	fetched, err := EnsureLists(context.Background(), srv.Client(), dir, lists, false)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, []string{"aahed", "cigar", "rebut"}, Load(context.Background(), DataFiles(dir)...).Words())

	// both present, nothing to do
	fetched, err = EnsureLists(context.Background(), srv.Client(), dir, lists, false)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Equal(t, int32(2), requests.Load())

	// one missing fetches both again
	require.NoError(t, os.Remove(filepath.Join(dir, AllowedFile)))
	fetched, err = EnsureLists(context.Background(), srv.Client(), dir, lists, false)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, int32(4), requests.Load())
}

func TestEnsureListsFailureFallsBack(t *testing.T) {
	srv, _ := listServer(t)
	dir := t.TempDir()
	_, err := EnsureLists(context.Background(), srv.Client(), dir, Lists(srv.URL+"/gone", srv.URL+"/allowed"), false)
	assert.Error(t, err)
	assert.Equal(t, len(Fallback()), Load(context.Background(), DataFiles(dir)...).Len())
}

func TestListsDefaults(t *testing.T) {
	lists := Lists("", "")
	require.Len(t, lists, 2)
	assert.Equal(t, AnswersURL, lists[0].URL)
	assert.Equal(t, AllowedFile, lists[1].File)
}

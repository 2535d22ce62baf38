package wordbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

const (
	AnswersURL = "https://gist.githubusercontent.com/cfreshman/a03ef2cba789d8cf00c08f767e0fad7b/raw/wordle-answers-alphabetical.txt"
	AllowedURL = "https://gist.githubusercontent.com/cfreshman/cdcdf777450c5b5301e439061d29694c/raw/wordle-allowed-guesses.txt"
)

// Download fetches url into path. The file is written to a temporary name first and
// renamed when complete so a failed download never leaves a truncated list behind.
func Download(ctx context.Context, client *http.Client, url, path string, progress bool) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	description := "downloading " + filepath.Base(path)
	if progress {
		bar = progressbar.DefaultBytes(resp.ContentLength, description)
	} else {
		bar = progressbar.DefaultBytesSilent(resp.ContentLength, description)
	}
	n, err := io.Copy(io.MultiWriter(f, bar), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	_ = bar.Finish()
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	log.Info().Str("url", url).Str("path", path).Int64("bytes", n).Msg("downloaded word list")
	return nil
}

// List is a remote word list and the file it is kept in
type List struct {
	URL  string
	File string
}

// Lists returns the answers and allowed guesses lists, empty urls use AnswersURL and AllowedURL
func Lists(answersURL, allowedURL string) []List {
	if answersURL == "" {
		answersURL = AnswersURL
	}
	if allowedURL == "" {
		allowedURL = AllowedURL
	}
	return []List{
		{URL: answersURL, File: AnswersFile},
		{URL: allowedURL, File: AllowedFile},
	}
}

// DownloadAll fetches the default answers and allowed guesses lists into dir
func DownloadAll(ctx context.Context, client *http.Client, dir string, progress bool) error {
	return DownloadLists(ctx, client, dir, Lists("", ""), progress)
}

// DownloadLists fetches every list into dir
func DownloadLists(ctx context.Context, client *http.Client, dir string, lists []List, progress bool) error {
	for _, list := range lists {
		if err := Download(ctx, client, list.URL, filepath.Join(dir, list.File), progress); err != nil {
			return err
		}
	}
	return nil
}

// EnsureLists downloads all lists when any of them is missing from dir. It reports
// whether a download happened.
func EnsureLists(ctx context.Context, client *http.Client, dir string, lists []List, progress bool) (bool, error) {
	missing := false
	for _, list := range lists {
		if _, err := os.Stat(filepath.Join(dir, list.File)); err != nil {
			missing = true
			break
		}
	}
	if !missing {
		return false, nil
	}
	log.Info().Str("dir", dir).Msg("word lists missing, downloading")
	return true, DownloadLists(ctx, client, dir, lists, progress)
}

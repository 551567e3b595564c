// Package transcript downloads auto-generated captions with yt-dlp and
// flattens them into plain text.
package transcript

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gauthierbraillon/ytdigest/internal/sanitize"
)

const (
	defaultBinary   = "yt-dlp"
	defaultLanguage = "id"
	artifactExt     = ".srt"
)

// ErrNoTranscript is returned when no caption text could be produced for a reference.
var ErrNoTranscript = errors.New("transcript not available")

// Option configures the Fetcher.
type Option func(*Fetcher)

// WithRunner replaces the command runner (useful for testing).
func WithRunner(r Runner) Option {
	return func(f *Fetcher) { f.runner = r }
}

// WithBinary sets the yt-dlp executable path.
func WithBinary(path string) Option {
	return func(f *Fetcher) {
		if path != "" {
			f.binary = path
		}
	}
}

// WithLanguage sets the caption language code requested from yt-dlp.
func WithLanguage(lang string) Option {
	return func(f *Fetcher) {
		if lang != "" {
			f.lang = lang
		}
	}
}

// WithWorkDir sets where per-call download directories are created.
func WithWorkDir(dir string) Option {
	return func(f *Fetcher) {
		if dir != "" {
			f.workDir = dir
		}
	}
}

// WithLogger sets the logger used for cleanup and step diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// Fetcher turns a video reference into a transcript via yt-dlp.
type Fetcher struct {
	binary  string
	lang    string
	workDir string
	runner  Runner
	logger  logrus.FieldLogger
}

// NewFetcher creates a Fetcher that shells out to yt-dlp.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		binary:  defaultBinary,
		lang:    defaultLanguage,
		workDir: os.TempDir(),
		runner:  ExecRunner{},
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchTranscript resolves the video's title, downloads its auto-generated
// captions and returns them as normalized text. The downloaded file is
// removed before FetchTranscript returns, whatever the outcome.
//
// The reference is handed to yt-dlp untouched, so it may resolve to a
// different video than the id derived from it elsewhere.
func (f *Fetcher) FetchTranscript(ctx context.Context, reference string) (string, error) {
	log := f.logger.WithField("reference", reference)

	title, err := f.resolveTitle(ctx, reference)
	if err != nil {
		return "", err
	}

	a, err := f.acquire(ctx, reference, sanitize.Filename(title))
	if err != nil {
		return "", err
	}
	defer func() {
		if err := a.release(); err != nil {
			log.WithError(err).Warn("Failed to remove subtitle artifact")
		}
	}()

	data, err := os.ReadFile(a.path)
	if err != nil {
		return "", errors.Wrapf(ErrNoTranscript, "read %s: %v", filepath.Base(a.path), err)
	}

	log.WithField("artifact", filepath.Base(a.path)).Debug("Normalizing subtitle artifact")
	return NormalizeSRT(string(data)), nil
}

func (f *Fetcher) resolveTitle(ctx context.Context, reference string) (string, error) {
	out, err := f.runner.Run(ctx, f.binary, "--get-title", "--no-warnings", "--", reference)
	if err != nil {
		return "", errors.Wrapf(ErrNoTranscript, "resolve title: %v", err)
	}

	title := strings.TrimSpace(string(out))
	// Playlists print one title per entry; the first names the artifact.
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	return title, nil
}

// artifact is a downloaded subtitle file inside a directory owned by one call.
type artifact struct {
	dir  string
	path string
}

// acquire downloads captions into a fresh directory and locates the result.
// On failure nothing is left on disk.
func (f *Fetcher) acquire(ctx context.Context, reference, name string) (*artifact, error) {
	dir := filepath.Join(f.workDir, "ytdigest-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(ErrNoTranscript, "create work dir: %v", err)
	}

	a := &artifact{dir: dir}

	_, err := f.runner.Run(ctx, f.binary,
		"--write-auto-subs",
		"--sub-lang", f.lang,
		"--skip-download",
		"--convert-subs", "srt",
		"--no-warnings",
		"-o", filepath.Join(dir, name+".%(ext)s"),
		"--", reference,
	)
	if err != nil {
		_ = a.release()
		return nil, errors.Wrapf(ErrNoTranscript, "download captions: %v", err)
	}

	path, err := locate(dir, name)
	if err != nil {
		_ = a.release()
		return nil, err
	}
	a.path = path

	return a, nil
}

// release deletes the subtitle file and its directory.
func (a *artifact) release() error {
	if a.path != "" {
		if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
			_ = os.RemoveAll(a.dir)
			return errors.Wrap(err, "remove subtitle artifact")
		}
	}
	return errors.Wrap(os.RemoveAll(a.dir), "remove work dir")
}

// locate returns the first caption file for name, in lexical order.
func locate(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(ErrNoTranscript, "scan work dir: %v", err)
	}

	for _, entry := range entries {
		fn := entry.Name()
		if entry.Type().IsRegular() && strings.HasPrefix(fn, name) && strings.HasSuffix(fn, artifactExt) {
			return filepath.Join(dir, fn), nil
		}
	}
	return "", errors.Wrapf(ErrNoTranscript, "no %s captions written for %q", artifactExt, name)
}

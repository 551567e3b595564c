// Package logging builds the logrus logger shared by ytdigest components.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a text logger writing to out at the given level. When logFile
// is set, output is also appended to a rotating file. The returned closer
// releases the file and is safe to call when no file is used.
func New(out io.Writer, level, logFile string) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	logger.SetOutput(out)

	if logFile == "" {
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}
	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logger.SetOutput(io.MultiWriter(out, rotating))

	return logger, rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

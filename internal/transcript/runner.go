package transcript

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Runner executes an external command and returns its standard output.
// A non-zero exit status must be reported as an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local machine.
type ExecRunner struct{}

// Run executes name with args, attaching the tool's stderr to any failure.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- fixed binary, reference passed after "--"
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, errors.Wrapf(err, "%s: %s", name, lastLine(msg))
		}
		return out, errors.Wrap(err, name)
	}
	return out, nil
}

// lastLine keeps error messages short; yt-dlp prints its ERROR line last.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

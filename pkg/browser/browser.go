// Package browser opens the ytdigest web page in the user's default browser.
package browser

import (
	"net/url"
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// Open opens the specified URL in the default browser without waiting for it.
func Open(urlString string) error {
	cmd, err := Command(urlString, runtime.GOOS)
	if err != nil {
		return err
	}
	return errors.Wrap(cmd.Start(), "launch browser")
}

// Command builds the platform command that opens urlString. The URL must be
// absolute http or https so it is never interpreted as a flag or local file.
func Command(urlString, goos string) (*exec.Cmd, error) {
	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.Errorf("unsupported URL scheme: %s (only http and https allowed)", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, errors.Errorf("URL %q has no host", urlString)
	}

	switch goos {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", urlString), nil // #nosec G204 -- URL validated above
	case "darwin":
		return exec.Command("open", urlString), nil // #nosec G204 -- URL validated above
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", urlString), nil // #nosec G204 -- URL validated above
	default:
		return nil, errors.Errorf("unsupported platform: %s", goos)
	}
}

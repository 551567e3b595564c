// Package sanitize cleans free text coming back from external sources.
package sanitize

import (
	"regexp"
	"strings"
)

const fallbackFilename = "subtitle"

var (
	tagRE         = regexp.MustCompile(`<[^>]*>`)
	illegalFileRE = regexp.MustCompile(`[\\/*?:"<>|]`)
)

// StripTags removes every markup tag from text and trims the result.
// Entities are left encoded and inner whitespace is untouched.
func StripTags(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(tagRE.ReplaceAllString(text, ""))
}

// Filename turns a video title into a token safe to use as a file name.
func Filename(title string) string {
	name := strings.TrimSpace(illegalFileRE.ReplaceAllString(title, ""))
	// yt-dlp treats a leading dash as a flag and dots as hidden files.
	name = strings.TrimLeft(name, "-.")
	if name == "" {
		return fallbackFilename
	}
	return name
}

package transcript

import (
	"regexp"
	"strings"
)

// timingLineRE matches SRT timing cues like "00:00:01,234 --> 00:00:03,456".
// yt-dlp sometimes writes a dot instead of the comma, so both are accepted.
var timingLineRE = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}[,.]\d{3}\s*-->`)

// cueIndexRE matches the sequence number line that precedes a timing cue.
var cueIndexRE = regexp.MustCompile(`^\d+$`)

// NormalizeSRT flattens an SRT caption file into one line of plain text.
// Cue numbers and timings are dropped, and a caption line equal to the one
// kept just before it is skipped, which removes the rolling repetition of
// auto-generated captions.
func NormalizeSRT(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	kept := make([]string, 0, len(lines)/2)
	for i, line := range lines {
		line = strings.TrimSpace(line)

		if timingLineRE.MatchString(line) {
			continue
		}
		if cueIndexRE.MatchString(line) && i+1 < len(lines) && timingLineRE.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}
		if line == "" {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == line {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, " ")
}

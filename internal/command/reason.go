package command

import (
	"regexp"
	"strings"
)

// Only labeled justifications are captured. Free-floating text without a
// "motivo"/"razón"/"nota" label is intentionally ignored to avoid false
// positives.
var reasonPattern = regexp.MustCompile(`(?i)\b(?:motivo|raz[oó]n|nota)\b(?:\s+(?:de|por))?\s*:?\s*([^.;\n]+)`)

// ExtractReason pulls a labeled justification out of text, capturing up to
// a sentence terminator or the end of the string. It reports false when no
// label is present.
func ExtractReason(text string) (string, bool) {
	match := reasonPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	reason := strings.TrimSpace(match[1])
	if reason == "" {
		return "", false
	}
	return reason, true
}

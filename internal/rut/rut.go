// Package rut extracts and validates Chilean RUT identifiers from free text.
//
// A RUT consists of a numeric body of 7 or 8 digits followed by a modulus-11
// check character (a digit or 'K'). The package normalizes the many ways a
// RUT appears in writing (with thousands separators, with or without the
// dash, lower or upper case check character) into the canonical
// "BODY-CHECK" form before validating.
package rut

import (
	"regexp"
	"strings"
)

const (
	minBodyDigits = 7
	maxBodyDigits = 8
)

// Extraction patterns in priority order. Labeled occurrences win over bare
// formatted ones, which win over the lenient digit-run fallback.
var (
	labeledPattern   = regexp.MustCompile(`(?i)\b(?:rut|id|para)\s*:?\s*((?:\d{1,2}\.\d{3}\.\d{3}|\d{7,8})\s?-?\s?[\dkK])\b`)
	formattedPattern = regexp.MustCompile(`\b(\d{1,2}\.\d{3}\.\d{3}\s?-?\s?[\dkK])\b`)
	lenientPattern   = regexp.MustCompile(`\b(\d{7,8}-?[\dkK])\b`)
)

// Normalize strips separators from a raw RUT, upper-cases the check
// character, and ensures a dash precedes the final character.
func Normalize(raw string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer(".", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return ""
	}
	if !strings.Contains(cleaned, "-") && len(cleaned) >= 2 {
		cleaned = cleaned[:len(cleaned)-1] + "-" + cleaned[len(cleaned)-1:]
	}
	return cleaned
}

// CheckDigit computes the modulus-11 check character for a numeric body.
// The weights cycle 2 through 7 starting from the rightmost digit. It
// reports false when the body is not 7 or 8 digits.
func CheckDigit(body string) (byte, bool) {
	if len(body) < minBodyDigits || len(body) > maxBodyDigits {
		return 0, false
	}

	sum := 0
	weight := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		sum += int(c-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}

	switch remainder := sum % 11; remainder {
	case 0:
		return '0', true
	case 1:
		return 'K', true
	default:
		return byte('0' + (11 - remainder)), true
	}
}

// Validate reports whether a normalized RUT carries the correct check
// character for its body.
func Validate(normalized string) bool {
	body, check, ok := splitNormalized(normalized)
	if !ok {
		return false
	}
	expected, ok := CheckDigit(body)
	if !ok {
		return false
	}
	return check == expected
}

// Extract searches text for RUT candidates and returns the raw form of the
// first one whose checksum validates. Candidates that fail validation are
// skipped silently; when nothing validates it reports false.
func Extract(text string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{labeledPattern, formattedPattern, lenientPattern} {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := match[1]
			if Validate(Normalize(candidate)) {
				return candidate, true
			}
		}
	}
	return "", false
}

// Format reinserts thousands separators into a normalized RUT for display.
// Inputs that do not look like a normalized RUT are returned unchanged.
func Format(normalized string) string {
	body, check, ok := splitNormalized(normalized)
	if !ok {
		return normalized
	}

	var builder strings.Builder
	lead := len(body) % 3
	if lead > 0 {
		builder.WriteString(body[:lead])
	}
	for i := lead; i < len(body); i += 3 {
		if builder.Len() > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(body[i : i+3])
	}
	builder.WriteByte('-')
	builder.WriteByte(check)
	return builder.String()
}

func splitNormalized(normalized string) (body string, check byte, ok bool) {
	parts := strings.Split(normalized, "-")
	if len(parts) != 2 || len(parts[1]) != 1 {
		return "", 0, false
	}
	body = parts[0]
	if len(body) < minBodyDigits || len(body) > maxBodyDigits {
		return "", 0, false
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return "", 0, false
		}
	}
	check = parts[1][0]
	if check != 'K' && (check < '0' || check > '9') {
		return "", 0, false
	}
	return body, check, true
}

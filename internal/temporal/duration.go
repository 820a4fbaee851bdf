package temporal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Month durations are approximated at 30 days; the assistant deals in
// day-granular absence spans, not payroll calendars.
const daysPerMonth = 30

var (
	dayCountPattern   = regexp.MustCompile(`\b(?:(?:por|durante)\s+)?(\d+)\s*d[ií]as?\b`)
	weekCountPattern  = regexp.MustCompile(`\b(?:(?:por|durante)\s+)?(una?|\d+)\s*semanas?\b`)
	monthCountPattern = regexp.MustCompile(`\b(?:(?:por|durante)\s+)?(una?|\d+)\s*mes(?:es)?\b`)
)

// ExtractDays pulls a day count out of a duration phrase: "por 5 días",
// "durante 2 semanas", "por un mes". It reports false when text carries no
// duration.
func ExtractDays(text string) (int, bool) {
	lowered := strings.ToLower(text)

	if match := dayCountPattern.FindStringSubmatch(lowered); match != nil {
		if days := atoi(match[1]); days > 0 {
			return days, true
		}
	}

	if match := weekCountPattern.FindStringSubmatch(lowered); match != nil {
		if weeks := countFromWord(match[1]); weeks > 0 {
			return weeks * 7, true
		}
	}

	if match := monthCountPattern.FindStringSubmatch(lowered); match != nil {
		if months := countFromWord(match[1]); months > 0 {
			return months * daysPerMonth, true
		}
	}

	return 0, false
}

// ComputeEndDate returns the last day covered by a span of days beginning
// at start. The duration is inclusive of the start day, so one day ends on
// start itself.
func ComputeEndDate(start time.Time, days int) time.Time {
	if days < 1 {
		days = 1
	}
	return start.AddDate(0, 0, days-1)
}

// FormatDuration renders a day count for display. Purely presentational.
func FormatDuration(days int) string {
	switch {
	case days <= 1:
		return "1 día"
	case days == 7:
		return "1 semana"
	case days%7 == 0:
		return fmt.Sprintf("%d semanas", days/7)
	case days == daysPerMonth:
		return "1 mes aprox."
	default:
		return fmt.Sprintf("%d días", days)
	}
}

func countFromWord(word string) int {
	if word == "un" || word == "una" {
		return 1
	}
	return atoi(word)
}

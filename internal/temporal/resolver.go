// Package temporal resolves Spanish date and time expressions against an
// explicit reference instant.
//
// Natural language about dates is ambiguous, so every resolver applies a
// fixed precedence: relative literals, qualified weekdays, bare weekdays,
// ISO literals, month-name dates, then numeric forms. The first strategy
// that matches wins and later ones are never consulted, which keeps the
// behavior deterministic and testable. The reference "now" is always a
// parameter; nothing in this package reads the wall clock.
package temporal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DayLayout is the calendar-date form used across the assistant.
const DayLayout = "2006-01-02"

// Range holds a resolved date span. End is nil when the expression left the
// span open ("desde el lunes" with no closing date).
type Range struct {
	Start time.Time
	End   *time.Time
}

var weekdayNames = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"sabado":    time.Saturday,
}

var monthNames = map[string]time.Month{
	"enero": time.January, "ene": time.January,
	"febrero": time.February, "feb": time.February,
	"marzo": time.March, "mar": time.March,
	"abril": time.April, "abr": time.April,
	"mayo": time.May, "may": time.May,
	"junio": time.June, "jun": time.June,
	"julio": time.July, "jul": time.July,
	"agosto": time.August, "ago": time.August,
	"septiembre": time.September, "setiembre": time.September, "sep": time.September, "sept": time.September, "set": time.September,
	"octubre": time.October, "oct": time.October,
	"noviembre": time.November, "nov": time.November,
	"diciembre": time.December, "dic": time.December,
}

const weekdayAlternation = `lunes|martes|miércoles|miercoles|jueves|viernes|sábado|sabado|domingo`

var (
	dayAfterTomorrowPattern = regexp.MustCompile(`\bpasado\s+mañana\b`)
	tomorrowPattern         = regexp.MustCompile(`\bmañana\b`)
	todayPattern            = regexp.MustCompile(`\bhoy\b`)
	nextWeekdayPattern      = regexp.MustCompile(`\b(?:pr[oó]xim[oa])\s+(` + weekdayAlternation + `)\b`)
	thisWeekdayPattern      = regexp.MustCompile(`\b(?:est[ea]\s+|el\s+|la\s+)?(` + weekdayAlternation + `)\b`)
	isoDatePattern          = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	monthNamePattern        = regexp.MustCompile(`\b(\d{1,2})\s+de\s+([a-záéíóúñ]+)(?:\s+de(?:l)?\s+(\d{4}))?\b`)
	slashDatePattern        = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	shortSlashDatePattern   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

	fromUntilPattern  = regexp.MustCompile(`(?i)\bdesde\s+(.+?)\s+hasta\s+(.+)$`)
	fromToPattern     = regexp.MustCompile(`(?i)\bdel?\s+(.+?)\s+(?:al|hasta\s+el)\s+(.+)$`)
	fromOpenPattern   = regexp.MustCompile(`(?i)\bdesde\s+(.+)$`)
	singleDayPattern  = regexp.MustCompile(`(?i)\bel\s+(.+)$`)
	clockTimePattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	spokenHourPattern = regexp.MustCompile(`\ba\s+las?\s+(\d{1,2})(?:\s*(?:hrs?\.?|horas?))?\b`)
	hourSpanPattern   = regexp.MustCompile(`\bde\s+las?\s+(\d{1,2})(?::(\d{2}))?\s+a\s+las?\s+(\d{1,2})(?::(\d{2}))?\b`)
)

// ResolveDate finds the first date expression in text and resolves it
// against now. It reports false when no strategy matches.
func ResolveDate(text string, now time.Time) (time.Time, bool) {
	lowered := strings.ToLower(text)
	today := truncateToDay(now)

	if dayAfterTomorrowPattern.MatchString(lowered) {
		return today.AddDate(0, 0, 2), true
	}
	if tomorrowPattern.MatchString(lowered) {
		return today.AddDate(0, 0, 1), true
	}
	if todayPattern.MatchString(lowered) {
		return today, true
	}

	if match := nextWeekdayPattern.FindStringSubmatch(lowered); match != nil {
		target := weekdayNames[match[1]]
		ahead := int(target-today.Weekday()+7) % 7
		// "próximo lunes" said on a Monday means the following week.
		if ahead < 1 {
			ahead += 7
		}
		return today.AddDate(0, 0, ahead), true
	}

	if match := thisWeekdayPattern.FindStringSubmatch(lowered); match != nil {
		target := weekdayNames[match[1]]
		ahead := int(target-today.Weekday()+7) % 7
		return today.AddDate(0, 0, ahead), true
	}

	if match := isoDatePattern.FindStringSubmatch(lowered); match != nil {
		if date, ok := buildDate(atoi(match[1]), time.Month(atoi(match[2])), atoi(match[3]), now.Location()); ok {
			return date, true
		}
	}

	if match := monthNamePattern.FindStringSubmatch(lowered); match != nil {
		if month, ok := monthNames[match[2]]; ok {
			year := today.Year()
			explicitYear := match[3] != ""
			if explicitYear {
				year = atoi(match[3])
			}
			if date, ok := buildDate(year, month, atoi(match[1]), now.Location()); ok {
				if !explicitYear && date.Before(today) {
					date = date.AddDate(1, 0, 0)
				}
				return date, true
			}
		}
	}

	if match := slashDatePattern.FindStringSubmatch(lowered); match != nil {
		year := atoi(match[3])
		if year < 100 {
			year += 2000
		}
		if date, ok := buildDate(year, time.Month(atoi(match[2])), atoi(match[1]), now.Location()); ok {
			return date, true
		}
	}

	if match := shortSlashDatePattern.FindStringSubmatch(lowered); match != nil {
		if date, ok := buildDate(today.Year(), time.Month(atoi(match[2])), atoi(match[1]), now.Location()); ok {
			if date.Before(today) {
				date = date.AddDate(1, 0, 0)
			}
			return date, true
		}
	}

	return time.Time{}, false
}

// ResolveRange resolves a date span from text. Strategies are tried in
// order: "desde X hasta Y", "del X al Y", "desde X" (open end), "el X"
// (single day), and finally a bare ResolveDate over the whole text with a
// nil end.
func ResolveRange(text string, now time.Time) (Range, bool) {
	if match := fromUntilPattern.FindStringSubmatch(text); match != nil {
		start, okStart := ResolveDate(match[1], now)
		end, okEnd := ResolveDate(match[2], now)
		if okStart && okEnd {
			return Range{Start: start, End: &end}, true
		}
	}

	if match := fromToPattern.FindStringSubmatch(text); match != nil {
		start, okStart := ResolveDate(match[1], now)
		end, okEnd := ResolveDate(match[2], now)
		if okStart && okEnd {
			return Range{Start: start, End: &end}, true
		}
	}

	if match := fromOpenPattern.FindStringSubmatch(text); match != nil {
		if start, ok := ResolveDate(match[1], now); ok {
			return Range{Start: start}, true
		}
	}

	if match := singleDayPattern.FindStringSubmatch(text); match != nil {
		if start, ok := ResolveDate(match[1], now); ok {
			end := start
			return Range{Start: start, End: &end}, true
		}
	}

	if start, ok := ResolveDate(text, now); ok {
		return Range{Start: start}, true
	}

	return Range{}, false
}

// ResolveTime finds the first time expression in text and returns it as
// "HH:MM". Explicit clock tokens win over spoken "a las H" phrases, whose
// minutes default to zero.
func ResolveTime(text string) (string, bool) {
	lowered := strings.ToLower(text)

	for _, match := range clockTimePattern.FindAllStringSubmatch(lowered, -1) {
		if formatted, ok := formatClock(atoi(match[1]), atoi(match[2])); ok {
			return formatted, true
		}
	}

	if match := spokenHourPattern.FindStringSubmatch(lowered); match != nil {
		if formatted, ok := formatClock(atoi(match[1]), 0); ok {
			return formatted, true
		}
	}

	return "", false
}

// ResolveTimeRange mirrors the date-range strategy for times: an explicit
// "de las H a las H" span, then two clock tokens, then a single time with
// an empty end.
func ResolveTimeRange(text string) (start, end string, ok bool) {
	lowered := strings.ToLower(text)

	if match := hourSpanPattern.FindStringSubmatch(lowered); match != nil {
		from, okFrom := formatClock(atoi(match[1]), atoiOrZero(match[2]))
		to, okTo := formatClock(atoi(match[3]), atoiOrZero(match[4]))
		if okFrom && okTo {
			return from, to, true
		}
	}

	matches := clockTimePattern.FindAllStringSubmatch(lowered, -1)
	valid := make([]string, 0, len(matches))
	for _, match := range matches {
		if formatted, clockOK := formatClock(atoi(match[1]), atoi(match[2])); clockOK {
			valid = append(valid, formatted)
		}
	}
	if len(valid) >= 2 {
		return valid[0], valid[1], true
	}

	if single, found := ResolveTime(text); found {
		return single, "", true
	}

	return "", "", false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func buildDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != month || date.Year() != year {
		return time.Time{}, false
	}
	return date, true
}

func formatClock(hour, minute int) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func atoi(s string) int {
	value := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		value = value*10 + int(s[i]-'0')
	}
	return value
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	return atoi(s)
}

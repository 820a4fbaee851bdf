package command

import (
	"time"

	"github.com/example/hr-assistant/internal/rut"
	"github.com/example/hr-assistant/internal/temporal"
)

// Parse-level problem messages. These are accumulated as data, never
// returned as Go errors; the HTTP layer localizes them for display.
const (
	errNoIdentifier     = "no valid identifier found"
	errNoStartDate      = "no start date found"
	errEndBeforeStart   = "end date is before start date"
	errEmptyCommandText = "command text is empty"
)

// ParsedCommand is the immutable result of one parse call. Date fields use
// the YYYY-MM-DD form, time fields HH:MM; empty strings mean the field
// could not be resolved. Errors is non-empty whenever a field the detected
// category needs was left unresolved.
type ParsedCommand struct {
	Category      Category
	Confidence    float64
	RawIdentifier string
	Identifier    string
	StartDate     string
	EndDate       string
	StartTime     string
	EndTime       string
	DurationDays  int
	Reason        string
	RawText       string
	Errors        []string
}

// Parser combines the classifier and the extraction resolvers into one
// deterministic pipeline.
type Parser struct {
	classifier *Classifier
}

// NewParser wires a parser over the given classifier. A nil classifier
// falls back to the default pattern table.
func NewParser(classifier *Classifier) *Parser {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Parser{classifier: classifier}
}

// Parse turns text into a ParsedCommand against the supplied reference
// instant. The function is pure: identical (text, now) arguments always
// yield identical results, and every failure is encoded in Errors.
func (p *Parser) Parse(text string, now time.Time) ParsedCommand {
	parsed := ParsedCommand{RawText: text, Category: CategoryUnknown}

	if len(text) == 0 {
		parsed.Errors = append(parsed.Errors, errEmptyCommandText)
		return parsed
	}

	classification := p.classifier.Classify(text)
	parsed.Category = classification.Category
	parsed.Confidence = classification.Confidence

	if raw, ok := rut.Extract(text); ok {
		parsed.RawIdentifier = raw
		parsed.Identifier = rut.Normalize(raw)
	} else if parsed.Category != CategoryUnknown {
		parsed.Errors = append(parsed.Errors, errNoIdentifier)
	}

	if dateRange, ok := temporal.ResolveRange(text, now); ok {
		parsed.StartDate = dateRange.Start.Format(temporal.DayLayout)
		if dateRange.End != nil {
			end := dateRange.End.Format(temporal.DayLayout)
			if end < parsed.StartDate {
				parsed.Errors = append(parsed.Errors, errEndBeforeStart)
			} else {
				parsed.EndDate = end
			}
		}
	} else if parsed.Category != CategoryUnknown {
		parsed.Errors = append(parsed.Errors, errNoStartDate)
	}

	if days, ok := temporal.ExtractDays(text); ok {
		parsed.DurationDays = days
	}

	if parsed.StartDate != "" && parsed.EndDate == "" {
		if parsed.DurationDays > 0 {
			start, err := time.Parse(temporal.DayLayout, parsed.StartDate)
			if err == nil {
				parsed.EndDate = temporal.ComputeEndDate(start, parsed.DurationDays).Format(temporal.DayLayout)
			}
		} else {
			// Single-day default: a lone start date covers exactly that day.
			parsed.EndDate = parsed.StartDate
		}
	}

	if start, end, ok := temporal.ResolveTimeRange(text); ok {
		parsed.StartTime = start
		parsed.EndTime = end
	}

	if reason, ok := ExtractReason(text); ok {
		parsed.Reason = reason
	}

	return parsed
}

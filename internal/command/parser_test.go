package command

import (
	"testing"
	"time"
)

// A Wednesday reference keeps relative phrases deterministic.
var parseNow = time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)

func containsMessage(messages []string, target string) bool {
	for _, msg := range messages {
		if msg == target {
			return true
		}
	}
	return false
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	parser := NewParser(nil)

	t.Run("full vacation command with duration", func(t *testing.T) {
		parsed := parser.Parse("Registrar vacaciones para 12.345.678-5 desde el 19 de enero por 5 días", parseNow)

		if parsed.Category != CategoryVacation {
			t.Fatalf("unexpected category %s", parsed.Category)
		}
		if parsed.Identifier != "12345678-5" {
			t.Fatalf("unexpected identifier %q", parsed.Identifier)
		}
		if parsed.RawIdentifier != "12.345.678-5" {
			t.Fatalf("unexpected raw identifier %q", parsed.RawIdentifier)
		}
		if parsed.StartDate != "2026-01-19" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
		if parsed.EndDate != "2026-01-23" {
			t.Fatalf("duration should infer the end date, got %q", parsed.EndDate)
		}
		if parsed.DurationDays != 5 {
			t.Fatalf("unexpected duration %d", parsed.DurationDays)
		}
		if len(parsed.Errors) != 0 {
			t.Fatalf("expected no errors, got %v", parsed.Errors)
		}
	})

	t.Run("explicit range with reason", func(t *testing.T) {
		parsed := parser.Parse("Licencia médica para rut 18866264-1 del 2 de febrero al 6 de febrero, motivo: cirugía", parseNow)

		if parsed.Category != CategoryMedicalLeave {
			t.Fatalf("unexpected category %s", parsed.Category)
		}
		if parsed.Identifier != "18866264-1" {
			t.Fatalf("unexpected identifier %q", parsed.Identifier)
		}
		if parsed.StartDate != "2026-02-02" || parsed.EndDate != "2026-02-06" {
			t.Fatalf("unexpected range %q..%q", parsed.StartDate, parsed.EndDate)
		}
		if parsed.Reason != "cirugía" {
			t.Fatalf("unexpected reason %q", parsed.Reason)
		}
		if len(parsed.Errors) != 0 {
			t.Fatalf("expected no errors, got %v", parsed.Errors)
		}
	})

	t.Run("single date defaults to a one day span", func(t *testing.T) {
		parsed := parser.Parse("Permiso para 7654321-6 el 19 de enero", parseNow)

		if parsed.StartDate != "2026-01-19" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
		if parsed.EndDate != parsed.StartDate {
			t.Fatalf("expected single day span, got end %q", parsed.EndDate)
		}
	})

	t.Run("late arrival with relative date and time", func(t *testing.T) {
		parsed := parser.Parse("Autorizar atraso para 12345678-5 mañana a las 9:30", parseNow)

		if parsed.Category != CategoryLateArrival {
			t.Fatalf("unexpected category %s", parsed.Category)
		}
		if parsed.StartDate != "2026-01-15" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
		if parsed.StartTime != "09:30" || parsed.EndTime != "" {
			t.Fatalf("unexpected times %q-%q", parsed.StartTime, parsed.EndTime)
		}
	})

	t.Run("permission with time span", func(t *testing.T) {
		parsed := parser.Parse("Permiso para 12345678-5 hoy de las 10 a las 12", parseNow)

		if parsed.StartTime != "10:00" || parsed.EndTime != "12:00" {
			t.Fatalf("unexpected times %q-%q", parsed.StartTime, parsed.EndTime)
		}
		if parsed.StartDate != "2026-01-14" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
	})

	t.Run("missing identifier is recorded as a problem", func(t *testing.T) {
		parsed := parser.Parse("Registrar vacaciones desde el 19 de enero", parseNow)

		if parsed.Identifier != "" {
			t.Fatalf("unexpected identifier %q", parsed.Identifier)
		}
		if !containsMessage(parsed.Errors, "no valid identifier found") {
			t.Fatalf("expected identifier problem, got %v", parsed.Errors)
		}
	})

	t.Run("missing date is recorded as a problem", func(t *testing.T) {
		parsed := parser.Parse("Registrar vacaciones para 12345678-5", parseNow)

		if parsed.StartDate != "" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
		if !containsMessage(parsed.Errors, "no start date found") {
			t.Fatalf("expected date problem, got %v", parsed.Errors)
		}
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		parsed := parser.Parse("Vacaciones para 12345678-5 del 10 de marzo al 5 de marzo", parseNow)

		if !containsMessage(parsed.Errors, "end date is before start date") {
			t.Fatalf("expected ordering problem, got %v", parsed.Errors)
		}
		if parsed.StartDate != "2026-03-10" {
			t.Fatalf("unexpected start date %q", parsed.StartDate)
		}
	})

	t.Run("unknown category skips field requirements", func(t *testing.T) {
		parsed := parser.Parse("hola, ¿cómo va todo?", parseNow)

		if parsed.Category != CategoryUnknown {
			t.Fatalf("unexpected category %s", parsed.Category)
		}
		if len(parsed.Errors) != 0 {
			t.Fatalf("unknown commands accumulate no parse problems, got %v", parsed.Errors)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		parsed := parser.Parse("", parseNow)

		if parsed.Category != CategoryUnknown {
			t.Fatalf("unexpected category %s", parsed.Category)
		}
		if !containsMessage(parsed.Errors, "command text is empty") {
			t.Fatalf("expected empty text problem, got %v", parsed.Errors)
		}
	})

	t.Run("is deterministic for identical input", func(t *testing.T) {
		text := "Registrar vacaciones para 12.345.678-5 desde el 19 de enero por 5 días"
		first := parser.Parse(text, parseNow)
		second := parser.Parse(text, parseNow)

		if first.StartDate != second.StartDate || first.EndDate != second.EndDate || first.Identifier != second.Identifier {
			t.Fatalf("parse results differ: %#v vs %#v", first, second)
		}
	})
}

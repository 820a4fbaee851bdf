package command

import (
	"strings"
	"testing"
)

func validParsed() ParsedCommand {
	return ParsedCommand{
		Category:   CategoryVacation,
		Identifier: "12345678-5",
		StartDate:  "2026-01-19",
		EndDate:    "2026-01-23",
	}
}

func activePerson() *ResolvedPerson {
	return &ResolvedPerson{
		ID:         "person-1",
		Identifier: "12345678-5",
		FullName:   "María Soto",
		Role:       "analista",
		Status:     StatusActive,
	}
}

func TestBuildPreview(t *testing.T) {
	t.Parallel()

	t.Run("valid command with active person can execute", func(t *testing.T) {
		preview := BuildPreview(validParsed(), activePerson())

		if !preview.CanExecute {
			t.Fatalf("expected executable preview: %#v", preview)
		}
		if preview.PersonNotFound {
			t.Fatal("person was resolved, PersonNotFound must be false")
		}
		if preview.TargetCollection != "vacations" {
			t.Fatalf("unexpected target collection %q", preview.TargetCollection)
		}
		if len(preview.Warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", preview.Warnings)
		}
	})

	t.Run("unresolved identifier marks person not found", func(t *testing.T) {
		preview := BuildPreview(validParsed(), nil)

		if !preview.PersonNotFound {
			t.Fatal("expected PersonNotFound")
		}
		if preview.CanExecute {
			t.Fatal("a missing person must block execution")
		}
	})

	t.Run("no identifier means nothing to look up", func(t *testing.T) {
		parsed := validParsed()
		parsed.Identifier = ""
		preview := BuildPreview(parsed, nil)

		if preview.PersonNotFound {
			t.Fatal("PersonNotFound only applies to resolved identifiers")
		}
		if preview.CanExecute {
			t.Fatal("missing identifier must block execution")
		}
	})

	t.Run("inactive person blocks execution with a warning", func(t *testing.T) {
		for _, status := range []string{StatusInactive, StatusTerminated, "Desvinculado", "INACTIVO"} {
			person := activePerson()
			person.Status = status
			preview := BuildPreview(validParsed(), person)

			if preview.CanExecute {
				t.Errorf("status %q must block execution", status)
			}
			found := false
			for _, warning := range preview.Warnings {
				if warning == "person is terminated or inactive" {
					found = true
				}
			}
			if !found {
				t.Errorf("status %q expected inactivity warning, got %v", status, preview.Warnings)
			}
		}
	})

	t.Run("invalid command blocks execution even with a person", func(t *testing.T) {
		parsed := validParsed()
		parsed.StartDate = ""
		preview := BuildPreview(parsed, activePerson())

		if preview.CanExecute {
			t.Fatal("validation failure must block execution")
		}
	})

	t.Run("unknown category has no target collection", func(t *testing.T) {
		parsed := ParsedCommand{Category: CategoryUnknown}
		preview := BuildPreview(parsed, nil)

		if preview.TargetCollection != "" {
			t.Fatalf("unexpected target collection %q", preview.TargetCollection)
		}
		if preview.CanExecute {
			t.Fatal("unknown commands can never execute")
		}
	})
}

func TestBuildPreview_ActionDescription(t *testing.T) {
	t.Parallel()

	t.Run("ranged vacation for a named person", func(t *testing.T) {
		preview := BuildPreview(validParsed(), activePerson())
		want := "Vacaciones para María Soto del 2026-01-19 al 2026-01-23"
		if preview.ActionDescription != want {
			t.Fatalf("unexpected description %q", preview.ActionDescription)
		}
	})

	t.Run("falls back to the identifier without a person", func(t *testing.T) {
		preview := BuildPreview(validParsed(), nil)
		if !strings.Contains(preview.ActionDescription, "para 12345678-5") {
			t.Fatalf("expected identifier in description, got %q", preview.ActionDescription)
		}
	})

	t.Run("single day with time and reason", func(t *testing.T) {
		parsed := ParsedCommand{
			Category:   CategoryLateArrival,
			Identifier: "12345678-5",
			StartDate:  "2026-01-15",
			EndDate:    "2026-01-15",
			StartTime:  "09:30",
			Reason:     "trámite médico",
		}
		preview := BuildPreview(parsed, activePerson())
		want := "Autorización de llegada tardía para María Soto el 2026-01-15 a las 09:30 (motivo: trámite médico)"
		if preview.ActionDescription != want {
			t.Fatalf("unexpected description %q", preview.ActionDescription)
		}
	})

	t.Run("time span rendering", func(t *testing.T) {
		parsed := ParsedCommand{
			Category:   CategoryPermission,
			Identifier: "12345678-5",
			StartDate:  "2026-01-14",
			EndDate:    "2026-01-14",
			StartTime:  "10:00",
			EndTime:    "12:00",
		}
		preview := BuildPreview(parsed, activePerson())
		if !strings.Contains(preview.ActionDescription, "de 10:00 a 12:00") {
			t.Fatalf("expected time span in description, got %q", preview.ActionDescription)
		}
	})
}

package command

import (
	"fmt"
	"strings"
)

// Person status values understood by the preview gate.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// ResolvedPerson is the directory record matched to a validated
// identifier. The pipeline only reads it; the person directory owns its
// lifecycle.
type ResolvedPerson struct {
	ID         string
	Identifier string
	FullName   string
	Role       string
	Status     string
}

// Preview warning messages, localized by the HTTP layer.
const (
	warnPersonInactive = "person is terminated or inactive"
)

// CommandPreview is the final decision artifact. CanExecute is the single
// authoritative execution gate; no other component may authorize dispatch.
type CommandPreview struct {
	Command           ParsedCommand
	Person            *ResolvedPerson
	PersonNotFound    bool
	ActionDescription string
	TargetCollection  string
	Warnings          []string
	CanExecute        bool
}

// BuildPreview merges a parsed command with an externally resolved person
// into an execution decision. A nil person with a resolved identifier marks
// PersonNotFound; a terminated or inactive person blocks execution and adds
// a warning.
func BuildPreview(parsed ParsedCommand, person *ResolvedPerson) CommandPreview {
	preview := CommandPreview{
		Command:          parsed,
		Person:           person,
		PersonNotFound:   parsed.Identifier != "" && person == nil,
		TargetCollection: parsed.Category.TargetCollection(),
	}

	inactive := person != nil && isInactiveStatus(person.Status)
	if inactive {
		preview.Warnings = append(preview.Warnings, warnPersonInactive)
	}

	preview.ActionDescription = describeAction(parsed, person)
	preview.CanExecute = Validate(parsed).IsValid && person != nil && !inactive

	return preview
}

func isInactiveStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusInactive, StatusTerminated, "desvinculado", "inactivo":
		return true
	}
	return false
}

// describeAction builds the Spanish one-line summary shown to the operator
// before confirming execution.
func describeAction(parsed ParsedCommand, person *ResolvedPerson) string {
	var builder strings.Builder
	builder.WriteString(parsed.Category.Label())

	switch {
	case person != nil && person.FullName != "":
		fmt.Fprintf(&builder, " para %s", person.FullName)
	case parsed.Identifier != "":
		fmt.Fprintf(&builder, " para %s", parsed.Identifier)
	}

	switch {
	case parsed.StartDate != "" && parsed.EndDate != "" && parsed.EndDate != parsed.StartDate:
		fmt.Fprintf(&builder, " del %s al %s", parsed.StartDate, parsed.EndDate)
	case parsed.StartDate != "":
		fmt.Fprintf(&builder, " el %s", parsed.StartDate)
	}

	if parsed.StartTime != "" {
		if parsed.EndTime != "" {
			fmt.Fprintf(&builder, " de %s a %s", parsed.StartTime, parsed.EndTime)
		} else {
			fmt.Fprintf(&builder, " a las %s", parsed.StartTime)
		}
	}

	if parsed.Reason != "" {
		fmt.Fprintf(&builder, " (motivo: %s)", parsed.Reason)
	}

	return builder.String()
}

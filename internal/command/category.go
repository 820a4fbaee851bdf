// Package command turns free-form Spanish HR instructions into structured,
// validated commands.
//
// The pipeline is deterministic: an ordered pattern table classifies the
// intent, dedicated resolvers pull out the identifier, dates, times,
// duration, and reason, and validation rules decide whether the result is
// complete enough to execute. Every failure is accumulated as data in the
// parsed command; nothing in this package performs I/O or panics on bad
// input.
package command

// Category identifies the administrative action a command requests. The set
// is closed; CategoryUnknown is the zero-confidence default.
type Category string

const (
	// CategoryVacation registers annual leave.
	CategoryVacation Category = "vacation"
	// CategoryMedicalLeave registers a medical leave.
	CategoryMedicalLeave Category = "medical_leave"
	// CategoryPermission registers a general permission or administrative day.
	CategoryPermission Category = "permission"
	// CategoryLateArrival authorizes a late arrival.
	CategoryLateArrival Category = "late_arrival_auth"
	// CategoryEarlyDeparture authorizes an early departure.
	CategoryEarlyDeparture Category = "early_departure_auth"
	// CategoryDaySwap registers a worked-day swap.
	CategoryDaySwap Category = "day_swap"
	// CategoryNoClockIn records a missed clock-in.
	CategoryNoClockIn Category = "no_clock_in"
	// CategoryNoCredential records a forgotten or lost credential.
	CategoryNoCredential Category = "no_credential"
	// CategoryUnknown is returned when no pattern matches.
	CategoryUnknown Category = "unknown"
)

// Categories enumerates every concrete (non-unknown) category.
func Categories() []Category {
	return []Category{
		CategoryVacation,
		CategoryMedicalLeave,
		CategoryPermission,
		CategoryLateArrival,
		CategoryEarlyDeparture,
		CategoryDaySwap,
		CategoryNoClockIn,
		CategoryNoCredential,
	}
}

// Label returns the Spanish display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryVacation:
		return "Vacaciones"
	case CategoryMedicalLeave:
		return "Licencia médica"
	case CategoryPermission:
		return "Permiso"
	case CategoryLateArrival:
		return "Autorización de llegada tardía"
	case CategoryEarlyDeparture:
		return "Autorización de salida anticipada"
	case CategoryDaySwap:
		return "Cambio de día"
	case CategoryNoClockIn:
		return "Sin marcación"
	case CategoryNoCredential:
		return "Sin credencial"
	default:
		return "Comando no reconocido"
	}
}

// TargetCollection names the record collection an executed command writes
// to. Unknown commands have no target.
func (c Category) TargetCollection() string {
	switch c {
	case CategoryVacation:
		return "vacations"
	case CategoryMedicalLeave:
		return "medical_leaves"
	case CategoryPermission:
		return "permissions"
	case CategoryLateArrival:
		return "late_arrivals"
	case CategoryEarlyDeparture:
		return "early_departures"
	case CategoryDaySwap:
		return "day_swaps"
	case CategoryNoClockIn:
		return "missing_clock_ins"
	case CategoryNoCredential:
		return "missing_credentials"
	default:
		return ""
	}
}

// RequiresTime reports whether validation demands an explicit start time.
func (c Category) RequiresTime() bool {
	return c == CategoryLateArrival || c == CategoryEarlyDeparture
}

// RequiresEndDate reports whether validation demands an end date or an
// inferable duration.
func (c Category) RequiresEndDate() bool {
	return c == CategoryVacation || c == CategoryMedicalLeave
}

package command

// Validation problem messages, localized by the HTTP layer.
const (
	errCategoryUnknown     = "category not recognized"
	errIdentifierRequired  = "valid identifier required"
	errStartDateRequired   = "start date required"
	errEndOrDurationNeeded = "end date or duration required"
	errTimeRequired        = "time required"
)

// ValidationResult is derived from a ParsedCommand and never persisted.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate applies the per-category required-field rules on top of the
// problems already accumulated during parsing. IsValid is true iff the
// combined list is empty.
func Validate(parsed ParsedCommand) ValidationResult {
	errs := make([]string, 0, len(parsed.Errors)+3)
	errs = append(errs, parsed.Errors...)

	if parsed.Category == CategoryUnknown {
		errs = append(errs, errCategoryUnknown)
	}
	if parsed.Identifier == "" {
		errs = append(errs, errIdentifierRequired)
	}
	if parsed.StartDate == "" {
		errs = append(errs, errStartDateRequired)
	}
	if parsed.Category.RequiresEndDate() && parsed.EndDate == "" {
		errs = append(errs, errEndOrDurationNeeded)
	}
	if parsed.Category.RequiresTime() && parsed.StartTime == "" {
		errs = append(errs, errTimeRequired)
	}

	if len(errs) == 0 {
		return ValidationResult{IsValid: true}
	}
	return ValidationResult{Errors: errs}
}

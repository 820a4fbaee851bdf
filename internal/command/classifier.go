package command

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// IntentPattern binds a category to the lower-cased text fragments that
// signal it. Priority is a tie-break between overlapping vocabularies, not
// a probability: "permiso" inside a sentence about vacations loses to the
// vacation patterns because vacation carries the higher priority.
type IntentPattern struct {
	Category Category
	Patterns []string
	Priority int
}

// DefaultIntentPatterns returns the standard pattern table. Callers may
// supply their own table to NewClassifier; the table is data, and
// reordering it changes behavior without touching the algorithm.
func DefaultIntentPatterns() []IntentPattern {
	return []IntentPattern{
		{Category: CategoryVacation, Priority: 10, Patterns: []string{
			"vacaciones", "vacación", "vacacion", "feriado legal",
		}},
		{Category: CategoryMedicalLeave, Priority: 10, Patterns: []string{
			"licencia médica", "licencia medica", "licencia",
		}},
		{Category: CategoryPermission, Priority: 9, Patterns: []string{
			"permiso", "día administrativo", "dia administrativo",
		}},
		{Category: CategoryLateArrival, Priority: 8, Patterns: []string{
			"llegada tardía", "llegada tardia", "llega tarde", "llegará tarde",
			"llegara tarde", "autorizar atraso", "atraso autorizado",
		}},
		{Category: CategoryEarlyDeparture, Priority: 8, Patterns: []string{
			"salida anticipada", "retiro anticipado", "se retira antes",
			"salir temprano", "sale temprano",
		}},
		{Category: CategoryDaySwap, Priority: 7, Patterns: []string{
			"cambio de día", "cambio de dia", "cambiar día", "cambiar dia",
			"intercambio de día", "intercambio de dia",
		}},
		{Category: CategoryNoClockIn, Priority: 6, Patterns: []string{
			"sin marcación", "sin marcacion", "no marcó", "no marco",
			"olvidó marcar", "olvido marcar",
		}},
		{Category: CategoryNoCredential, Priority: 5, Patterns: []string{
			"sin credencial", "olvidó credencial", "olvido credencial",
			"perdió credencial", "perdio credencial",
		}},
	}
}

// Classification pairs the matched category with an informational
// confidence score. Confidence never gates validity.
type Classification struct {
	Category   Category
	Confidence float64
}

// Classifier matches text against a priority-ordered pattern table.
type Classifier struct {
	patterns []IntentPattern
}

// NewClassifier builds a classifier over the supplied table, falling back
// to DefaultIntentPatterns when table is nil. The table is copied and
// stably sorted by descending priority once; classification itself never
// mutates state, so a Classifier is safe for concurrent use.
func NewClassifier(table []IntentPattern) *Classifier {
	if table == nil {
		table = DefaultIntentPatterns()
	}
	ordered := make([]IntentPattern, len(table))
	copy(ordered, table)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	return &Classifier{patterns: ordered}
}

// Classify returns the first pattern match in descending priority order.
// Within a category, patterns are tried in declaration order. No match
// yields CategoryUnknown with zero confidence.
func (c *Classifier) Classify(text string) Classification {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return Classification{Category: CategoryUnknown}
	}

	for _, entry := range c.patterns {
		for _, pattern := range entry.Patterns {
			if strings.Contains(lowered, pattern) {
				return Classification{
					Category:   entry.Category,
					Confidence: confidenceFor(pattern, lowered),
				}
			}
		}
	}

	return Classification{Category: CategoryUnknown}
}

// confidenceFor rewards matches that consume more of the input. The floor
// of 0.9 reflects that any table hit is already a strong signal.
func confidenceFor(pattern, text string) float64 {
	matchLen := float64(utf8.RuneCountInString(pattern))
	textLen := float64(utf8.RuneCountInString(text))
	if textLen == 0 {
		return 0
	}
	confidence := 0.9 + (matchLen/textLen)*0.1
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

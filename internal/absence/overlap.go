// Package absence provides overlap detection between a requested absence
// span and the spans already recorded for a person.
package absence

// Record is the minimal view of a stored absence needed for overlap
// checks. Dates use the YYYY-MM-DD form; an empty EndDate means the record
// covers only its start day.
type Record struct {
	ID        string
	PersonID  string
	Category  string
	StartDate string
	EndDate   string
}

// Overlap details an existing record that intersects the candidate span.
// Callers surface these as non-blocking warnings.
type Overlap struct {
	WithRecordID string
	Category     string
	StartDate    string
	EndDate      string
}

// DetectOverlaps returns the existing records for the candidate's person
// whose date span intersects the candidate's, inclusive on both ends. A
// candidate without a start date never overlaps anything.
func DetectOverlaps(existing []Record, candidate Record) []Overlap {
	if candidate.StartDate == "" {
		return nil
	}

	candidateEnd := candidate.EndDate
	if candidateEnd == "" {
		candidateEnd = candidate.StartDate
	}

	var overlaps []Overlap
	for _, record := range existing {
		if record.PersonID != candidate.PersonID || record.ID == candidate.ID {
			continue
		}
		if record.StartDate == "" {
			continue
		}

		recordEnd := record.EndDate
		if recordEnd == "" {
			recordEnd = record.StartDate
		}

		// Lexicographic comparison is date order for YYYY-MM-DD.
		if candidate.StartDate <= recordEnd && record.StartDate <= candidateEnd {
			overlaps = append(overlaps, Overlap{
				WithRecordID: record.ID,
				Category:     record.Category,
				StartDate:    record.StartDate,
				EndDate:      recordEnd,
			})
		}
	}

	return overlaps
}

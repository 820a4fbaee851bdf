package absence

import "testing"

func TestDetectOverlaps(t *testing.T) {
	t.Parallel()

	existing := []Record{
		{ID: "abs-1", PersonID: "person-1", Category: "vacation", StartDate: "2026-01-19", EndDate: "2026-01-23"},
		{ID: "abs-2", PersonID: "person-1", Category: "permission", StartDate: "2026-02-02", EndDate: ""},
		{ID: "abs-3", PersonID: "person-2", Category: "vacation", StartDate: "2026-01-19", EndDate: "2026-01-23"},
	}

	t.Run("intersecting spans are reported", func(t *testing.T) {
		candidate := Record{PersonID: "person-1", StartDate: "2026-01-22", EndDate: "2026-01-26"}
		overlaps := DetectOverlaps(existing, candidate)

		if len(overlaps) != 1 {
			t.Fatalf("expected 1 overlap, got %#v", overlaps)
		}
		if overlaps[0].WithRecordID != "abs-1" || overlaps[0].Category != "vacation" {
			t.Fatalf("unexpected overlap %#v", overlaps[0])
		}
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		candidate := Record{PersonID: "person-1", StartDate: "2026-01-23", EndDate: "2026-01-23"}
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 1 {
			t.Fatalf("expected shared boundary day to overlap, got %#v", overlaps)
		}
	})

	t.Run("adjacent spans do not overlap", func(t *testing.T) {
		candidate := Record{PersonID: "person-1", StartDate: "2026-01-24", EndDate: "2026-01-28"}
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 0 {
			t.Fatalf("expected no overlap, got %#v", overlaps)
		}
	})

	t.Run("open ended record covers only its start day", func(t *testing.T) {
		candidate := Record{PersonID: "person-1", StartDate: "2026-02-02", EndDate: "2026-02-02"}
		overlaps := DetectOverlaps(existing, candidate)
		if len(overlaps) != 1 || overlaps[0].WithRecordID != "abs-2" {
			t.Fatalf("expected overlap with abs-2, got %#v", overlaps)
		}
		if overlaps[0].EndDate != "2026-02-02" {
			t.Fatalf("expected filled end date, got %q", overlaps[0].EndDate)
		}

		candidate.StartDate, candidate.EndDate = "2026-02-03", "2026-02-03"
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 0 {
			t.Fatalf("expected no overlap past the single day, got %#v", overlaps)
		}
	})

	t.Run("other people are ignored", func(t *testing.T) {
		candidate := Record{PersonID: "person-3", StartDate: "2026-01-19", EndDate: "2026-01-23"}
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 0 {
			t.Fatalf("expected no overlap across people, got %#v", overlaps)
		}
	})

	t.Run("a record never overlaps itself", func(t *testing.T) {
		candidate := Record{ID: "abs-1", PersonID: "person-1", StartDate: "2026-01-19", EndDate: "2026-01-23"}
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 0 {
			t.Fatalf("expected self to be excluded, got %#v", overlaps)
		}
	})

	t.Run("candidate without a start date overlaps nothing", func(t *testing.T) {
		candidate := Record{PersonID: "person-1"}
		if overlaps := DetectOverlaps(existing, candidate); overlaps != nil {
			t.Fatalf("expected nil, got %#v", overlaps)
		}
	})

	t.Run("candidate without an end date covers its start day", func(t *testing.T) {
		candidate := Record{PersonID: "person-1", StartDate: "2026-01-23"}
		if overlaps := DetectOverlaps(existing, candidate); len(overlaps) != 1 {
			t.Fatalf("expected single day candidate to overlap abs-1, got %#v", overlaps)
		}
	})
}

package temporal

import (
	"testing"
	"time"
)

func TestExtractDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want int
	}{
		{name: "por N días", text: "vacaciones por 5 días", want: 5},
		{name: "unaccented dias", text: "permiso por 3 dias", want: 3},
		{name: "single day", text: "durante 1 día", want: 1},
		{name: "numeric weeks", text: "durante 2 semanas", want: 14},
		{name: "una semana", text: "por una semana", want: 7},
		{name: "un mes", text: "por un mes", want: 30},
		{name: "numeric months", text: "3 meses de licencia", want: 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractDays(tc.text)
			if !ok {
				t.Fatalf("ExtractDays(%q) reported no duration", tc.text)
			}
			if got != tc.want {
				t.Fatalf("ExtractDays(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}

	t.Run("reports false without a duration", func(t *testing.T) {
		for _, text := range []string{"", "vacaciones desde el lunes", "a las 9"} {
			if _, ok := ExtractDays(text); ok {
				t.Errorf("ExtractDays(%q) should not match", text)
			}
		}
	})
}

func TestComputeEndDate(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.January, 19, 0, 0, 0, 0, time.UTC)

	t.Run("span is inclusive of the start day", func(t *testing.T) {
		got := ComputeEndDate(start, 5)
		want := time.Date(2026, time.January, 23, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("ComputeEndDate = %s, want %s", got.Format(DayLayout), want.Format(DayLayout))
		}
	})

	t.Run("one day ends on the start itself", func(t *testing.T) {
		if got := ComputeEndDate(start, 1); !got.Equal(start) {
			t.Fatalf("ComputeEndDate = %s, want start", got.Format(DayLayout))
		}
	})

	t.Run("non positive counts collapse to one day", func(t *testing.T) {
		if got := ComputeEndDate(start, 0); !got.Equal(start) {
			t.Fatalf("ComputeEndDate = %s, want start", got.Format(DayLayout))
		}
	})

	t.Run("crosses month boundaries", func(t *testing.T) {
		got := ComputeEndDate(time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC), 5)
		want := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("ComputeEndDate = %s, want %s", got.Format(DayLayout), want.Format(DayLayout))
		}
	})
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		days int
		want string
	}{
		{days: 0, want: "1 día"},
		{days: 1, want: "1 día"},
		{days: 5, want: "5 días"},
		{days: 7, want: "1 semana"},
		{days: 14, want: "2 semanas"},
		{days: 30, want: "1 mes aprox."},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.days); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

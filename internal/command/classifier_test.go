package command

import "testing"

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(nil)

	cases := []struct {
		name string
		text string
		want Category
	}{
		{name: "vacation", text: "Registrar vacaciones para Juan", want: CategoryVacation},
		{name: "medical leave accented", text: "Ingresar licencia médica por 10 días", want: CategoryMedicalLeave},
		{name: "medical leave unaccented", text: "ingresar licencia medica", want: CategoryMedicalLeave},
		{name: "permission", text: "Dar permiso el viernes", want: CategoryPermission},
		{name: "administrative day", text: "día administrativo para el equipo", want: CategoryPermission},
		{name: "late arrival", text: "Autorizar atraso de mañana", want: CategoryLateArrival},
		{name: "early departure", text: "Se retira antes hoy", want: CategoryEarlyDeparture},
		{name: "day swap", text: "cambio de día por el feriado", want: CategoryDaySwap},
		{name: "missed clock in", text: "no marcó su entrada ayer", want: CategoryNoClockIn},
		{name: "missing credential", text: "olvidó credencial esta mañana", want: CategoryNoCredential},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifier.Classify(tc.text)
			if got.Category != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.text, got.Category, tc.want)
			}
			if got.Confidence < 0.9 || got.Confidence > 1.0 {
				t.Fatalf("confidence %f out of range for a table hit", got.Confidence)
			}
		})
	}

	t.Run("higher priority wins on overlapping vocabulary", func(t *testing.T) {
		// "permiso" also appears, but the vacation table entry outranks it.
		got := classifier.Classify("registrar vacaciones como permiso especial")
		if got.Category != CategoryVacation {
			t.Fatalf("expected vacation to win, got %s", got.Category)
		}
	})

	t.Run("unmatched text yields unknown with zero confidence", func(t *testing.T) {
		got := classifier.Classify("hola, ¿cómo estás?")
		if got.Category != CategoryUnknown {
			t.Fatalf("expected unknown, got %s", got.Category)
		}
		if got.Confidence != 0 {
			t.Fatalf("expected zero confidence, got %f", got.Confidence)
		}
	})

	t.Run("blank text yields unknown", func(t *testing.T) {
		if got := classifier.Classify("   "); got.Category != CategoryUnknown {
			t.Fatalf("expected unknown for blank text, got %s", got.Category)
		}
	})

	t.Run("custom table overrides the default vocabulary", func(t *testing.T) {
		custom := NewClassifier([]IntentPattern{
			{Category: CategoryPermission, Priority: 1, Patterns: []string{"día libre"}},
		})
		if got := custom.Classify("solicitar día libre"); got.Category != CategoryPermission {
			t.Fatalf("expected custom pattern to match, got %s", got.Category)
		}
		if got := custom.Classify("registrar vacaciones"); got.Category != CategoryUnknown {
			t.Fatalf("default vocabulary should not apply, got %s", got.Category)
		}
	})

	t.Run("longer matches raise confidence", func(t *testing.T) {
		short := classifier.Classify("se retira antes hoy por un trámite personal urgente")
		long := classifier.Classify("se retira antes")
		if long.Confidence <= short.Confidence {
			t.Fatalf("expected fuller match to score higher: %f vs %f", long.Confidence, short.Confidence)
		}
	})
}

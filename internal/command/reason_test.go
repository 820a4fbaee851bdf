package command

import "testing"

func TestExtractReason(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "motivo with colon", text: "licencia, motivo: cirugía programada", want: "cirugía programada"},
		{name: "motivo without colon", text: "permiso motivo mudanza", want: "mudanza"},
		{name: "razón accented", text: "razón: asunto familiar", want: "asunto familiar"},
		{name: "razon unaccented", text: "razon: trámite bancario", want: "trámite bancario"},
		{name: "nota label", text: "nota: vuelve el lunes", want: "vuelve el lunes"},
		{name: "motivo de", text: "por motivo de viaje al sur", want: "viaje al sur"},
		{name: "stops at a period", text: "motivo: control médico. Vuelve mañana", want: "control médico"},
		{name: "stops at a semicolon", text: "motivo: examen; confirmar después", want: "examen"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractReason(tc.text)
			if !ok {
				t.Fatalf("ExtractReason(%q) reported no reason", tc.text)
			}
			if got != tc.want {
				t.Fatalf("ExtractReason(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}

	t.Run("unlabeled text yields nothing", func(t *testing.T) {
		for _, text := range []string{"", "vacaciones desde el lunes", "se va de viaje"} {
			if _, ok := ExtractReason(text); ok {
				t.Errorf("ExtractReason(%q) should not match", text)
			}
		}
	})

	t.Run("empty label yields nothing", func(t *testing.T) {
		if _, ok := ExtractReason("motivo:"); ok {
			t.Fatal("a bare label carries no reason")
		}
	})
}

package rut

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "formatted with dots and dash", raw: "12.345.678-5", want: "12345678-5"},
		{name: "bare digits gain a dash", raw: "123456785", want: "12345678-5"},
		{name: "lowercase check is uppercased", raw: "7654321-k", want: "7654321-K"},
		{name: "surrounding whitespace is trimmed", raw: "  18866264-1  ", want: "18866264-1"},
		{name: "interior spaces are removed", raw: "18.866.264 - 1", want: "18866264-1"},
		{name: "empty input stays empty", raw: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestCheckDigit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want byte
	}{
		{body: "18866264", want: '1'},
		{body: "12345678", want: '5'},
		{body: "11111111", want: '1'},
		{body: "7654321", want: '6'},
		{body: "4000007", want: '0'},
		{body: "5000001", want: 'K'},
	}

	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			got, ok := CheckDigit(tc.body)
			if !ok {
				t.Fatalf("CheckDigit(%q) reported not ok", tc.body)
			}
			if got != tc.want {
				t.Fatalf("CheckDigit(%q) = %c, want %c", tc.body, got, tc.want)
			}
		})
	}

	t.Run("rejects bodies outside 7 to 8 digits", func(t *testing.T) {
		for _, body := range []string{"123456", "123456789", ""} {
			if _, ok := CheckDigit(body); ok {
				t.Errorf("CheckDigit(%q) should report not ok", body)
			}
		}
	})

	t.Run("rejects non numeric bodies", func(t *testing.T) {
		if _, ok := CheckDigit("1234A678"); ok {
			t.Fatal("CheckDigit should reject letters in the body")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := []string{"18866264-1", "12345678-5", "11111111-1", "7654321-6", "5000001-K"}
	for _, rut := range valid {
		if !Validate(rut) {
			t.Errorf("Validate(%q) = false, want true", rut)
		}
	}

	invalid := []string{
		"18866264-2",
		"12345678-K",
		"1234567",
		"12345678-55",
		"1234567a-5",
		"",
	}
	for _, rut := range invalid {
		if Validate(rut) {
			t.Errorf("Validate(%q) = true, want false", rut)
		}
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("labeled occurrence wins", func(t *testing.T) {
		raw, ok := Extract("registrar vacaciones para rut 12.345.678-5 desde el lunes")
		if !ok {
			t.Fatal("expected an identifier to be extracted")
		}
		if Normalize(raw) != "12345678-5" {
			t.Fatalf("unexpected identifier %q", raw)
		}
	})

	t.Run("formatted occurrence without label", func(t *testing.T) {
		raw, ok := Extract("vacaciones 18.866.264-1 la próxima semana")
		if !ok {
			t.Fatal("expected an identifier to be extracted")
		}
		if Normalize(raw) != "18866264-1" {
			t.Fatalf("unexpected identifier %q", raw)
		}
	})

	t.Run("lenient digit run fallback", func(t *testing.T) {
		raw, ok := Extract("licencia 7654321-6 mañana")
		if !ok {
			t.Fatal("expected an identifier to be extracted")
		}
		if raw != "7654321-6" {
			t.Fatalf("unexpected identifier %q", raw)
		}
	})

	t.Run("skips candidates with bad checksums", func(t *testing.T) {
		raw, ok := Extract("para 12345678-9 o quizás 18866264-1")
		if !ok {
			t.Fatal("expected the second candidate to be extracted")
		}
		if Normalize(raw) != "18866264-1" {
			t.Fatalf("unexpected identifier %q", raw)
		}
	})

	t.Run("reports false when nothing validates", func(t *testing.T) {
		if _, ok := Extract("registrar vacaciones para todo el equipo"); ok {
			t.Fatal("expected no identifier in text without a RUT")
		}
		if _, ok := Extract("para 12345678-9"); ok {
			t.Fatal("expected checksum failure to be skipped silently")
		}
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		normalized string
		want       string
	}{
		{normalized: "12345678-5", want: "12.345.678-5"},
		{normalized: "7654321-6", want: "7.654.321-6"},
		{normalized: "5000001-K", want: "5.000.001-K"},
	}

	for _, tc := range cases {
		if got := Format(tc.normalized); got != tc.want {
			t.Errorf("Format(%q) = %q, want %q", tc.normalized, got, tc.want)
		}
	}

	t.Run("passes through inputs that are not normalized", func(t *testing.T) {
		for _, input := range []string{"", "not-a-rut", "123-45"} {
			if got := Format(input); got != input {
				t.Errorf("Format(%q) = %q, want unchanged", input, got)
			}
		}
	})
}

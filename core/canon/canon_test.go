package canon

import "testing"

func TestRegistryInvariants(t *testing.T) {
	r := NewRegistry()

	books := r.Books()
	if len(books) != canonicalBookCount {
		t.Fatalf("got %d books, want %d", len(books), canonicalBookCount)
	}

	seenOrdinals := make(map[int]Code)
	for i, b := range books {
		if b.Ordinal != i+1 {
			t.Errorf("book %s: ordinal %d at position %d, ordinals must be contiguous", b.Code, b.Ordinal, i)
		}
		if prev, dup := seenOrdinals[b.Ordinal]; dup {
			t.Errorf("ordinal %d assigned to both %s and %s", b.Ordinal, prev, b.Code)
		}
		seenOrdinals[b.Ordinal] = b.Code
	}

	if books[LastOldTestament-1].Code != "MAL" {
		t.Errorf("last OT book = %s, want MAL", books[LastOldTestament-1].Code)
	}
	if books[FirstNewTestament-1].Code != "MAT" {
		t.Errorf("first NT book = %s, want MAT", books[FirstNewTestament-1].Code)
	}
}

func TestResolveAbbreviation(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		input string
		want  Code
	}{
		{"рим", "ROM"},
		{"Римлянам", "ROM"},
		{"1кор", "1CO"},
		{"1-е Коринфянам", "1CO"},
		{"1 КОР", "1CO"},
		{"ин", "JHN"},
		{"От Иоанна", "JHN"},
		{"песнь песней", "SNG"},
		{"жаратылыс", "GEN"}, // Kazakh title
		{"забур", "PSA"},     // Kyrgyz title
		{"откровение", "REV"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := r.ResolveAbbreviation(tt.input)
			if !ok {
				t.Fatalf("ResolveAbbreviation(%q) not found", tt.input)
			}
			if got != tt.want {
				t.Errorf("ResolveAbbreviation(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	if _, ok := r.ResolveAbbreviation("plugh"); ok {
		t.Error("ResolveAbbreviation should fail for nonsense input")
	}
}

func TestBookIDRoundTrip(t *testing.T) {
	r := NewRegistry()

	for _, translation := range r.Translations() {
		for _, b := range r.Books() {
			id, ok := r.BookIDFor(b.Code, translation)
			if !ok {
				t.Errorf("%s: no book ID for %s", translation, b.Code)
				continue
			}
			back, ok := r.CodeFromBookID(id, translation)
			if !ok {
				t.Errorf("%s: no reverse mapping for ID %d", translation, id)
				continue
			}
			if back != b.Code {
				t.Errorf("%s: round trip %s -> %d -> %s", translation, b.Code, id, back)
			}
		}
	}
}

func TestKTBOrdersGeneralEpistlesFirst(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		code  Code
		rstID int
		ktbID int
	}{
		{"ROM", 45, 52},
		{"JAS", 59, 45},
		{"JUD", 65, 51},
		{"HEB", 58, 65},
		{"REV", 66, 66},
		{"MAT", 40, 40}, // Gospels unaffected
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if id, _ := r.BookIDFor(tt.code, "RST"); id != tt.rstID {
				t.Errorf("RST ID for %s = %d, want %d", tt.code, id, tt.rstID)
			}
			if id, _ := r.BookIDFor(tt.code, "KTB"); id != tt.ktbID {
				t.Errorf("KTB ID for %s = %d, want %d", tt.code, id, tt.ktbID)
			}
		})
	}
}

func TestTranslationMapsAreBijections(t *testing.T) {
	r := NewRegistry()

	for _, translation := range r.Translations() {
		seen := make(map[int]Code)
		for _, b := range r.Books() {
			id, ok := r.BookIDFor(b.Code, translation)
			if !ok {
				t.Fatalf("%s: missing ID for %s", translation, b.Code)
			}
			if prev, dup := seen[id]; dup {
				t.Errorf("%s: ID %d maps to both %s and %s", translation, id, prev, b.Code)
			}
			seen[id] = b.Code
		}
		if len(seen) != canonicalBookCount {
			t.Errorf("%s: %d distinct IDs, want %d", translation, len(seen), canonicalBookCount)
		}
	}
}

func TestTitleFor(t *testing.T) {
	r := NewRegistry()

	if got := r.TitleFor("1CO", LangRU); got != "1-е Коринфянам" {
		t.Errorf("TitleFor(1CO, ru) = %q", got)
	}
	if got := r.TitleFor("GEN", LangKZ); got != "Жаратылыс" {
		t.Errorf("TitleFor(GEN, kz) = %q", got)
	}
	if got := r.TitleFor("GEN", LangKY); got != "Башталыш" {
		t.Errorf("TitleFor(GEN, ky) = %q", got)
	}
	// Unknown code falls back to a generic title
	if got := r.TitleFor("XYZ", LangRU); got != "Библия" {
		t.Errorf("TitleFor(unknown) = %q, want Библия", got)
	}
}

func TestLanguageFor(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		translation string
		want        Language
	}{
		{"RST", LangRU},
		{"NRT", LangRU},
		{"KTB", LangKZ},
		{"KYB", LangKY},
		{"XXX", LangRU}, // unknown defaults to Russian
	}

	for _, tt := range tests {
		if got := r.LanguageFor(tt.translation); got != tt.want {
			t.Errorf("LanguageFor(%s) = %s, want %s", tt.translation, got, tt.want)
		}
	}
}

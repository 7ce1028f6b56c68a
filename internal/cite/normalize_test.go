package cite

import "testing"

func TestNormalizeReporter_Variants(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"U.S.", "U.S."},
		{"U. S.", "U.S."},
		{"US", "U.S."},
		{"Wash. 2d", "Wn.2d"},
		{"Wn. 2d", "Wn.2d"},
		{"Wash. App.", "Wn. App."},
		{"F. Supp.2d", "F. Supp. 2d"},
		{"P. 3d", "P.3d"},
	}
	for _, tt := range tests {
		got, ok := NormalizeReporter(tt.in)
		if !ok {
			t.Errorf("NormalizeReporter(%q) not recognized", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeReporter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeReporter_Unknown(t *testing.T) {
	got, ok := NormalizeReporter("F.999d")
	if ok {
		t.Errorf("F.999d should not be recognized")
	}
	if got != "F.999d" {
		t.Errorf("unknown reporter should come back cleaned, got %q", got)
	}
}

// Two surface variants of the same citation must normalize identically, so
// they share one cache key and one source lookup.
func TestNormalizeCitation_VariantEquivalence(t *testing.T) {
	p := NewParser()

	variants := []string{
		"State v. Smith, 199 Wn. App. 280 (2017).",
		"State v. Smith, 199 Wash. App. 280 (2017).",
	}
	var keys []string
	for _, text := range variants {
		parsed, fails := p.ParseDocument(text)
		if len(fails) != 0 || len(parsed) != 1 {
			t.Fatalf("parse %q: %d parsed, %d failed", text, len(parsed), len(fails))
		}
		keys = append(keys, NormalizeCitation(parsed[0]))
	}
	if keys[0] != keys[1] {
		t.Errorf("variants normalized differently: %q vs %q", keys[0], keys[1])
	}
	if keys[0] != "199 Wn. App. 280" {
		t.Errorf("unexpected normalized form %q", keys[0])
	}
}

// Parsing a normalized citation and normalizing again is a fixed point.
func TestNormalizeCitation_Idempotent(t *testing.T) {
	p := NewParser()
	parsed, _ := p.ParseDocument("410 U.S. 113")
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}
	normalized := NormalizeCitation(parsed[0])

	again, _ := p.ParseDocument(normalized)
	if len(again) != 1 {
		t.Fatalf("re-parse of %q yielded %d citations", normalized, len(again))
	}
	if NormalizeCitation(again[0]) != normalized {
		t.Errorf("normalization not idempotent: %q -> %q", normalized, NormalizeCitation(again[0]))
	}
}

package score

import (
	"strings"
	"testing"

	"github.com/mkravets/citecheck/internal/model"
)

func clusterWithName(name string) *model.CitationCluster {
	p := &model.ParsedCitation{Reporter: "U.S.", Volume: 410, Page: 113, CaseName: name, Year: "1973"}
	return &model.CitationCluster{Citations: []*model.ParsedCitation{p}, Primary: p}
}

func TestConfidence_Authoritative(t *testing.T) {
	s := testScorer()
	res := &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "courtlistener", Authoritative: true}

	conf, verified, note := s.Confidence(clusterWithName("Roe v. Wade"), res, 0.1)
	if conf != 0.95 || !verified {
		t.Errorf("authoritative hit: conf=%.2f verified=%v", conf, verified)
	}
	if !strings.Contains(note, "authoritative") {
		t.Errorf("unexpected explanation %q", note)
	}
}

func TestConfidence_MultiSourceAgreement(t *testing.T) {
	s := testScorer()
	res := &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "scholar", Agreements: 1}

	conf, verified, note := s.Confidence(clusterWithName("Roe v. Wade"), res, 0.5)
	if conf != 0.90 || !verified {
		t.Errorf("multi-source: conf=%.2f verified=%v", conf, verified)
	}
	if !strings.Contains(note, "2 independent sources") {
		t.Errorf("unexpected explanation %q", note)
	}
}

func TestConfidence_SingleSourceNameMatch(t *testing.T) {
	s := testScorer()
	res := &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "websearch"}

	conf, verified, _ := s.Confidence(clusterWithName("Roe v. Wade"), res, 0.5)
	if conf != 0.75 || !verified {
		t.Errorf("single matching source: conf=%.2f verified=%v", conf, verified)
	}
}

func TestConfidence_SingleSourceGenericTitle(t *testing.T) {
	s := testScorer()
	res := &model.CanonicalResult{CaseName: "Search Results", Source: "websearch"}

	conf, verified, note := s.Confidence(clusterWithName("Roe v. Wade"), res, 0.9)
	if verified {
		t.Error("generic title must not verify")
	}
	if conf >= s.cfg.VerifiedThreshold {
		t.Errorf("conf %.2f crossed the verified threshold", conf)
	}
	if !strings.Contains(note, "generic title") {
		t.Errorf("unexpected explanation %q", note)
	}
}

func TestConfidence_SingleSourceNameMismatch(t *testing.T) {
	s := testScorer()
	res := &model.CanonicalResult{CaseName: "Johnson v. Transit Authority", Source: "websearch"}

	_, verified, note := s.Confidence(clusterWithName("Roe v. Wade"), res, 0.9)
	if verified {
		t.Error("mismatched name must not verify")
	}
	if !strings.Contains(note, "could not be corroborated") {
		t.Errorf("unexpected explanation %q", note)
	}
}

func TestConfidence_NothingConfirmed_NeverVerified(t *testing.T) {
	s := testScorer()

	// Even a perfect format likelihood stays below the verified threshold.
	for _, likelihood := range []float64{0.0, 0.2, 0.5, 1.0} {
		conf, verified, _ := s.Confidence(clusterWithName("Roe v. Wade"), nil, likelihood)
		if verified {
			t.Errorf("likelihood %.1f: unconfirmed citation verified", likelihood)
		}
		if conf >= s.cfg.VerifiedThreshold {
			t.Errorf("likelihood %.1f: conf %.2f at or above threshold", likelihood, conf)
		}
	}
}

func TestConfidence_MonotonicInEvidence(t *testing.T) {
	s := testScorer()
	cl := clusterWithName("Roe v. Wade")

	none, _, _ := s.Confidence(cl, nil, 0.8)
	single, _, _ := s.Confidence(cl, &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "scholar"}, 0.8)
	multi, _, _ := s.Confidence(cl, &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "scholar", Agreements: 1}, 0.8)
	auth, _, _ := s.Confidence(cl, &model.CanonicalResult{CaseName: "Roe v. Wade", Source: "courtlistener", Authoritative: true}, 0.8)

	if !(none < single && single < multi && multi < auth) {
		t.Errorf("confidence not monotonic in evidence strength: %.2f %.2f %.2f %.2f",
			none, single, multi, auth)
	}
}

func TestGenericName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Roe v. Wade", false},
		{"In re Marriage of Littlefield", false},
		{"State v. Smith", false},
		{"Search Results - Case Law", true},
		{"404", true},
		{"xx", true},
		{"Something Completely Unrelated", true},
	}
	for _, tt := range tests {
		if got := GenericName(tt.name); got != tt.want {
			t.Errorf("GenericName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

package score

import (
	"strings"
	"testing"

	"github.com/mkravets/citecheck/internal/model"
)

func testScorer() *Scorer {
	return NewScorer(model.DefaultConfig().Scoring)
}

func TestLikelihood_PlausibleCitation(t *testing.T) {
	s := testScorer()
	p := &model.ParsedCitation{
		Reporter: "U.S.", Volume: 410, Page: 113,
		Year: "1973", CaseName: "Roe v. Wade",
	}
	got, note := s.Likelihood(p)
	if got < 0.85 {
		t.Errorf("plausible citation scored %.2f, want >= 0.85", got)
	}
	if !strings.Contains(note, "plausible") {
		t.Errorf("expected clean explanation, got %q", note)
	}
}

func TestLikelihood_VolumeOutOfRange(t *testing.T) {
	s := testScorer()
	p := &model.ParsedCitation{Reporter: "U.S.", Volume: 700, Page: 1}
	got, note := s.Likelihood(p)
	if got >= 0.3 {
		t.Errorf("out-of-range volume scored %.2f, want < 0.3", got)
	}
	if !strings.Contains(note, "volume 700 outside") {
		t.Errorf("explanation must name the volume violation, got %q", note)
	}
}

func TestLikelihood_UnknownReporter(t *testing.T) {
	s := testScorer()
	p := &model.ParsedCitation{Reporter: "F.999d", Volume: 999, Page: 999, Year: "2025"}
	got, note := s.Likelihood(p)
	if got >= 0.3 {
		t.Errorf("unknown reporter scored %.2f, want < 0.3", got)
	}
	if !strings.Contains(note, "not recognized") {
		t.Errorf("explanation must say the reporter is unknown, got %q", note)
	}
	if !strings.Contains(note, "volume 999") {
		t.Errorf("explanation must mention the uncheckable volume, got %q", note)
	}
}

func TestLikelihood_YearOutsideSeriesRange(t *testing.T) {
	s := testScorer()
	// F.2d ended in 1993; a 2020 opinion cannot be in it.
	inRange := &model.ParsedCitation{Reporter: "F.2d", Volume: 500, Page: 1, Year: "1975", CaseName: "A v. B"}
	outRange := &model.ParsedCitation{Reporter: "F.2d", Volume: 500, Page: 1, Year: "2020", CaseName: "A v. B"}

	a, _ := s.Likelihood(inRange)
	b, note := s.Likelihood(outRange)
	if b >= a {
		t.Errorf("inconsistent year should score lower: %.2f vs %.2f", b, a)
	}
	if !strings.Contains(note, "active range") {
		t.Errorf("expected year note, got %q", note)
	}
}

func TestLikelihood_PinpointBeforeFirstPage(t *testing.T) {
	s := testScorer()
	good := &model.ParsedCitation{Reporter: "P.3d", Volume: 399, Page: 1195, PinpointPages: []int{1197}}
	bad := &model.ParsedCitation{Reporter: "P.3d", Volume: 399, Page: 1195, PinpointPages: []int{100}}

	a, _ := s.Likelihood(good)
	b, note := s.Likelihood(bad)
	if b >= a {
		t.Errorf("impossible pinpoint should score lower: %.2f vs %.2f", b, a)
	}
	if !strings.Contains(note, "pinpoint") {
		t.Errorf("expected pinpoint note, got %q", note)
	}
}

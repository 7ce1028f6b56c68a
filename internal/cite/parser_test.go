package cite

import (
	"strings"
	"testing"

	"github.com/mkravets/citecheck/internal/model"
)

func TestParseDocument_SimpleCitation(t *testing.T) {
	p := NewParser()
	parsed, fails := p.ParseDocument("As held in Roe v. Wade, 410 U.S. 113 (1973), the issue was settled.")

	if len(fails) != 0 {
		t.Fatalf("unexpected parse failures: %v", fails)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}

	c := parsed[0]
	if c.Volume != 410 || c.Reporter != "U.S." || c.Page != 113 {
		t.Errorf("wrong core: %d %s %d", c.Volume, c.Reporter, c.Page)
	}
	if c.CaseName != "Roe v. Wade" {
		t.Errorf("expected case name 'Roe v. Wade', got %q", c.CaseName)
	}
	if c.Year != "1973" {
		t.Errorf("expected year 1973, got %q", c.Year)
	}
	if c.Status != model.StatusPublished {
		t.Errorf("expected published status, got %s", c.Status)
	}
	if c.Rule != "name-cite-year" {
		t.Errorf("expected rule name-cite-year, got %q", c.Rule)
	}
}

func TestParseDocument_ParallelWithPinpointAndMarker(t *testing.T) {
	p := NewParser()
	text := "See State v. Smith, 199 Wn. App. 280, 283, 399 P.3d 1195 (2017) (Doe I)."
	parsed, fails := p.ParseDocument(text)

	if len(fails) != 0 {
		t.Fatalf("unexpected parse failures: %v", fails)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 citations (parallel pair), got %d", len(parsed))
	}

	first := parsed[0]
	if first.Reporter != "Wn. App." || first.Volume != 199 || first.Page != 280 {
		t.Errorf("wrong first core: %d %s %d", first.Volume, first.Reporter, first.Page)
	}
	if len(first.PinpointPages) != 1 || first.PinpointPages[0] != 283 {
		t.Errorf("expected pinpoint [283], got %v", first.PinpointPages)
	}
	if first.CaseName != "State v. Smith" {
		t.Errorf("expected case name 'State v. Smith', got %q", first.CaseName)
	}
	if len(first.HistoryMarkers) != 1 || first.HistoryMarkers[0] != "Doe I" {
		t.Errorf("expected history marker [Doe I], got %v", first.HistoryMarkers)
	}
	if !first.IsComplex {
		t.Errorf("expected citation with history marker to be complex")
	}

	second := parsed[1]
	if second.Reporter != "P.3d" || second.Volume != 399 || second.Page != 1195 {
		t.Errorf("wrong second core: %d %s %d", second.Volume, second.Reporter, second.Page)
	}
	// The look-behind must not swallow the first citation into a name.
	if second.CaseName != "" {
		t.Errorf("expected empty name for parallel citation, got %q", second.CaseName)
	}
	if second.Year != "2017" {
		t.Errorf("expected year 2017 on parallel citation, got %q", second.Year)
	}
}

func TestParseDocument_UnknownReporterStillParses(t *testing.T) {
	p := NewParser()
	parsed, fails := p.ParseDocument("Compare 999 F.999d 999 (2025).")

	if len(fails) != 0 {
		t.Fatalf("unexpected parse failures: %v", fails)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}
	c := parsed[0]
	if c.Volume != 999 || c.Page != 999 {
		t.Errorf("wrong core: %d %s %d", c.Volume, c.Reporter, c.Page)
	}
	if _, known := LookupReporter(c.Reporter); known {
		t.Errorf("reporter %q should not be recognized", c.Reporter)
	}
	if c.Year != "2025" {
		t.Errorf("expected year 2025, got %q", c.Year)
	}
}

func TestParseDocument_Dockets(t *testing.T) {
	p := NewParser()
	text := "State v. Jones, 150 Wn.2d 100 (2003), Nos. 71234-1, was remanded."
	parsed, _ := p.ParseDocument(text)
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}
	c := parsed[0]
	if len(c.DocketNumbers) == 0 || c.DocketNumbers[0] != "71234-1" {
		t.Errorf("expected docket 71234-1, got %v", c.DocketNumbers)
	}
	if !c.IsComplex {
		t.Errorf("citation with a docket should be complex")
	}
	if c.Rule != "name-cite-year-annotated" {
		t.Errorf("expected annotated rule, got %q", c.Rule)
	}
}

func TestParseDocument_UnpublishedStatus(t *testing.T) {
	p := NewParser()
	parsed, _ := p.ParseDocument("See State v. Doe, 12 Wn. App. 2d 33 (2019) (unpublished).")
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}
	if parsed[0].Status != model.StatusUnpublished {
		t.Errorf("expected unpublished status, got %s", parsed[0].Status)
	}
}

func TestParseDocument_InReName(t *testing.T) {
	p := NewParser()
	parsed, _ := p.ParseDocument("In re Marriage of Littlefield, 133 Wn.2d 39 (1997).")
	if len(parsed) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(parsed))
	}
	if parsed[0].CaseName != "In re Marriage of Littlefield" {
		t.Errorf("expected In re name, got %q", parsed[0].CaseName)
	}
}

func TestParse_SpanWithoutCore(t *testing.T) {
	p := NewParser()
	text := "no citation here at all"
	_, err := p.Parse(text, 0, len(text))
	if err == nil {
		t.Fatal("expected a parse error for a span with no core")
	}
	pe, ok := err.(*model.ParseError)
	if !ok {
		t.Fatalf("expected *model.ParseError, got %T", err)
	}
	if !strings.Contains(pe.Reason, "core") {
		t.Errorf("unexpected reason: %q", pe.Reason)
	}
}

func TestParse_SpanOutOfRange(t *testing.T) {
	p := NewParser()
	if _, err := p.Parse("short", 2, 99); err == nil {
		t.Fatal("expected error for out-of-range span")
	}
}

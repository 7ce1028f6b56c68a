// Package score computes the format-only likelihood and the final
// confidence for citation clusters. Both always come with a short
// explanation naming the rule that fired.
package score

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkravets/citecheck/internal/cite"
	"github.com/mkravets/citecheck/internal/model"
)

// Scorer holds the configured thresholds. It performs no network calls.
type Scorer struct {
	cfg model.ScoringConfig
}

// NewScorer creates a scorer with the given thresholds.
func NewScorer(cfg model.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Likelihood scores how plausible a citation is on format alone, in [0,1].
// It is pure: no cache, no network. Component weights:
//
//	reporter recognized        0.35
//	volume within series range 0.25
//	year consistent            0.15
//	case name present          0.15
//	pinpoints >= primary page  0.10
//
// An out-of-range volume additionally scales the total down sharply.
func (s *Scorer) Likelihood(p *model.ParsedCitation) (float64, string) {
	var (
		total float64
		notes []string
	)

	rep, known := cite.LookupReporter(p.Reporter)
	if known {
		total += 0.35
		if p.Volume >= 1 && (rep.MaxVolume == 0 || p.Volume <= rep.MaxVolume) {
			total += 0.25
		} else {
			notes = append(notes, fmt.Sprintf("volume %d outside the plausible range 1-%d for %s", p.Volume, rep.MaxVolume, rep.Code))
		}
	} else {
		total += 0.05
		notes = append(notes, fmt.Sprintf("reporter %q not recognized; volume %d cannot be checked against any known volume range", p.Reporter, p.Volume))
	}

	if y := yearOf(p); y > 0 {
		switch {
		case !known:
			total += 0.05
		case yearConsistent(rep, y):
			total += 0.15
		default:
			notes = append(notes, fmt.Sprintf("year %d outside %s's active range", y, rep.Code))
		}
	}

	if p.CaseName != "" {
		total += 0.15
	}

	if pinpointsConsistent(p) {
		total += 0.10
	} else {
		notes = append(notes, "pinpoint page precedes the opinion's first page")
	}

	// Sharp reduction for a volume-range violation: the citation cannot
	// refer to a real opinion in that series.
	if known && (p.Volume < 1 || (rep.MaxVolume > 0 && p.Volume > rep.MaxVolume)) {
		total *= 0.35
	}

	if total > 1 {
		total = 1
	}
	if len(notes) == 0 {
		notes = append(notes, "citation format is plausible for "+p.Reporter)
	}
	return total, strings.Join(notes, "; ")
}

func yearOf(p *model.ParsedCitation) int {
	if len(p.Year) != 4 {
		return 0
	}
	y := 0
	for _, r := range p.Year {
		if r < '0' || r > '9' {
			return 0
		}
		y = y*10 + int(r-'0')
	}
	return y
}

func yearConsistent(rep *cite.Reporter, year int) bool {
	if year < rep.FirstYear-1 {
		return false
	}
	last := rep.LastYear
	if last == 0 {
		last = time.Now().Year()
	}
	return year <= last+1
}

func pinpointsConsistent(p *model.ParsedCitation) bool {
	for _, pin := range p.PinpointPages {
		if pin < p.Page {
			return false
		}
	}
	return true
}

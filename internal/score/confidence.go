package score

import (
	"fmt"
	"strings"

	"github.com/mkravets/citecheck/internal/model"
)

// Confidence combines the format likelihood with whatever the sources
// returned, in [0,1]. The rules, in order:
//
//  1. authoritative hit              -> high confidence regardless of format
//  2. two+ independent sources agree -> high confidence
//  3. single fallback source         -> accepted only with a real case name
//     AND name similarity above the configured threshold
//  4. nothing confirmed              -> damped likelihood, never verified
func (s *Scorer) Confidence(cl *model.CitationCluster, res *model.CanonicalResult, likelihood float64) (float64, bool, string) {
	if res == nil {
		conf := s.cfg.UnconfirmedDamping * likelihood
		if max := s.cfg.VerifiedThreshold - 0.05; conf > max {
			conf = max
		}
		return conf, false, "no confirming source found; score reflects format plausibility only"
	}

	if res.Authoritative {
		conf := s.cfg.AuthoritativeConfidence
		return conf, conf >= s.cfg.VerifiedThreshold,
			fmt.Sprintf("confirmed by authoritative case-law database (%s)", res.Source)
	}

	if res.Agreements >= 1 {
		conf := s.cfg.MultiSourceConfidence
		return conf, conf >= s.cfg.VerifiedThreshold,
			fmt.Sprintf("%d independent sources agree on the case name", res.Agreements+1)
	}

	sim := Similarity(cl.CaseName(), res.CaseName)
	if !GenericName(res.CaseName) && sim >= s.cfg.NameSimilarityThreshold {
		conf := s.cfg.SingleSourceConfidence
		return conf, conf >= s.cfg.VerifiedThreshold,
			fmt.Sprintf("single source %s matched the extracted case name (similarity %.2f)", res.Source, sim)
	}

	conf := 0.2 + s.cfg.UnconfirmedDamping*likelihood
	if max := s.cfg.VerifiedThreshold - 0.10; conf > max {
		conf = max
	}
	reason := fmt.Sprintf("name similarity %.2f below threshold", sim)
	if GenericName(res.CaseName) {
		reason = "source returned a generic title"
	}
	return conf, false,
		fmt.Sprintf("single source %s could not be corroborated (%s)", res.Source, reason)
}

// GenericName reports whether a source-provided title looks like a search
// page artifact rather than a real case name.
func GenericName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 6 || len(name) > 200 {
		return true
	}
	lower := strings.ToLower(name)
	for _, junk := range []string{"search results", "case law", "legal research", "sign in", "404"} {
		if strings.Contains(lower, junk) {
			return true
		}
	}
	if strings.Contains(lower, " v. ") || strings.Contains(lower, " v ") || strings.Contains(lower, " vs. ") {
		return false
	}
	for _, prefix := range []string{"in re ", "matter of ", "ex parte ", "estate of ", "state "} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

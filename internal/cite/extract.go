package cite

import (
	"regexp"

	"github.com/mkravets/citecheck/internal/model"
)

// Context window sizes around a citation core. The window must be wide
// enough to hold a long case name before the cite and the trailing
// parenthetical run after it.
const (
	ctxBefore = 160
	ctxAfter  = 160
)

// genericReporter admits reporter-like tokens that are not in the table
// (they must contain at least one period) so that implausible citations
// still parse and can be scored down rather than silently dropped.
const genericReporter = `[A-Z][A-Za-z0-9]*\.(?:\s?[A-Za-z0-9]+\.?)*`

var coreRe = regexp.MustCompile(`\b(\d{1,4})\s+(` + reporterAlt + `|` + genericReporter + `)\s+(\d{1,5})\b`)

// Extract finds citation core spans ("volume reporter page") in free text
// and returns them with offsets and a surrounding context window. Pinpoint
// pages, case names, and parentheticals are left to the parser.
func Extract(text string) []model.RawCitation {
	var out []model.RawCitation
	for _, m := range coreRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		cs := start - ctxBefore
		if cs < 0 {
			cs = 0
		}
		ce := end + ctxAfter
		if ce > len(text) {
			ce = len(text)
		}
		out = append(out, model.RawCitation{
			Text:     text[start:end],
			Start:    start,
			End:      end,
			Context:  text[cs:ce],
			CtxStart: cs,
		})
	}
	return out
}

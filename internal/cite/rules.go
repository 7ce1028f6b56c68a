package cite

import "github.com/mkravets/citecheck/internal/model"

// patternRule is one entry in the ordered rule table. Rules are tried
// most-specific-first; the first rule whose requirements hold names the
// parse. The bare volume/reporter/page rule is the unconditional floor, so
// any span with a core always parses.
type patternRule struct {
	name    string
	matches func(core coreParts, enr enrichment) bool
}

func defaultRules() []patternRule {
	return []patternRule{
		{
			// Case name, citation, year, and at least one trailing
			// parenthetical annotation beyond the date.
			name: "name-cite-year-annotated",
			matches: func(_ coreParts, e enrichment) bool {
				return e.name != "" && e.year != "" &&
					(len(e.markers) > 0 || len(e.dockets) > 0 || e.status != statusForYear(e))
			},
		},
		{
			name: "name-cite-year",
			matches: func(_ coreParts, e enrichment) bool {
				return e.name != "" && e.year != ""
			},
		},
		{
			name: "cite-year",
			matches: func(_ coreParts, e enrichment) bool {
				return e.year != ""
			},
		},
		{
			name: "cite-docket",
			matches: func(_ coreParts, e enrichment) bool {
				return len(e.dockets) > 0
			},
		},
		{
			name:    "volume-reporter-page",
			matches: func(coreParts, enrichment) bool { return true },
		},
	}
}

// statusForYear is the status a plain dated citation would carry; anything
// else means a status parenthetical overrode it.
func statusForYear(e enrichment) model.PublicationStatus {
	if e.year != "" {
		return model.StatusPublished
	}
	return model.StatusUnknown
}

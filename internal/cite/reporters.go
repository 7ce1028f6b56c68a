package cite

import (
	"regexp"
	"sort"
	"strings"
)

// ReporterClass orders reporter series for representative selection:
// official reporters beat federal, federal beat regional.
type ReporterClass int

const (
	ClassOfficial ReporterClass = iota + 1
	ClassFederal
	ClassRegional
	ClassOther
)

func (c ReporterClass) String() string {
	switch c {
	case ClassOfficial:
		return "official"
	case ClassFederal:
		return "federal"
	case ClassRegional:
		return "regional"
	default:
		return "other"
	}
}

// Reporter describes one published reporter series. MaxVolume and the year
// range bound what volumes/dates are plausible for format-only scoring.
type Reporter struct {
	Code      string // canonical series code, e.g. "P.3d"
	Name      string
	Class     ReporterClass
	MaxVolume int // highest plausible volume, 0 = unknown
	FirstYear int
	LastYear  int // 0 = still active
	Variants  []string
}

// The table is not exhaustive; it covers the federal reporters, the major
// regional reporters, and the state series the tool sees most. Unknown
// series still parse but score poorly.
var reporters = []Reporter{
	{Code: "U.S.", Name: "United States Reports", Class: ClassOfficial, MaxVolume: 610, FirstYear: 1790, Variants: []string{"U. S.", "US"}},
	{Code: "S. Ct.", Name: "Supreme Court Reporter", Class: ClassFederal, MaxVolume: 145, FirstYear: 1882, Variants: []string{"S.Ct.", "Sup. Ct."}},
	{Code: "L. Ed.", Name: "Lawyers' Edition", Class: ClassFederal, MaxVolume: 100, FirstYear: 1790, LastYear: 1956, Variants: []string{"L.Ed."}},
	{Code: "L. Ed. 2d", Name: "Lawyers' Edition, Second Series", Class: ClassFederal, MaxVolume: 220, FirstYear: 1956, Variants: []string{"L.Ed.2d", "L. Ed.2d"}},

	{Code: "F.", Name: "Federal Reporter", Class: ClassFederal, MaxVolume: 300, FirstYear: 1880, LastYear: 1924},
	{Code: "F.2d", Name: "Federal Reporter, Second Series", Class: ClassFederal, MaxVolume: 999, FirstYear: 1924, LastYear: 1993, Variants: []string{"F. 2d", "F2d"}},
	{Code: "F.3d", Name: "Federal Reporter, Third Series", Class: ClassFederal, MaxVolume: 1021, FirstYear: 1993, LastYear: 2021, Variants: []string{"F. 3d", "F3d"}},
	{Code: "F.4th", Name: "Federal Reporter, Fourth Series", Class: ClassFederal, MaxVolume: 160, FirstYear: 2021, Variants: []string{"F. 4th"}},
	{Code: "F. Supp.", Name: "Federal Supplement", Class: ClassFederal, MaxVolume: 999, FirstYear: 1932, LastYear: 1998, Variants: []string{"F.Supp."}},
	{Code: "F. Supp. 2d", Name: "Federal Supplement, Second Series", Class: ClassFederal, MaxVolume: 999, FirstYear: 1998, LastYear: 2014, Variants: []string{"F.Supp.2d", "F. Supp.2d"}},
	{Code: "F. Supp. 3d", Name: "Federal Supplement, Third Series", Class: ClassFederal, MaxVolume: 800, FirstYear: 2014, Variants: []string{"F.Supp.3d"}},

	{Code: "P.", Name: "Pacific Reporter", Class: ClassRegional, MaxVolume: 300, FirstYear: 1883, LastYear: 1931},
	{Code: "P.2d", Name: "Pacific Reporter, Second Series", Class: ClassRegional, MaxVolume: 999, FirstYear: 1931, LastYear: 2000, Variants: []string{"P. 2d", "P2d"}},
	{Code: "P.3d", Name: "Pacific Reporter, Third Series", Class: ClassRegional, MaxVolume: 560, FirstYear: 2000, Variants: []string{"P. 3d", "P3d"}},
	{Code: "N.E.", Name: "North Eastern Reporter", Class: ClassRegional, MaxVolume: 200, FirstYear: 1885, LastYear: 1936},
	{Code: "N.E.2d", Name: "North Eastern Reporter, Second Series", Class: ClassRegional, MaxVolume: 999, FirstYear: 1936, LastYear: 2014, Variants: []string{"N.E. 2d"}},
	{Code: "N.E.3d", Name: "North Eastern Reporter, Third Series", Class: ClassRegional, MaxVolume: 260, FirstYear: 2014, Variants: []string{"N.E. 3d"}},
	{Code: "N.W.2d", Name: "North Western Reporter, Second Series", Class: ClassRegional, MaxVolume: 999, FirstYear: 1942, Variants: []string{"N.W. 2d"}},
	{Code: "So. 2d", Name: "Southern Reporter, Second Series", Class: ClassRegional, MaxVolume: 999, FirstYear: 1941, LastYear: 2009, Variants: []string{"So.2d"}},
	{Code: "So. 3d", Name: "Southern Reporter, Third Series", Class: ClassRegional, MaxVolume: 400, FirstYear: 2008, Variants: []string{"So.3d"}},
	{Code: "S.E.2d", Name: "South Eastern Reporter, Second Series", Class: ClassRegional, MaxVolume: 920, FirstYear: 1939, Variants: []string{"S.E. 2d"}},
	{Code: "S.W.3d", Name: "South Western Reporter, Third Series", Class: ClassRegional, MaxVolume: 700, FirstYear: 1999, Variants: []string{"S.W. 3d"}},
	{Code: "A.2d", Name: "Atlantic Reporter, Second Series", Class: ClassRegional, MaxVolume: 999, FirstYear: 1938, LastYear: 2010, Variants: []string{"A. 2d"}},
	{Code: "A.3d", Name: "Atlantic Reporter, Third Series", Class: ClassRegional, MaxVolume: 330, FirstYear: 2010, Variants: []string{"A. 3d"}},

	{Code: "Wn.", Name: "Washington Reports", Class: ClassOfficial, MaxVolume: 200, FirstYear: 1889, LastYear: 1939, Variants: []string{"Wash."}},
	{Code: "Wn.2d", Name: "Washington Reports, Second Series", Class: ClassOfficial, MaxVolume: 205, FirstYear: 1939, Variants: []string{"Wn. 2d", "Wash. 2d", "Wash.2d"}},
	{Code: "Wn. App.", Name: "Washington Appellate Reports", Class: ClassOfficial, MaxVolume: 200, FirstYear: 1969, LastYear: 2019, Variants: []string{"Wash. App.", "Wn.App."}},
	{Code: "Wn. App. 2d", Name: "Washington Appellate Reports, Second Series", Class: ClassOfficial, MaxVolume: 60, FirstYear: 2017, Variants: []string{"Wash. App. 2d", "Wn. App.2d"}},
	{Code: "Cal.", Name: "California Reports", Class: ClassOfficial, MaxVolume: 220, FirstYear: 1850, LastYear: 1934},
	{Code: "Cal. 4th", Name: "California Reports, Fourth Series", Class: ClassOfficial, MaxVolume: 63, FirstYear: 1991, LastYear: 2016, Variants: []string{"Cal.4th"}},
	{Code: "Cal. 5th", Name: "California Reports, Fifth Series", Class: ClassOfficial, MaxVolume: 20, FirstYear: 2016, Variants: []string{"Cal.5th"}},
	{Code: "Cal. App. 4th", Name: "California Appellate Reports, Fourth Series", Class: ClassOfficial, MaxVolume: 250, FirstYear: 1991, Variants: []string{"Cal.App.4th"}},
	{Code: "Cal. Rptr. 3d", Name: "West's California Reporter, Third Series", Class: ClassRegional, MaxVolume: 320, FirstYear: 2003, Variants: []string{"Cal.Rptr.3d"}},
	{Code: "N.Y.2d", Name: "New York Reports, Second Series", Class: ClassOfficial, MaxVolume: 100, FirstYear: 1956, LastYear: 2004, Variants: []string{"N.Y. 2d"}},
	{Code: "N.Y.3d", Name: "New York Reports, Third Series", Class: ClassOfficial, MaxVolume: 45, FirstYear: 2004, Variants: []string{"N.Y. 3d"}},
}

// Both are built by initializer functions, not in init(), so that other
// package-level variables (the extraction regex) can depend on them: Go
// orders variable initialization by dependency, while init() only runs
// after every variable is already initialized.
var (
	variantIndex = buildVariantIndex()
	// reporterAlt is a regex alternation over every known surface form,
	// longest first so "F. Supp. 2d" wins over "F. Supp." and "F.".
	reporterAlt = buildReporterAlt()
)

func buildVariantIndex() map[string]*Reporter {
	idx := make(map[string]*Reporter)
	for i := range reporters {
		r := &reporters[i]
		idx[foldKey(r.Code)] = r
		for _, form := range r.Variants {
			idx[foldKey(form)] = r
		}
	}
	return idx
}

func buildReporterAlt() string {
	var forms []string
	for i := range reporters {
		r := &reporters[i]
		forms = append(forms, r.Code)
		forms = append(forms, r.Variants...)
	}
	sort.Slice(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })
	escaped := make([]string, len(forms))
	for i, form := range forms {
		e := regexp.QuoteMeta(form)
		// Allow flexible whitespace between the tokens of a series name.
		escaped[i] = strings.ReplaceAll(e, ` `, `\s+`)
	}
	return strings.Join(escaped, "|")
}

// foldKey collapses the surface variation (punctuation, spacing, case) that
// never distinguishes reporter series.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '.' || r == ' ' || r == '\t' || r == '\n':
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LookupReporter resolves any known surface form of a reporter series.
func LookupReporter(s string) (*Reporter, bool) {
	r, ok := variantIndex[foldKey(strings.TrimSpace(s))]
	return r, ok
}

// NormalizeReporter maps a surface form to its canonical series code.
// Unknown series are returned cleaned up (whitespace collapsed) with ok
// false so they can still be carried through parsing and scoring.
func NormalizeReporter(s string) (string, bool) {
	if r, ok := LookupReporter(s); ok {
		return r.Code, true
	}
	return strings.Join(strings.Fields(s), " "), false
}

package cite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mkravets/citecheck/internal/model"
)

// Parser turns raw citation spans into ParsedCitations using an ordered
// rule table, most-specific-first. Parsing never panics on malformed input;
// spans that cannot be parsed yield a *model.ParseError.
type Parser struct {
	rules []patternRule

	nameRe   *regexp.Regexp
	inReRe   *regexp.Regexp
	gapRe    *regexp.Regexp
	parenRe  *regexp.Regexp
	yearRe   *regexp.Regexp
	docketRe *regexp.Regexp
	volNext  *regexp.Regexp
	markerRe *regexp.Regexp
}

// NewParser compiles the pattern set once; the parser is safe for
// concurrent use.
func NewParser() *Parser {
	p := &Parser{
		// "Roe v. Wade," or "State v. Smith," immediately before the cite.
		// The second party excludes digits so that a preceding parallel
		// citation's volume/page run is never swallowed into the name.
		nameRe: regexp.MustCompile(`([A-Z][A-Za-z0-9.,'’&\- ]{0,80}?\s+v\.?\s+[A-Z][A-Za-z.,'’&\- ]{0,80}?)[,\s]*$`),
		// "In re Marriage of Doe," style names.
		inReRe: regexp.MustCompile(`((?:In re|Matter of|Ex parte|Estate of)\s+[A-Z][A-Za-z.,'’&\- ]{0,70}?)[,\s]*$`),
		// Text allowed between the cite and its parenthetical run: pinpoint
		// lists and parallel citations, nothing sentence-like.
		gapRe:    regexp.MustCompile(`^[\s,0-9A-Za-z.'’&\-]*$`),
		parenRe:  regexp.MustCompile(`^\(([^()]{1,80})\)\s*`),
		yearRe:   regexp.MustCompile(`^(?:([A-Za-z0-9.'’&\- ]+?)\s+)?((?:17|18|19|20)\d{2})$`),
		docketRe: regexp.MustCompile(`\bNos?\.\s*([A-Za-z0-9][A-Za-z0-9:.\-–]{2,19})`),
		// A number followed by a reporter token is a parallel citation's
		// volume, not a pinpoint page.
		volNext:  regexp.MustCompile(`^\s+(?:` + reporterAlt + `|` + genericReporter + `)`),
		markerRe: regexp.MustCompile(`^[A-Z][A-Za-z0-9 .'’\-]{0,39}$`),
	}
	p.rules = defaultRules()
	return p
}

// coreParts is the mandatory volume/reporter/page triple.
type coreParts struct {
	volume       int
	reporter     string // normalized code, or cleaned unknown form
	reporterKnown bool
	page         int
}

// enrichment is everything the optional surroundings contribute.
type enrichment struct {
	name      string
	year      string
	court     string
	pinpoints []int
	dockets   []string
	markers   []string
	status    model.PublicationStatus
}

// Parse parses the citation at [start, end) in text. The span must contain
// a citation core; richer structure is recovered from the surrounding
// context via the rule table.
func (p *Parser) Parse(text string, start, end int) (*model.ParsedCitation, error) {
	if start < 0 || end > len(text) || start >= end {
		return nil, &model.ParseError{Text: "", Offset: start, Reason: "span out of range"}
	}
	cs := start - ctxBefore
	if cs < 0 {
		cs = 0
	}
	ce := end + ctxAfter
	if ce > len(text) {
		ce = len(text)
	}
	raw := model.RawCitation{
		Text:     text[start:end],
		Start:    start,
		End:      end,
		Context:  text[cs:ce],
		CtxStart: cs,
	}
	return p.parseRaw(raw)
}

// ParseDocument extracts and parses every citation span in a document.
// Unparseable spans are collected, never raised.
func (p *Parser) ParseDocument(text string) ([]*model.ParsedCitation, []*model.ParseError) {
	var (
		parsed []*model.ParsedCitation
		fails  []*model.ParseError
	)
	for _, raw := range Extract(text) {
		c, err := p.parseRaw(raw)
		if err != nil {
			if pe, ok := err.(*model.ParseError); ok {
				fails = append(fails, pe)
			} else {
				fails = append(fails, &model.ParseError{Text: raw.Text, Offset: raw.Start, Reason: err.Error()})
			}
			continue
		}
		parsed = append(parsed, c)
	}
	return parsed, fails
}

func (p *Parser) parseRaw(raw model.RawCitation) (*model.ParsedCitation, error) {
	core, err := p.parseCore(raw)
	if err != nil {
		return nil, err
	}
	enr := p.enrich(raw)

	for _, rule := range p.rules {
		if !rule.matches(core, enr) {
			continue
		}
		return p.build(rule.name, raw, core, enr), nil
	}
	// The bare rule always matches; reaching here is a rule-table bug.
	return nil, &model.ParseError{Text: raw.Text, Offset: raw.Start, Reason: "no pattern rule matched"}
}

func (p *Parser) parseCore(raw model.RawCitation) (coreParts, error) {
	m := coreRe.FindStringSubmatch(raw.Text)
	if m == nil {
		return coreParts{}, &model.ParseError{Text: raw.Text, Offset: raw.Start, Reason: "no volume/reporter/page core"}
	}
	volume, err := strconv.Atoi(m[1])
	if err != nil || volume < 1 {
		return coreParts{}, &model.ParseError{Text: raw.Text, Offset: raw.Start, Reason: "invalid volume"}
	}
	page, err := strconv.Atoi(m[3])
	if err != nil || page < 1 {
		return coreParts{}, &model.ParseError{Text: raw.Text, Offset: raw.Start, Reason: "invalid page"}
	}
	code, known := NormalizeReporter(m[2])
	return coreParts{volume: volume, reporter: code, reporterKnown: known, page: page}, nil
}

// enrich recovers optional structure from the context window: a case name
// behind the span, pinpoint pages and the trailing parenthetical run after
// it, and docket numbers anywhere nearby.
func (p *Parser) enrich(raw model.RawCitation) enrichment {
	enr := enrichment{status: model.StatusUnknown}

	before := raw.Context[:raw.Start-raw.CtxStart]
	after := raw.Context[raw.End-raw.CtxStart:]

	// Case name look-behind.
	if m := p.nameRe.FindStringSubmatch(before); m != nil {
		enr.name = strings.TrimSpace(m[1])
	} else if m := p.inReRe.FindStringSubmatch(before); m != nil {
		enr.name = strings.TrimSpace(m[1])
	}

	// Pinpoint pages: ", 283" directly after the page, stopping before any
	// parallel citation's volume.
	rest := after
	for {
		var pin int
		var consumed int
		pin, consumed = p.scanPinpoint(rest)
		if consumed == 0 {
			break
		}
		enr.pinpoints = append(enr.pinpoints, pin)
		rest = rest[consumed:]
	}

	// Trailing parenthetical run, skipping over parallel citations.
	if idx := strings.IndexByte(after, '('); idx >= 0 && idx < 120 && p.gapRe.MatchString(after[:idx]) {
		run := after[idx:]
		first := true
		for {
			m := p.parenRe.FindStringSubmatch(run)
			if m == nil {
				break
			}
			p.classifyParenthetical(m[1], first, &enr)
			run = run[len(m[0]):]
			first = false
		}
	}

	// Docket numbers anywhere in the window.
	seen := map[string]bool{}
	for _, m := range p.docketRe.FindAllStringSubmatch(raw.Context, -1) {
		d := strings.TrimRight(m[1], ".,")
		if !seen[d] {
			seen[d] = true
			enr.dockets = append(enr.dockets, d)
		}
	}

	if enr.status == model.StatusUnknown && enr.year != "" {
		enr.status = model.StatusPublished
	}
	return enr
}

// scanPinpoint consumes one leading ", NNN" if it is a pinpoint page and
// not the volume of a following parallel citation. Returns (page, bytes
// consumed), consumed == 0 when nothing was taken.
func (p *Parser) scanPinpoint(s string) (int, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	if i >= len(s) || s[i] != ',' {
		return 0, 0
	}
	i++
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i || j-i > 5 {
		return 0, 0
	}
	if p.volNext.MatchString(s[j:]) {
		return 0, 0 // volume of a parallel citation
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil || n < 1 {
		return 0, 0
	}
	return n, j
}

// classifyParenthetical sorts one trailing parenthetical into year/court,
// publication status, or a case-history marker.
func (p *Parser) classifyParenthetical(content string, first bool, enr *enrichment) {
	content = strings.TrimSpace(content)
	lower := strings.ToLower(content)

	switch {
	case strings.Contains(lower, "unpublished"):
		enr.status = model.StatusUnpublished
		return
	case strings.Contains(lower, "memorandum") || lower == "mem." || strings.HasSuffix(lower, " mem."):
		enr.status = model.StatusMemorandum
		return
	}

	if m := p.yearRe.FindStringSubmatch(content); m != nil {
		if enr.year == "" {
			enr.year = m[2]
			enr.court = strings.TrimSpace(m[1])
		}
		return
	}

	// Short labels like "Doe I" or "en banc" are history markers.
	if !first || enr.year != "" {
		if p.markerRe.MatchString(content) {
			enr.markers = append(enr.markers, content)
		}
		return
	}
	if p.markerRe.MatchString(content) {
		enr.markers = append(enr.markers, content)
	}
}

func (p *Parser) build(rule string, raw model.RawCitation, core coreParts, enr enrichment) *model.ParsedCitation {
	return &model.ParsedCitation{
		Raw:            raw,
		Reporter:       core.reporter,
		Volume:         core.volume,
		Page:           core.page,
		PinpointPages:  enr.pinpoints,
		DocketNumbers:  enr.dockets,
		HistoryMarkers: enr.markers,
		Status:         enr.status,
		Year:           enr.year,
		Court:          enr.court,
		CaseName:       enr.name,
		Rule:           rule,
		IsComplex:      len(enr.markers) > 0 || len(enr.dockets) > 0,
	}
}

package model

import "fmt"

// RawCitation is the verbatim substring matched in source text, with its
// offsets and a surrounding context window used for case-name and date
// extraction. Immutable once extracted.
type RawCitation struct {
	Text    string `json:"text"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Context string `json:"context,omitempty"` // window around the match
	// CtxStart is the offset of Context within the source document.
	CtxStart int `json:"-"`
}

// PublicationStatus classifies how an opinion was published.
type PublicationStatus string

const (
	StatusPublished   PublicationStatus = "published"
	StatusUnpublished PublicationStatus = "unpublished"
	StatusMemorandum  PublicationStatus = "memorandum"
	StatusUnknown     PublicationStatus = "unknown"
)

// ParsedCitation is the structured form of a single citation. Volume and
// page are always present for a parseable citation; everything else is
// optional enrichment.
type ParsedCitation struct {
	Raw RawCitation `json:"raw"`

	Reporter string `json:"reporter"` // normalized series code
	Volume   int    `json:"volume"`
	Page     int    `json:"page"`

	PinpointPages  []int    `json:"pinpoint_pages,omitempty"`
	DocketNumbers  []string `json:"docket_numbers,omitempty"`
	HistoryMarkers []string `json:"case_history_markers,omitempty"`

	Status PublicationStatus `json:"publication_status"`
	Year   string            `json:"year,omitempty"` // four-digit or empty
	Court  string            `json:"court,omitempty"`

	CaseName string `json:"extracted_case_name,omitempty"`

	// Rule records which pattern rule matched.
	Rule string `json:"rule,omitempty"`

	IsComplex bool `json:"is_complex"`
}

// ParseError reports a citation span that could not be parsed. It is a
// recoverable condition, never a crash: callers decide whether to drop the
// span or surface it as unverifiable.
type ParseError struct {
	Text   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable citation at offset %d: %s", e.Offset, e.Reason)
}

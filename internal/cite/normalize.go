package cite

import (
	"fmt"

	"github.com/mkravets/citecheck/internal/model"
)

// NormalizeCitation renders the canonical "volume CODE page" form used for
// comparison and cache-key construction. Two citations that differ only in
// reporter punctuation or spacing normalize identically.
func NormalizeCitation(p *model.ParsedCitation) string {
	return fmt.Sprintf("%d %s %d", p.Volume, p.Reporter, p.Page)
}

// NormalizeParts is NormalizeCitation for callers that have not built a
// ParsedCitation yet.
func NormalizeParts(volume int, reporter string, page int) string {
	code, _ := NormalizeReporter(reporter)
	return fmt.Sprintf("%d %s %d", volume, code, page)
}

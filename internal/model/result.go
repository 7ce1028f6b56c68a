package model

import "time"

// CanonicalResult is the outcome of a successful source lookup.
type CanonicalResult struct {
	CaseName string `json:"case_name"`
	Date     string `json:"date,omitempty"`
	Court    string `json:"court,omitempty"`

	// Source identifies which adapter produced the result.
	Source string `json:"source"`

	// URL is a deep link to the matched record, when the source has one.
	URL string `json:"url,omitempty"`

	// Authoritative is set when the result came from the structured
	// case-law database rather than a search fallback.
	Authoritative bool `json:"authoritative,omitempty"`

	// Agreements counts additional independent sources whose canonical
	// name agreed with this result.
	Agreements int `json:"agreements,omitempty"`
}

// VerificationRecord is the final per-cluster unit returned to callers.
// Records are created once per cluster per run and never mutated after
// being finalized.
type VerificationRecord struct {
	CitationText      string   `json:"citation_text"`
	ParallelCitations []string `json:"parallel_citations,omitempty"`

	ExtractedCaseName string `json:"extracted_case_name,omitempty"`
	ExtractedYear     string `json:"extracted_year,omitempty"`

	CanonicalName string `json:"canonical_name,omitempty"`
	CanonicalDate string `json:"canonical_date,omitempty"`
	Court         string `json:"court,omitempty"`
	Source        string `json:"canonical_source,omitempty"`
	URL           string `json:"url,omitempty"`

	Verified    bool    `json:"verified"`
	Confidence  float64 `json:"confidence"`
	Likelihood  float64 `json:"likelihood"`
	Explanation string  `json:"explanation"`

	Cluster *CitationCluster `json:"cluster,omitempty"`
}

// Report is a whole document's verification output, in document order.
type Report struct {
	DocumentID string    `json:"document_id"`
	CheckedAt  time.Time `json:"checked_at"`

	Records []*VerificationRecord `json:"records"`

	Stats ReportStats `json:"stats"`

	// Degraded is set when infrastructure (e.g. the cache store) was
	// unavailable and the run continued without it.
	Degraded bool `json:"degraded,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"`
}

// ReportStats summarizes a report.
type ReportStats struct {
	Citations   int `json:"citations"`
	Clusters    int `json:"clusters"`
	Verified    int `json:"verified"`
	Unverified  int `json:"unverified"`
	Unparseable int `json:"unparseable"`
}

// LLMSummary is an optional model-generated narrative. It is produced after
// scoring and never affects verified/confidence values.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

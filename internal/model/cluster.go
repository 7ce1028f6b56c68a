package model

// CitationCluster groups parallel citations believed to reference one case.
// Clusters are disjoint: every ParsedCitation belongs to exactly one cluster
// for a given document.
type CitationCluster struct {
	// Index is the cluster's position in document order (by first offset).
	Index int `json:"index"`

	Citations []*ParsedCitation `json:"citations"`

	// Primary is the representative citation, chosen by reporter priority
	// (official over regional/unofficial), ties broken by text order.
	Primary *ParsedCitation `json:"primary"`
}

// CaseName returns the first non-empty extracted case name in the cluster.
func (c *CitationCluster) CaseName() string {
	if c.Primary != nil && c.Primary.CaseName != "" {
		return c.Primary.CaseName
	}
	for _, cit := range c.Citations {
		if cit.CaseName != "" {
			return cit.CaseName
		}
	}
	return ""
}

// Year returns the first non-empty extracted year in the cluster.
func (c *CitationCluster) Year() string {
	if c.Primary != nil && c.Primary.Year != "" {
		return c.Primary.Year
	}
	for _, cit := range c.Citations {
		if cit.Year != "" {
			return cit.Year
		}
	}
	return ""
}

// ParallelTexts returns the raw texts of non-primary citations.
func (c *CitationCluster) ParallelTexts() []string {
	var out []string
	for _, cit := range c.Citations {
		if cit != c.Primary {
			out = append(out, cit.Raw.Text)
		}
	}
	return out
}

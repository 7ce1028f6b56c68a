// Package cluster groups parallel citations of the same case into one
// logical unit so the verifier resolves each case once.
package cluster

import (
	"sort"

	"github.com/mkravets/citecheck/internal/cite"
	"github.com/mkravets/citecheck/internal/model"
)

// Clusterer partitions parsed citations into disjoint clusters. Two
// citations join the same cluster when they sit within MaxGapChars of each
// other in the source text and their case-name/year fields are compatible
// (absent values are compatible with anything).
type Clusterer struct {
	maxGap int
}

// New creates a Clusterer; maxGap <= 0 selects the default window.
func New(maxGap int) *Clusterer {
	if maxGap <= 0 {
		maxGap = 80
	}
	return &Clusterer{maxGap: maxGap}
}

// Cluster partitions the input. The input is stably sorted by text offset
// first, so clustering is deterministic for a fixed input: re-running on
// the same citations yields identical clusters, and every citation appears
// in exactly one cluster.
func (c *Clusterer) Cluster(citations []*model.ParsedCitation) []*model.CitationCluster {
	if len(citations) == 0 {
		return nil
	}

	ordered := make([]*model.ParsedCitation, len(citations))
	copy(ordered, citations)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Raw.Start < ordered[j].Raw.Start
	})

	var clusters []*model.CitationCluster
	current := []*model.ParsedCitation{ordered[0]}

	for _, cit := range ordered[1:] {
		prev := current[len(current)-1]
		if cit.Raw.Start-prev.Raw.End <= c.maxGap && compatible(current, cit) {
			current = append(current, cit)
			continue
		}
		clusters = append(clusters, finalize(current, len(clusters)))
		current = []*model.ParsedCitation{cit}
	}
	clusters = append(clusters, finalize(current, len(clusters)))
	return clusters
}

// compatible reports whether a citation's name and year agree with every
// member of the open cluster. Nil/empty fields match anything.
func compatible(members []*model.ParsedCitation, cit *model.ParsedCitation) bool {
	for _, m := range members {
		if cit.CaseName != "" && m.CaseName != "" && cit.CaseName != m.CaseName {
			return false
		}
		if cit.Year != "" && m.Year != "" && cit.Year != m.Year {
			return false
		}
	}
	return true
}

// finalize picks the representative citation and marks complexity. The
// representative is the member with the best reporter class (official >
// federal > regional > other); ties go to first appearance in text.
func finalize(members []*model.ParsedCitation, index int) *model.CitationCluster {
	primary := members[0]
	best := classOf(primary)
	for _, m := range members[1:] {
		if cl := classOf(m); cl < best {
			primary = m
			best = cl
		}
	}
	if len(members) > 1 {
		for _, m := range members {
			m.IsComplex = true
		}
	}
	return &model.CitationCluster{
		Index:     index,
		Citations: members,
		Primary:   primary,
	}
}

func classOf(cit *model.ParsedCitation) cite.ReporterClass {
	if r, ok := cite.LookupReporter(cit.Reporter); ok {
		return r.Class
	}
	return cite.ClassOther
}

// Key returns the cache key material for a cluster: its representative
// citation in normalized form.
func Key(c *model.CitationCluster) string {
	return cite.NormalizeCitation(c.Primary)
}

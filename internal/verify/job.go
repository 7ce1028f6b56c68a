package verify

import (
	"context"
	"strings"

	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/worker"
)

// clusterJob wraps one cluster for the worker pool.
type clusterJob struct {
	verifier *Verifier
	cluster  *model.CitationCluster
}

func (j *clusterJob) Execute(ctx context.Context) worker.Result {
	return &clusterResult{
		index:  j.cluster.Index,
		record: j.verifier.VerifyCluster(ctx, j.cluster),
	}
}

// clusterResult carries the finished record back out of the pool.
type clusterResult struct {
	index  int
	record *model.VerificationRecord
}

func (r *clusterResult) GetError() error { return nil }

// VerifyBatch fans the clusters out over a bounded worker pool and
// reassembles the records in document order. When the batch deadline
// expires, clusters the pool never reached still get a record, scored on
// citation format alone. The second return value reports whether any
// cluster was degraded that way.
func (v *Verifier) VerifyBatch(ctx context.Context, clusters []*model.CitationCluster) ([]*model.VerificationRecord, bool) {
	if len(clusters) == 0 {
		return nil, false
	}

	if v.cfg.Concurrency.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.Concurrency.Deadline)
		defer cancel()
	}

	pool := worker.NewPool(ctx, v.cfg.Concurrency.Workers)
	pool.Start()

	// Submission runs alongside draining: the pool's queues are bounded,
	// so a large document would stall the workers if results piled up
	// unread while every cluster was submitted first.
	go func() {
		for _, cl := range clusters {
			pool.Submit(&clusterJob{verifier: v, cluster: cl})
		}
		pool.Close()
	}()

	byIndex := make(map[int]*model.VerificationRecord, len(clusters))
	for r := range pool.Results() {
		cr := r.(*clusterResult)
		byIndex[cr.index] = cr.record
	}

	degraded := false
	records := make([]*model.VerificationRecord, 0, len(clusters))
	for _, cl := range clusters {
		rec, ok := byIndex[cl.Index]
		if !ok {
			// dropped by cancellation before a worker picked it up
			likelihood, likNote := v.scorer.Likelihood(cl.Primary)
			rec = v.finalize(cl, nil, likelihood, likNote, true)
		}
		if !ok || isDeadlineRecord(rec) {
			degraded = true
		}
		records = append(records, rec)
	}
	return records, degraded
}

const deadlinePrefix = "processing deadline reached"

func isDeadlineRecord(rec *model.VerificationRecord) bool {
	return strings.HasPrefix(rec.Explanation, deadlinePrefix)
}

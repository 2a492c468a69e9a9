// Package consensus converts raw vote counts plus cross-cluster support
// into a single consensus-adjusted ranking score for published issues.
package consensus

import (
	"math"

	"github.com/newsarena/factgraph/internal/model"
)

// Score derives the bridging score for one issue from its current vote
// set. It is a pure function of the votes and is recomputed on demand,
// never cached across vote mutations.
//
//	Score = log(TotalVotes) × (1 + ConsensusFactor)
//	ConsensusFactor = 1 / (1 + variance(per-cluster totals))
//
// An issue whose weights sum below 1 is not scored (Ranked = false).
// Support concentrated in a single cluster is treated as the vector
// [total, 0], so a lone cluster yields the same (minimal) factor as full
// concentration across two clusters, and evening support out across
// clusters can only lower the variance and therefore never lowers the
// score.
func Score(issueID string, votes []model.Vote) model.ConsensusScore {
	totals := make(map[string]float64)
	var total float64
	for _, v := range votes {
		if v.Weight <= 0 {
			continue
		}
		totals[v.Cluster] += v.Weight
		total += v.Weight
	}

	if total < 1 {
		return model.ConsensusScore{IssueID: issueID}
	}

	perCluster := make([]float64, 0, len(totals)+1)
	for _, w := range totals {
		perCluster = append(perCluster, w)
	}
	if len(perCluster) == 1 {
		perCluster = append(perCluster, 0)
	}

	factor := 1 / (1 + variance(perCluster))
	return model.ConsensusScore{
		IssueID:    issueID,
		TotalVotes: total,
		Factor:     factor,
		Score:      math.Log(total) * (1 + factor),
		Ranked:     true,
	}
}

// variance is the population variance.
func variance(xs []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / n
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss / n
}

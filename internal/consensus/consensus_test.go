package consensus

import (
	"math"
	"testing"

	"github.com/newsarena/factgraph/internal/model"
)

func votes(issue string, clusterWeights map[string]float64) []model.Vote {
	var out []model.Vote
	for cluster, w := range clusterWeights {
		out = append(out, model.Vote{IssueID: issue, Cluster: cluster, Weight: w})
	}
	return out
}

func TestScore_ZeroVotesUnranked(t *testing.T) {
	got := Score("i1", nil)
	if got.Ranked {
		t.Error("issue with no votes must be unranked")
	}
	if got.Score != 0 {
		t.Errorf("unranked score must be 0, got %f", got.Score)
	}
}

func TestScore_EvenSplitBeatsConcentration(t *testing.T) {
	even := Score("i1", votes("i1", map[string]float64{"a": 10, "b": 10}))
	lone := Score("i1", votes("i1", map[string]float64{"a": 20}))

	if !even.Ranked || !lone.Ranked {
		t.Fatal("both issues must be ranked")
	}
	if even.TotalVotes != lone.TotalVotes {
		t.Fatalf("fixture broken: totals differ (%f vs %f)", even.TotalVotes, lone.TotalVotes)
	}
	if even.Score < lone.Score {
		t.Errorf("even split must score >= concentrated: %f < %f", even.Score, lone.Score)
	}
	if even.Factor != 1 {
		t.Errorf("perfectly even split has zero variance, factor = %f, want 1", even.Factor)
	}
	if lone.Factor >= even.Factor {
		t.Errorf("single-cluster factor %f must be below even-split factor %f", lone.Factor, even.Factor)
	}
}

func TestScore_MonotoneUnderRedistribution(t *testing.T) {
	// Fixed total of 30, progressively more even across three clusters.
	steps := []map[string]float64{
		{"a": 30},
		{"a": 24, "b": 6},
		{"a": 18, "b": 12},
		{"a": 12, "b": 12, "c": 6},
		{"a": 10, "b": 10, "c": 10},
	}
	prev := math.Inf(-1)
	for i, weights := range steps {
		got := Score("i1", votes("i1", weights))
		if got.Score < prev {
			t.Errorf("step %d: score decreased on more even distribution: %f < %f", i, got.Score, prev)
		}
		prev = got.Score
	}
}

func TestScore_ExactValue(t *testing.T) {
	// Two clusters, 5 votes each: variance 0, factor 1, score = ln(10)*2.
	got := Score("i1", votes("i1", map[string]float64{"a": 5, "b": 5}))
	want := math.Log(10) * 2
	if math.Abs(got.Score-want) > 1e-12 {
		t.Errorf("score = %f, want %f", got.Score, want)
	}
}

func TestScore_IgnoresNonPositiveWeights(t *testing.T) {
	got := Score("i1", []model.Vote{
		{IssueID: "i1", Cluster: "a", Weight: 2},
		{IssueID: "i1", Cluster: "b", Weight: 0},
		{IssueID: "i1", Cluster: "b", Weight: -3},
	})
	if got.TotalVotes != 2 {
		t.Errorf("total = %f, want 2", got.TotalVotes)
	}
}

func TestScore_RecomputedFromCurrentVotes(t *testing.T) {
	vs := votes("i1", map[string]float64{"a": 4})
	before := Score("i1", vs)
	vs = append(vs, model.Vote{IssueID: "i1", Cluster: "b", Weight: 4})
	after := Score("i1", vs)

	if after.Score <= before.Score {
		t.Errorf("adding cross-cluster support must raise the score: %f <= %f", after.Score, before.Score)
	}
}

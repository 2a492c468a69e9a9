// Package hexmetrics computes the six bounded scores that summarize one
// completed isolation session: three from graph structure, three from a
// qualitative-assessment collaborator constrained by a rubric.
package hexmetrics

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/newsarena/factgraph/internal/kgraph"
	"github.com/newsarena/factgraph/internal/model"
)

// maxCountedPaths bounds the multi-hop path census; exhaustive counting is
// exponential on dense graphs and the metric saturates at 100 long before
// the cap anyway.
const maxCountedPaths = 10000

// Judge is the qualitative-assessment collaborator. Its output is
// untrusted: the engine validates the range, retries once, then defaults.
type Judge interface {
	Judge(ctx context.Context, rubric, payload string) (float64, error)
}

// Input is everything the engine needs for one scoring pass.
type Input struct {
	Triplets       []model.Triplet       // The session's full isolated graph
	Query          string                // The user's question / draft focus
	Contradictions []model.Contradiction // Output of the session compare
}

// Engine computes hex scores. Judged metrics degrade to 0 (with a logged
// reason) when the collaborator misbehaves; no field is ever omitted.
type Engine struct {
	judge  Judge
	logger *zap.Logger
}

// NewEngine creates a metrics engine. A nil judge scores the three judged
// metrics as 0.
func NewEngine(judge Judge, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{judge: judge, logger: logger}
}

// Compute produces the full HexScore for one isolated graph and query.
func (e *Engine) Compute(ctx context.Context, in Input) model.HexScore {
	score := model.HexScore{
		Connectivity: Connectivity(in.Triplets),
		Depth:        Depth(in.Triplets),
		Density:      Density(in.Triplets, in.Query),
	}

	payload := buildPayload(in)
	score.Factuality = e.judged(ctx, "factuality", rubricFactuality, payload)
	score.Originality = e.judged(ctx, "originality", rubricOriginality, payload)
	score.Insight = e.judged(ctx, "insight", rubricInsight, payload)

	return score
}

// Connectivity = min(100, (R/N) * 10).
func Connectivity(triplets []model.Triplet) float64 {
	n := float64(nodeCount(triplets))
	if n == 0 {
		return 0
	}
	r := float64(len(triplets))
	return clamp(r / n * 10)
}

// Depth = min(100, paths(hop-length >= 2) * 5).
func Depth(triplets []model.Triplet) float64 {
	return clamp(float64(countMultiHopPaths(triplets)) * 5)
}

// Density = (R_result / unique_node_count_in_result) * 20 over the
// query-relevant subgraph, not the whole graph.
func Density(triplets []model.Triplet, query string) float64 {
	result := relevantSubgraph(triplets, query)
	n := float64(nodeCount(result))
	if n == 0 {
		return 0
	}
	return clamp(float64(len(result)) / n * 20)
}

// judged asks the collaborator for one metric, validating the returned
// value into [0,100]. One retry, then default 0 with a logged reason.
func (e *Engine) judged(ctx context.Context, name, rubric, payload string) float64 {
	if e.judge == nil {
		e.logger.Warn("no judge configured, metric defaults to 0", zap.String("metric", name))
		return 0
	}
	for attempt := 0; attempt < 2; attempt++ {
		v, err := e.judge.Judge(ctx, rubric, payload)
		if err != nil {
			e.logger.Warn("judge call failed",
				zap.String("metric", name), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if v < 0 || v > 100 {
			e.logger.Warn("judge returned out-of-range score",
				zap.String("metric", name), zap.Int("attempt", attempt),
				zap.Float64("value", v), zap.Error(model.ErrOutOfRangeScore))
			continue
		}
		return v
	}
	e.logger.Warn("metric defaulted after retry", zap.String("metric", name))
	return 0
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func nodeCount(triplets []model.Triplet) int {
	nodes := map[string]struct{}{}
	for _, t := range triplets {
		nodes[kgraph.Fold(t.Subject)] = struct{}{}
		nodes[kgraph.Fold(t.Object)] = struct{}{}
	}
	return len(nodes)
}

// countMultiHopPaths counts distinct simple directed paths with at least
// two edges, capped at maxCountedPaths.
func countMultiHopPaths(triplets []model.Triplet) int {
	adj := map[string][]string{}
	for _, t := range triplets {
		s, o := kgraph.Fold(t.Subject), kgraph.Fold(t.Object)
		adj[s] = append(adj[s], o)
	}

	count := 0
	var walk func(node string, hops int, onPath map[string]bool)
	walk = func(node string, hops int, onPath map[string]bool) {
		if count >= maxCountedPaths {
			return
		}
		if hops >= 2 {
			count++
		}
		onPath[node] = true
		for _, next := range adj[node] {
			if !onPath[next] {
				walk(next, hops+1, onPath)
			}
		}
		delete(onPath, node)
	}
	for start := range adj {
		walk(start, 0, map[string]bool{})
	}
	return count
}

// relevantSubgraph keeps triplets whose subject or object overlaps the
// query text.
func relevantSubgraph(triplets []model.Triplet, query string) []model.Triplet {
	folded := kgraph.Fold(query)
	if folded == "" {
		return nil
	}
	var out []model.Triplet
	for _, t := range triplets {
		if strings.Contains(folded, kgraph.Fold(t.Subject)) ||
			strings.Contains(folded, kgraph.Fold(t.Object)) {
			out = append(out, t)
		}
	}
	return out
}

func buildPayload(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nGraph triplets:\n", in.Query)
	for _, t := range in.Triplets {
		fmt.Fprintf(&b, "- [%s] (%s, %s, %s)\n", t.Label, t.Subject, t.Relation, t.Object)
	}
	if len(in.Contradictions) > 0 {
		b.WriteString("\nDetected contradictions:\n")
		for _, c := range in.Contradictions {
			fmt.Fprintf(&b, "- %s\n", c.Explanation)
		}
	}
	return b.String()
}

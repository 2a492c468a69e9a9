package model

// HexScore holds the six bounded metrics computed for one completed
// isolation session. Every field is normalized to [0,100]; a metric that
// cannot be computed is 0, never omitted.
type HexScore struct {
	Connectivity float64 `json:"connectivity"` // Structural: relationship-to-node ratio
	Factuality   float64 `json:"factuality"`   // Judged: density of checkable triplets
	Depth        float64 `json:"depth"`        // Structural: multi-hop path count
	Originality  float64 `json:"originality"`  // Judged: contribution beyond prior knowledge
	Density      float64 `json:"density"`      // Structural: density of the query-relevant subgraph
	Insight      float64 `json:"insight"`      // Judged: relevance of facts to the question
}

// Average returns the arithmetic mean of the six metrics.
func (h HexScore) Average() float64 {
	return (h.Connectivity + h.Factuality + h.Depth + h.Originality + h.Density + h.Insight) / 6
}

package model

// Issue is a published claim plus its verification artifacts.
// Issues receive votes post-publication.
type Issue struct {
	ID    string            `json:"id"`
	Claim Claim             `json:"claim"`
	Hex   HexScore          `json:"hex"`
	Trace VerificationTrace `json:"trace"`
}

// Vote is one weighted community vote on an issue. Cluster is an externally
// supplied partition label of the voter population; the core treats it as
// opaque.
type Vote struct {
	IssueID string  `json:"issue_id"`
	Cluster string  `json:"cluster"`
	Weight  float64 `json:"weight"`
}

// ConsensusScore is derived on demand from the current vote set; it is never
// persisted as a source of truth independently of the votes that produced it.
type ConsensusScore struct {
	IssueID    string  `json:"issue_id"`
	TotalVotes float64 `json:"total_votes"`
	Factor     float64 `json:"consensus_factor"` // Inverse-variance spread measure
	Score      float64 `json:"score"`
	Ranked     bool    `json:"ranked"` // False when the issue has no votes
}

// VerificationReport is the user-visible result of one verification run:
// the verdict plus every artifact needed to audit it, with explicit markers
// for any degraded inputs.
type VerificationReport struct {
	Claim          Claim             `json:"claim"`
	Verdict        Verdict           `json:"verdict"`
	Hex            HexScore          `json:"hex"`
	Contradictions []Contradiction   `json:"contradictions,omitempty"`
	Trace          VerificationTrace `json:"trace"`
	Hits           []RetrievalHit    `json:"hits,omitempty"`

	// Unverifiable lists documents whose extraction failed and were
	// excluded from the graph ("2 of 5 sources unverifiable").
	Unverifiable []string `json:"unverifiable,omitempty"`

	// InsufficientEvidence is set when the session held zero verified
	// triplets; distinct from a clean no-contradiction result.
	InsufficientEvidence bool `json:"insufficient_evidence,omitempty"`
}

package model

// Claim is the user-submitted atomic unit under verification.
type Claim struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ToolKind is the closed set of tools a sub-claim can be routed to.
// Classification is a single categorical decision; there is no hybrid routing.
type ToolKind string

const (
	ToolKnowledgeSearch ToolKind = "knowledge_search" // Retrieval + graph comparison
	ToolCodeInterpreter ToolKind = "code_interpreter" // Sandboxed statistical/logical check
)

// Outcome is the terminal disposition of a sub-claim.
type Outcome string

const (
	OutcomeResolved    Outcome = "resolved"     // Tool produced evidence and a confidence
	OutcomeToolFailure Outcome = "tool_failure" // Collaborator error or timeout; confidence forced to 0
	OutcomeCancelled   Outcome = "cancelled"    // Verification cancelled while in flight
)

// Verdict is the aggregate result of verifying a claim.
type Verdict string

const (
	VerdictSupported    Verdict = "supported"    // Confident, contradiction-free resolution
	VerdictDisputed     Verdict = "disputed"     // Resolved but contradicted or low confidence
	VerdictInconclusive Verdict = "inconclusive" // Root decomposition failed
	VerdictCancelled    Verdict = "cancelled"    // Caller cancelled mid-verification
)

// SubClaim is one atomic checkable fact produced by decomposition.
// Created during decomposition, mutated only by the verifier assigning
// confidence and outcome, terminal once confidence passes the threshold or
// the depth bound is reached.
type SubClaim struct {
	ID         string   `json:"id"`
	ParentID   string   `json:"parent_id,omitempty"` // Empty for root-level sub-claims
	Text       string   `json:"text"`
	Depth      int      `json:"depth"`
	Tool       ToolKind `json:"tool,omitempty"`
	Confidence float64  `json:"confidence"` // In [0,1]
	Outcome    Outcome  `json:"outcome,omitempty"`
	Evidence   string   `json:"evidence,omitempty"` // Evidence payload summary
}

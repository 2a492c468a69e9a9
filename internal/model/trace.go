package model

import "time"

// TraceEntry records one sub-claim resolution, in the order resolved.
type TraceEntry struct {
	Seq        int      `json:"seq"`
	SubClaimID string   `json:"sub_claim_id"`
	ParentID   string   `json:"parent_id,omitempty"`
	Text       string   `json:"text"`
	Depth      int      `json:"depth"`
	Tool       ToolKind `json:"tool,omitempty"`
	Evidence   string   `json:"evidence,omitempty"`
	Confidence float64  `json:"confidence"`
	Outcome    Outcome  `json:"outcome"`
	At         time.Time `json:"at"`
}

// VerificationTrace is the externally visible audit artifact: an ordered,
// append-only record of every sub-claim resolution and tool invocation.
// Immutable once the session completes.
type VerificationTrace struct {
	ID      string       `json:"id"`
	ClaimID string       `json:"claim_id"`
	Entries []TraceEntry `json:"entries"`

	// Partial marks traces cut short by cancellation or collaborator
	// outage; Reason says why. A partial trace is never presented as
	// a complete one.
	Partial bool   `json:"partial,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ToolFailures counts entries that ended in a tool failure.
func (t *VerificationTrace) ToolFailures() int {
	n := 0
	for _, e := range t.Entries {
		if e.Outcome == OutcomeToolFailure {
			n++
		}
	}
	return n
}

// Terminal returns the last entry, or false when the trace is empty.
func (t *VerificationTrace) Terminal() (TraceEntry, bool) {
	if len(t.Entries) == 0 {
		return TraceEntry{}, false
	}
	return t.Entries[len(t.Entries)-1], true
}

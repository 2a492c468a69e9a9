package model

import "errors"

// Failure taxonomy. Failures scoped to one sub-claim or one document are
// recorded and the computation proceeds with reduced evidence; only
// cancellation or an unrecoverable collaborator outage aborts a whole
// verification.
var (
	// ErrInsufficientEvidence: no verified triplets to compare against.
	// Not a negative verdict.
	ErrInsufficientEvidence = errors.New("insufficient evidence: no verified triplets in session")

	// ErrToolFailure: external collaborator error or timeout on one sub-claim.
	ErrToolFailure = errors.New("tool failure")

	// ErrExtractionFailure: a document could not be turned into triplets.
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrOutOfRangeScore: collaborator returned an invalid metric value.
	ErrOutOfRangeScore = errors.New("out-of-range score from collaborator")

	// ErrInconclusive: root decomposition failed entirely.
	ErrInconclusive = errors.New("inconclusive: claim decomposition failed")

	// ErrSessionClosed: operation attempted on a closed isolation session.
	ErrSessionClosed = errors.New("isolation session closed")
)

package model

// SourceLabel marks which population a triplet came from.
// Every triplet in an isolated graph carries exactly one of the two labels.
type SourceLabel string

const (
	LabelVerifiedSource SourceLabel = "verified_source" // Extracted from prior verified coverage
	LabelDraft          SourceLabel = "draft"           // Extracted from the user's draft
)

// RawTriple is a bare (subject, relation, object) fact as returned by the
// extraction collaborator, before labeling.
type RawTriple struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// Triplet is an immutable labeled fact inside one isolation session.
// Entities are stored normalized (case/whitespace-folded).
type Triplet struct {
	Subject    string      `json:"subject"`
	Relation   string      `json:"relation"`
	Object     string      `json:"object"`
	Label      SourceLabel `json:"label"`
	DocumentID string      `json:"document_id,omitempty"` // Source document reference
}

// Contradiction pairs a verified triplet with a draft triplet that share a
// subject and an equivalent relation but disagree on the object value.
type Contradiction struct {
	Verified    Triplet `json:"verified"`
	Draft       Triplet `json:"draft"`
	Attribute   string  `json:"attribute"`   // The relation the two triplets disagree on
	Explanation string  `json:"explanation"` // Human-readable description of the conflict
}

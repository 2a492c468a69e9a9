package kgraph

import (
	"context"
	"fmt"

	"github.com/newsarena/factgraph/internal/model"
)

// Compare inspects every (VerifiedSource, Draft) triplet pair in the
// session that shares a subject and an equivalent relation, and emits a
// Contradiction for each pair whose object values differ after
// normalization.
//
// A session with zero VerifiedSource triplets returns
// model.ErrInsufficientEvidence: that is an explicit "cannot judge" state,
// distinct from a clean no-contradiction result.
func (s *Session) Compare(ctx context.Context) ([]model.Contradiction, error) {
	verified, err := s.Triplets(ctx, model.LabelVerifiedSource)
	if err != nil {
		return nil, err
	}
	if len(verified) == 0 {
		return nil, model.ErrInsufficientEvidence
	}

	drafts, err := s.Triplets(ctx, model.LabelDraft)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[string][]model.Triplet, len(verified))
	for _, v := range verified {
		bySubject[v.Subject] = append(bySubject[v.Subject], v)
	}

	var out []model.Contradiction
	for _, d := range drafts {
		for _, v := range bySubject[d.Subject] {
			if !RelationsEquivalent(v.Relation, d.Relation) {
				continue
			}
			conflict, why := ObjectsConflict(v.Object, d.Object)
			if !conflict {
				continue
			}
			out = append(out, model.Contradiction{
				Verified:  v,
				Draft:     d,
				Attribute: v.Relation,
				Explanation: fmt.Sprintf("draft states %q for %s of %q but verified coverage states %q (%s)",
					d.Object, v.Relation, v.Subject, v.Object, why),
			})
		}
	}
	return out, nil
}

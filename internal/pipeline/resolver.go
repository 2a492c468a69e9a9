package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/newsarena/factgraph/internal/kgraph"
	"github.com/newsarena/factgraph/internal/model"
)

// rubricSupport grades how strongly retrieved coverage supports one
// sub-claim. Same 0..100 bare-number contract as the hex rubrics.
const rubricSupport = `You grade how strongly the retrieved evidence supports the claim.
100 means the evidence states the claim outright, 50 means partial or
indirect support, 0 means no support or the evidence contradicts the
claim. Respond with a single number between 0 and 100 and nothing else.`

// knowledgeResolver is the KnowledgeSearch tool: it re-retrieves coverage
// for the sub-claim, checks it against the session's contradictions, and
// grades support through the judging collaborator.
type knowledgeResolver struct {
	p              *Pipeline
	contradictions []model.Contradiction
}

// Resolve implements verify.Resolver.
func (r *knowledgeResolver) Resolve(ctx context.Context, subClaim string) (string, float64, error) {
	// A sub-claim touching an already-contradicted subject resolves low
	// without another retrieval round.
	folded := kgraph.Fold(subClaim)
	for _, c := range r.contradictions {
		if strings.Contains(folded, c.Verified.Subject) {
			return c.Explanation, 0.1, nil
		}
	}

	hits, err := r.p.retrieve(ctx, subClaim)
	if err != nil {
		return "", 0, err
	}
	if len(hits) == 0 {
		return "no prior coverage found", 0.2, nil
	}

	var (
		ids  []string
		text strings.Builder
	)
	for _, h := range hits {
		doc, err := r.p.deps.Docs.Get(ctx, h.DocumentID)
		if err != nil {
			continue
		}
		ids = append(ids, doc.ID)
		fmt.Fprintf(&text, "[%s] %s\n", doc.ID, doc.Text)
	}
	if len(ids) == 0 {
		return "retrieved documents unavailable", 0.2, nil
	}

	payload := fmt.Sprintf("Claim: %s\n\nEvidence:\n%s", subClaim, text.String())
	grade, err := r.p.deps.Reasoner.Judge(ctx, rubricSupport, payload)
	if err != nil {
		return "", 0, fmt.Errorf("grade support: %w", err)
	}
	if grade < 0 {
		grade = 0
	}
	if grade > 100 {
		grade = 100
	}

	evidence := fmt.Sprintf("graded %d/100 against %s", int(grade), strings.Join(ids, ", "))
	return evidence, grade / 100, nil
}

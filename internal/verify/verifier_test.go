package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newsarena/factgraph/internal/model"
)

type fakeDecomposer struct {
	root      []string
	rootErr   error
	refined   map[string][]string // keyed by sub-claim text
	refineErr error
}

func (d *fakeDecomposer) Decompose(_ context.Context, _ string) ([]string, error) {
	return d.root, d.rootErr
}

func (d *fakeDecomposer) Refine(_ context.Context, claim, _ string) ([]string, error) {
	if d.refineErr != nil {
		return nil, d.refineErr
	}
	return d.refined[claim], nil
}

type fixedClassifier struct{ kind model.ToolKind }

func (c fixedClassifier) Classify(_ context.Context, _ string) (model.ToolKind, error) {
	return c.kind, nil
}

// confResolver returns a confidence per sub-claim text, default 0.9.
type confResolver struct {
	conf map[string]float64
	errs map[string]error
}

func (r *confResolver) Resolve(_ context.Context, subClaim string) (string, float64, error) {
	if err := r.errs[subClaim]; err != nil {
		return "", 0, err
	}
	if c, ok := r.conf[subClaim]; ok {
		return "evidence for " + subClaim, c, nil
	}
	return "evidence for " + subClaim, 0.9, nil
}

func newTestVerifier(dec Decomposer, res Resolver) *Verifier {
	cfg := model.VerifyConfig{MaxDepth: 3, Threshold: 0.8, FanOut: 2}
	return New(dec, fixedClassifier{kind: model.ToolKnowledgeSearch}, res, res, cfg, nil)
}

func TestVerify_HighConfidenceTerminatesAtDepthZero(t *testing.T) {
	dec := &fakeDecomposer{root: []string{"fact a", "fact b"}}
	v := newTestVerifier(dec, &confResolver{})

	verdict, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "claim"})

	if verdict != model.VerdictSupported {
		t.Errorf("verdict = %s, want supported", verdict)
	}
	if len(trace.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(trace.Entries))
	}
	for _, e := range trace.Entries {
		if e.Depth != 0 || e.Outcome != model.OutcomeResolved || e.Confidence < 0.8 {
			t.Errorf("unexpected entry: %+v", e)
		}
		if e.Tool == "" {
			t.Errorf("entry missing tool provenance: %+v", e)
		}
	}
	if trace.Partial {
		t.Error("complete run must not be marked partial")
	}
}

func TestVerify_DepthBoundTerminatesRecursion(t *testing.T) {
	// Every resolution returns 0.5 < threshold; every refinement yields one
	// child. Recursion must stop once depth reaches MaxDepth = 3.
	dec := &fakeDecomposer{
		root: []string{"d0"},
		refined: map[string][]string{
			"d0": {"d1"},
			"d1": {"d2"},
			"d2": {"d3"},
			"d3": {"d4"}, // must never be requested
		},
	}
	res := &confResolver{conf: map[string]float64{
		"d0": 0.5, "d1": 0.5, "d2": 0.5, "d3": 0.5, "d4": 0.5,
	}}
	v := newTestVerifier(dec, res)

	verdict, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "claim"})

	if verdict != model.VerdictDisputed {
		t.Errorf("verdict = %s, want disputed", verdict)
	}
	if len(trace.Entries) != 4 { // d0..d3
		t.Fatalf("expected 4 entries (depth 0..3), got %d", len(trace.Entries))
	}
	last := trace.Entries[len(trace.Entries)-1]
	if last.Depth != 3 {
		t.Errorf("terminal depth = %d, want 3", last.Depth)
	}
	if last.Confidence != 0.5 || last.Outcome != model.OutcomeResolved {
		t.Errorf("depth-3 entry must terminate with its confidence, got %+v", last)
	}
	for _, e := range trace.Entries {
		if strings.Contains(e.Text, "d4") {
			t.Error("recursion exceeded MaxDepth")
		}
	}
}

func TestVerify_ToolFailureDoesNotAbortSiblings(t *testing.T) {
	dec := &fakeDecomposer{root: []string{"good", "bad"}}
	res := &confResolver{errs: map[string]error{"bad": errors.New("collaborator down")}}
	v := newTestVerifier(dec, res)

	_, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "claim"})

	if len(trace.Entries) != 2 {
		t.Fatalf("expected both siblings in trace, got %d entries", len(trace.Entries))
	}
	var failures, resolved int
	for _, e := range trace.Entries {
		switch e.Outcome {
		case model.OutcomeToolFailure:
			failures++
			if e.Confidence != 0 {
				t.Errorf("tool failure must carry confidence 0, got %f", e.Confidence)
			}
		case model.OutcomeResolved:
			resolved++
		}
	}
	if failures != 1 || resolved != 1 {
		t.Errorf("expected 1 failure and 1 resolved, got %d/%d", failures, resolved)
	}
}

func TestVerify_RootDecompositionFailureIsInconclusive(t *testing.T) {
	dec := &fakeDecomposer{rootErr: errors.New("model refused")}
	v := newTestVerifier(dec, &confResolver{})

	verdict, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "claim"})

	if verdict != model.VerdictInconclusive {
		t.Errorf("verdict = %s, want inconclusive", verdict)
	}
	if !trace.Partial {
		t.Error("inconclusive trace must be marked partial with a reason")
	}
}

func TestVerify_UndecomposableClaimBecomesSingleSubClaim(t *testing.T) {
	dec := &fakeDecomposer{root: nil} // empty, not an error
	v := newTestVerifier(dec, &confResolver{})

	_, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "the whole claim"})

	if len(trace.Entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(trace.Entries))
	}
	if trace.Entries[0].Text != "the whole claim" || trace.Entries[0].Depth != 0 {
		t.Errorf("claim must become its own depth-0 sub-claim, got %+v", trace.Entries[0])
	}
}

func TestVerify_CancellationRecordedNotDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dec := &fakeDecomposer{root: []string{"a", "b"}}
	v := newTestVerifier(dec, &confResolver{})

	verdict, trace := v.Verify(ctx, model.Claim{ID: "c1", Text: "claim"})

	if verdict != model.VerdictCancelled {
		t.Errorf("verdict = %s, want cancelled", verdict)
	}
	if !trace.Partial {
		t.Error("cancelled trace must be marked partial")
	}
	for _, e := range trace.Entries {
		if e.Outcome != model.OutcomeCancelled {
			t.Errorf("in-flight entry must be cancelled, got %+v", e)
		}
	}
}

func TestVerify_TraceSequenceIsOrdered(t *testing.T) {
	dec := &fakeDecomposer{root: []string{"a", "b", "c", "d", "e"}}
	v := newTestVerifier(dec, &confResolver{})

	_, trace := v.Verify(context.Background(), model.Claim{ID: "c1", Text: "claim"})

	for i, e := range trace.Entries {
		if e.Seq != i+1 {
			t.Errorf("entry %d has seq %d", i, e.Seq)
		}
	}
}

func TestHeuristicTool(t *testing.T) {
	tests := []struct {
		text string
		want model.ToolKind
	}{
		{"매출이 300 + 200 억원을 넘었다", model.ToolCodeInterpreter},
		{"check that 500 - 120 = 380", model.ToolCodeInterpreter},
		{"강영권 회장이 징역 3년을 선고받았다", model.ToolKnowledgeSearch},
	}
	for _, tc := range tests {
		if got := HeuristicTool(tc.text); got != tc.want {
			t.Errorf("HeuristicTool(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

// Package verify implements the recursive claim-decomposition loop: a claim
// is split into atomic sub-claims, each routed to exactly one tool, with
// bounded recursion on low-confidence resolutions and a complete ordered
// trace of how the verdict was reached.
package verify

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/worker"
)

// Decomposer is the language-reasoning collaborator for splitting claims.
type Decomposer interface {
	// Decompose splits a claim into atomic sub-claims.
	Decompose(ctx context.Context, claim string) ([]string, error)

	// Refine produces follow-up sub-claims conditioned on the evidence
	// gap left by a low-confidence resolution.
	Refine(ctx context.Context, claim, evidence string) ([]string, error)
}

// Classifier routes one sub-claim to exactly one tool.
type Classifier interface {
	Classify(ctx context.Context, subClaim string) (model.ToolKind, error)
}

// Resolver executes one tool against one sub-claim, returning an evidence
// payload and a confidence estimate in [0,1].
type Resolver interface {
	Resolve(ctx context.Context, subClaim string) (evidence string, confidence float64, err error)
}

// Verifier drives the per-claim state machine. Sibling sub-claims at the
// same recursion level are dispatched concurrently; the parent does not
// resume until all children of that level resolve or time out.
type Verifier struct {
	dec       Decomposer
	cls       Classifier
	knowledge Resolver
	compute   Resolver
	cfg       model.VerifyConfig
	logger    *zap.Logger
}

// New creates a verifier. Zero config fields fall back to defaults
// (MaxDepth 3, threshold 0.8).
func New(dec Decomposer, cls Classifier, knowledge, compute Resolver, cfg model.VerifyConfig, logger *zap.Logger) *Verifier {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.8
	}
	if cfg.FanOut <= 0 {
		cfg.FanOut = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{dec: dec, cls: cls, knowledge: knowledge, compute: compute, cfg: cfg, logger: logger}
}

// Verify decomposes the claim and resolves every sub-claim. It never
// panics or aborts on single-tool failures: those are recorded in the trace
// with confidence 0 and siblings continue. A claim whose root decomposition
// fails returns VerdictInconclusive.
func (v *Verifier) Verify(ctx context.Context, claim model.Claim) (model.Verdict, model.VerificationTrace) {
	trace := &traceBuilder{
		trace: model.VerificationTrace{
			ID:      uuid.NewString(),
			ClaimID: claim.ID,
		},
	}

	texts, err := v.dec.Decompose(ctx, claim.Text)
	if err != nil {
		if ctx.Err() != nil {
			trace.markPartial("cancelled before decomposition completed")
			return model.VerdictCancelled, trace.finish()
		}
		v.logger.Warn("root decomposition failed", zap.String("claim", claim.ID), zap.Error(err))
		trace.markPartial(fmt.Sprintf("root decomposition failed: %v", err))
		return model.VerdictInconclusive, trace.finish()
	}
	if len(texts) == 0 {
		// An undecomposable claim becomes its own single sub-claim.
		texts = []string{claim.Text}
	}

	subs := make([]model.SubClaim, len(texts))
	for i, text := range texts {
		subs[i] = model.SubClaim{ID: uuid.NewString(), Text: text, Depth: 0}
	}

	v.resolveLevel(ctx, subs, trace)

	if ctx.Err() != nil {
		trace.markPartial("verification cancelled")
		return model.VerdictCancelled, trace.finish()
	}
	return v.verdict(trace), trace.finish()
}

// resolveLevel dispatches one generation of sibling sub-claims with bounded
// fan-out and joins on all of them before returning.
func (v *Verifier) resolveLevel(ctx context.Context, subs []model.SubClaim, trace *traceBuilder) {
	jobs := make([]worker.Job, len(subs))
	for i, sub := range subs {
		jobs[i] = &subClaimJob{v: v, sub: sub, trace: trace}
	}
	worker.Run(ctx, v.cfg.FanOut, jobs)
}

type subClaimJob struct {
	v     *Verifier
	sub   model.SubClaim
	trace *traceBuilder
}

type subClaimResult struct{ err error }

func (r subClaimResult) GetError() error { return r.err }

func (j *subClaimJob) Execute(ctx context.Context) worker.Result {
	j.v.resolveSubClaim(ctx, j.sub, j.trace)
	return subClaimResult{}
}

// resolveSubClaim runs the ToolSelected -> Resolved transition for one
// sub-claim, then recurses into refinement children while confidence stays
// below the threshold and depth below the bound.
func (v *Verifier) resolveSubClaim(ctx context.Context, sub model.SubClaim, trace *traceBuilder) {
	if ctx.Err() != nil {
		sub.Outcome = model.OutcomeCancelled
		trace.append(sub)
		return
	}

	sub.Tool = v.selectTool(ctx, sub.Text)

	evidence, confidence, err := v.runTool(ctx, sub.Tool, sub.Text)
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		sub.Outcome = model.OutcomeCancelled
		trace.append(sub)
		return
	case err != nil:
		// Timeout or collaborator error: recorded, siblings continue.
		v.logger.Warn("tool failure on sub-claim",
			zap.String("sub_claim", sub.ID),
			zap.String("tool", string(sub.Tool)),
			zap.Error(err))
		sub.Outcome = model.OutcomeToolFailure
		sub.Confidence = 0
		sub.Evidence = fmt.Sprintf("%v", err)
		trace.append(sub)
		return
	}

	sub.Outcome = model.OutcomeResolved
	sub.Confidence = clamp01(confidence)
	sub.Evidence = evidence
	trace.append(sub)

	if sub.Confidence >= v.cfg.Threshold || sub.Depth >= v.cfg.MaxDepth {
		return
	}

	children := v.refine(ctx, sub)
	if len(children) == 0 {
		return
	}
	v.resolveLevel(ctx, children, trace)
}

// refine asks the decomposer for follow-up sub-claims conditioned on the
// identified gap. A refinement failure terminates the branch with what it
// already has rather than failing the claim.
func (v *Verifier) refine(ctx context.Context, sub model.SubClaim) []model.SubClaim {
	texts, err := v.dec.Refine(ctx, sub.Text, sub.Evidence)
	if err != nil {
		v.logger.Warn("refinement failed, branch terminates",
			zap.String("sub_claim", sub.ID), zap.Error(err))
		return nil
	}
	children := make([]model.SubClaim, 0, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		children = append(children, model.SubClaim{
			ID:       uuid.NewString(),
			ParentID: sub.ID,
			Text:     text,
			Depth:    sub.Depth + 1,
		})
	}
	return children
}

// selectTool makes the single categorical routing decision. When the
// classifier collaborator fails, a deterministic heuristic stands in so the
// sub-claim still resolves through exactly one tool.
func (v *Verifier) selectTool(ctx context.Context, text string) model.ToolKind {
	if v.cls != nil {
		if kind, err := v.cls.Classify(ctx, text); err == nil {
			if kind == model.ToolCodeInterpreter || kind == model.ToolKnowledgeSearch {
				return kind
			}
		}
	}
	return HeuristicTool(text)
}

var arithmeticPattern = regexp.MustCompile(`\d+(?:\.\d+)?\s*[%+*/^=<>-]\s*\d`)

// HeuristicTool is the classifier fallback: claims that look like
// arithmetic or statistical assertions go to the code interpreter,
// everything else to knowledge search.
func HeuristicTool(text string) model.ToolKind {
	if arithmeticPattern.MatchString(text) {
		return model.ToolCodeInterpreter
	}
	return model.ToolKnowledgeSearch
}

// runTool executes the selected tool under the per-invocation deadline.
func (v *Verifier) runTool(ctx context.Context, kind model.ToolKind, text string) (string, float64, error) {
	var resolver Resolver
	switch kind {
	case model.ToolCodeInterpreter:
		resolver = v.compute
	default:
		resolver = v.knowledge
	}
	if resolver == nil {
		return "", 0, fmt.Errorf("%w: no resolver for %s", model.ErrToolFailure, kind)
	}

	if v.cfg.ToolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.ToolTimeout)
		defer cancel()
	}
	evidence, confidence, err := resolver.Resolve(ctx, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", 0, fmt.Errorf("%w: deadline exceeded", model.ErrToolFailure)
		}
		if errors.Is(err, context.Canceled) {
			return "", 0, err
		}
		return "", 0, fmt.Errorf("%w: %v", model.ErrToolFailure, err)
	}
	return evidence, confidence, nil
}

// verdict aggregates the trace: the mean confidence over resolved entries,
// compared against the threshold. Tool failures drag the mean down through
// their zero confidence rather than being ignored.
func (v *Verifier) verdict(trace *traceBuilder) model.Verdict {
	entries := trace.snapshot()
	if len(entries) == 0 {
		return model.VerdictInconclusive
	}
	total, counted := 0.0, 0
	for _, e := range entries {
		if e.Outcome == model.OutcomeCancelled {
			continue
		}
		total += e.Confidence
		counted++
	}
	if counted == 0 {
		return model.VerdictInconclusive
	}
	if total/float64(counted) >= v.cfg.Threshold {
		return model.VerdictSupported
	}
	return model.VerdictDisputed
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// traceBuilder is the append-only trace under construction. Entries are
// sequenced in resolution order regardless of which goroutine resolved them.
type traceBuilder struct {
	mu    sync.Mutex
	trace model.VerificationTrace
}

func (b *traceBuilder) append(sub model.SubClaim) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trace.Entries = append(b.trace.Entries, model.TraceEntry{
		Seq:        len(b.trace.Entries) + 1,
		SubClaimID: sub.ID,
		ParentID:   sub.ParentID,
		Text:       sub.Text,
		Depth:      sub.Depth,
		Tool:       sub.Tool,
		Evidence:   sub.Evidence,
		Confidence: sub.Confidence,
		Outcome:    sub.Outcome,
		At:         time.Now().UTC(),
	})
}

func (b *traceBuilder) markPartial(reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trace.Partial = true
	b.trace.Reason = reason
}

func (b *traceBuilder) snapshot() []model.TraceEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.TraceEntry, len(b.trace.Entries))
	copy(out, b.trace.Entries)
	return out
}

func (b *traceBuilder) finish() model.VerificationTrace {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trace
}

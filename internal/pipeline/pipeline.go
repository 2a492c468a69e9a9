// Package pipeline wires the verification flow: retrieve prior coverage,
// isolate a knowledge graph, detect contradictions, score the graph, and
// run the recursive verifier over the draft's claims.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsarena/factgraph/internal/fusion"
	"github.com/newsarena/factgraph/internal/hexmetrics"
	"github.com/newsarena/factgraph/internal/kgraph"
	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/search"
	"github.com/newsarena/factgraph/internal/verify"
)

// Reasoner is the language-reasoning collaborator surface the pipeline
// needs: decomposition and routing for the verifier plus qualitative
// judging for the metrics and the knowledge tool.
type Reasoner interface {
	verify.Decomposer
	verify.Classifier
	hexmetrics.Judge
}

// Deps are the collaborators behind the pipeline. Extractor is separate
// from Reasoner so extraction can be wrapped with caching.
type Deps struct {
	Lexical    search.LexicalIndex
	Dense      search.DenseIndex
	Docs       search.DocumentStore
	GraphStore kgraph.Store
	Extractor  kgraph.Extractor
	Reasoner   Reasoner
	Compute    verify.Resolver // Sandbox; nil disables the code tool
	Logger     *zap.Logger
}

// Pipeline orchestrates one verification per call. It holds no per-session
// state: every Verify opens and closes its own isolation session.
type Pipeline struct {
	cfg    *model.Config
	deps   Deps
	graphs *kgraph.Manager
	hex    *hexmetrics.Engine
	logger *zap.Logger
}

// New creates a pipeline.
func New(cfg *model.Config, deps Deps) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		deps:   deps,
		graphs: kgraph.NewManager(deps.GraphStore, deps.Extractor, logger),
		hex:    hexmetrics.NewEngine(deps.Reasoner, logger),
		logger: logger,
	}
}

// Verify checks a draft against prior coverage retrieved for the query and
// returns the full report: verdict, contradictions, hex scores, and the
// audit trace. Failures scoped to single documents or sub-claims degrade
// the report; only cancellation or both indexes being unreachable abort.
func (p *Pipeline) Verify(ctx context.Context, draft, query string) (*model.VerificationReport, error) {
	claim := model.Claim{ID: uuid.NewString(), Text: draft}
	report := &model.VerificationReport{Claim: claim}

	// 1. Retrieve candidate prior coverage.
	hits, err := p.retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	report.Hits = hits

	docs := make([]model.Document, 0, len(hits))
	for _, h := range hits {
		doc, err := p.deps.Docs.Get(ctx, h.DocumentID)
		if err != nil {
			p.logger.Warn("retrieved document missing from store",
				zap.String("document", h.DocumentID), zap.Error(err))
			report.Unverifiable = append(report.Unverifiable, h.DocumentID)
			continue
		}
		docs = append(docs, doc)
	}

	// 2. Isolate a session graph from the verified coverage and the draft.
	session, err := p.graphs.OpenSession(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("open isolation session: %w", err)
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			p.logger.Warn("session teardown failed", zap.String("session", session.ID), zap.Error(err))
		}
	}()
	report.Unverifiable = append(report.Unverifiable, session.Unverifiable...)

	if err := session.IngestDraft(ctx, draft); err != nil {
		// A draft that cannot be extracted still gets retrieval-based
		// verification; the graph side is just empty of draft facts.
		p.logger.Warn("draft extraction failed", zap.Error(err))
	}

	contradictions, err := session.Compare(ctx)
	switch {
	case err == model.ErrInsufficientEvidence:
		report.InsufficientEvidence = true
	case err != nil:
		return nil, fmt.Errorf("compare session: %w", err)
	default:
		report.Contradictions = contradictions
	}

	// 3. Score the isolated graph.
	triplets, err := session.Triplets(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("read session graph: %w", err)
	}
	report.Hex = p.hex.Compute(ctx, hexmetrics.Input{
		Triplets:       triplets,
		Query:          query,
		Contradictions: report.Contradictions,
	})

	// 4. Recursive verification with the session as knowledge tool.
	knowledge := &knowledgeResolver{p: p, contradictions: report.Contradictions}
	verifier := verify.New(p.deps.Reasoner, p.deps.Reasoner, knowledge, p.deps.Compute, p.cfg.Verify, p.logger)
	verdict, trace := verifier.Verify(ctx, claim)

	// A contradiction against verified coverage disputes the draft even
	// when the sub-claims individually resolved confidently.
	if verdict == model.VerdictSupported && len(report.Contradictions) > 0 {
		verdict = model.VerdictDisputed
	}
	report.Verdict = verdict
	report.Trace = trace

	return report, nil
}

// retrieve runs both indexes and fuses the rankings. One unreachable index
// degrades to single-list fusion; both unreachable aborts the verification.
func (p *Pipeline) retrieve(ctx context.Context, query string) ([]model.RetrievalHit, error) {
	topN := p.cfg.Retrieval.TopN

	sparse, sparseErr := p.deps.Lexical.Search(ctx, query, topN)
	dense, denseErr := p.deps.Dense.Search(ctx, query, topN)
	if sparseErr != nil && denseErr != nil {
		return nil, fmt.Errorf("both indexes unreachable: lexical: %v; dense: %v", sparseErr, denseErr)
	}
	if sparseErr != nil {
		p.logger.Warn("lexical index unreachable, fusing dense only", zap.Error(sparseErr))
	}
	if denseErr != nil {
		p.logger.Warn("dense index unreachable, fusing lexical only", zap.Error(denseErr))
	}

	fused := fusion.Fuse(sparse, dense, p.cfg.Retrieval.K)
	return fusion.Top(fused, topN), nil
}

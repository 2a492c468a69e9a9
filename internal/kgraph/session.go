package kgraph

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsarena/factgraph/internal/model"
)

// Manager opens isolation sessions against a backing store. Sessions are
// mutually exclusive per session id and never share an arena.
type Manager struct {
	store     Store
	extractor Extractor
	logger    *zap.Logger

	mu     sync.Mutex
	active map[string]*Session
}

// NewManager creates a session manager.
func NewManager(store Store, extractor Extractor, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:     store,
		extractor: extractor,
		logger:    logger,
		active:    make(map[string]*Session),
	}
}

// Session is one verification-scoped isolated graph. It holds labeled
// triplets from the verified documents and the user's draft, and nothing
// from any other session.
type Session struct {
	ID string

	mgr    *Manager
	closed bool
	mu     sync.Mutex

	// Unverifiable lists document ids whose extraction failed; they are
	// excluded from the graph rather than aborting the session.
	Unverifiable []string

	verifiedCount int
	draftCount    int
}

// OpenSession extracts triplets from each verified document, labels them
// VerifiedSource, and returns a session bound to a fresh arena. Extraction
// failures on individual documents are recorded as unverifiable sources.
func (m *Manager) OpenSession(ctx context.Context, docs []model.Document) (*Session, error) {
	id := uuid.NewString()
	if err := m.store.CreateArena(ctx, id); err != nil {
		return nil, fmt.Errorf("create arena: %w", err)
	}

	s := &Session{ID: id, mgr: m}

	for _, doc := range docs {
		raw, err := m.extractor.ExtractTriplets(ctx, doc.Text)
		if err != nil {
			m.logger.Warn("source unverifiable, excluding from graph",
				zap.String("session", id),
				zap.String("document", doc.ID),
				zap.Error(err))
			s.Unverifiable = append(s.Unverifiable, doc.ID)
			continue
		}
		triplets := labelTriples(raw, model.LabelVerifiedSource, doc.ID)
		if err := m.store.AddTriplets(ctx, id, triplets); err != nil {
			_ = m.store.DropArena(ctx, id)
			return nil, fmt.Errorf("add verified triplets: %w", err)
		}
		s.verifiedCount += len(triplets)
	}

	m.mu.Lock()
	m.active[id] = s
	m.mu.Unlock()

	return s, nil
}

// IngestDraft extracts triplets from the draft text, labels them Draft, and
// adds them to the session's graph.
func (s *Session) IngestDraft(ctx context.Context, draftText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.ErrSessionClosed
	}

	raw, err := s.mgr.extractor.ExtractTriplets(ctx, draftText)
	if err != nil {
		return fmt.Errorf("%w: draft: %v", model.ErrExtractionFailure, err)
	}
	triplets := labelTriples(raw, model.LabelDraft, "")
	if err := s.mgr.store.AddTriplets(ctx, s.ID, triplets); err != nil {
		return fmt.Errorf("add draft triplets: %w", err)
	}
	s.draftCount += len(triplets)
	return nil
}

// Triplets returns the session's triplets for a label (empty for all).
func (s *Session) Triplets(ctx context.Context, label model.SourceLabel) ([]model.Triplet, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, model.ErrSessionClosed
	}
	return s.mgr.store.Triplets(ctx, s.ID, label)
}

// Close discards the isolated graph. No triplet from this session is
// visible to any subsequent session.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.mgr.mu.Lock()
	delete(s.mgr.active, s.ID)
	s.mgr.mu.Unlock()

	if err := s.mgr.store.DropArena(ctx, s.ID); err != nil {
		return fmt.Errorf("drop arena: %w", err)
	}
	return nil
}

func labelTriples(raw []model.RawTriple, label model.SourceLabel, docID string) []model.Triplet {
	out := make([]model.Triplet, 0, len(raw))
	for _, r := range raw {
		if r.Subject == "" || r.Relation == "" || r.Object == "" {
			continue
		}
		out = append(out, model.Triplet{
			Subject:    Fold(r.Subject),
			Relation:   r.Relation,
			Object:     r.Object,
			Label:      label,
			DocumentID: docID,
		})
	}
	return out
}

package kgraph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/newsarena/factgraph/internal/kgraph/memstore"
	"github.com/newsarena/factgraph/internal/model"
)

// fakeExtractor maps exact input text to a fixed triple set.
type fakeExtractor struct {
	triples map[string][]model.RawTriple
	fail    map[string]bool
}

func (f *fakeExtractor) ExtractTriplets(_ context.Context, text string) ([]model.RawTriple, error) {
	if f.fail[text] {
		return nil, errors.New("extractor unavailable")
	}
	return f.triples[text], nil
}

func sentencingExtractor() *fakeExtractor {
	return &fakeExtractor{
		triples: map[string][]model.RawTriple{
			"verdict-3y": {{Subject: "강영권", Relation: "형량", Object: "징역 3년"}},
			"draft-5y":   {{Subject: "강영권", Relation: "형량", Object: "징역 5년"}},
			"draft-3y":   {{Subject: "강영권", Relation: "형량", Object: "징역 3년"}},
		},
		fail: map[string]bool{},
	}
}

func TestSession_ContradictionOnSentencing(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memstore.New(), sentencingExtractor(), nil)

	s, err := mgr.OpenSession(ctx, []model.Document{{ID: "news-1", Text: "verdict-3y"}})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	defer s.Close(ctx)

	if err := s.IngestDraft(ctx, "draft-5y"); err != nil {
		t.Fatalf("ingest draft: %v", err)
	}

	contradictions, err := s.Compare(ctx)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(contradictions) != 1 {
		t.Fatalf("expected exactly one contradiction, got %d", len(contradictions))
	}
	c := contradictions[0]
	if c.Attribute != "형량" {
		t.Errorf("expected attribute 형량, got %q", c.Attribute)
	}
	if c.Verified.Object != "징역 3년" || c.Draft.Object != "징역 5년" {
		t.Errorf("unexpected pair: verified=%q draft=%q", c.Verified.Object, c.Draft.Object)
	}
}

func TestSession_AgreementIsClean(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memstore.New(), sentencingExtractor(), nil)

	s, err := mgr.OpenSession(ctx, []model.Document{{ID: "news-1", Text: "verdict-3y"}})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	defer s.Close(ctx)

	if err := s.IngestDraft(ctx, "draft-3y"); err != nil {
		t.Fatalf("ingest draft: %v", err)
	}

	contradictions, err := s.Compare(ctx)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(contradictions) != 0 {
		t.Fatalf("expected no contradictions, got %d", len(contradictions))
	}
}

func TestSession_InsufficientEvidence(t *testing.T) {
	ctx := context.Background()
	ex := sentencingExtractor()
	ex.fail["verdict-3y"] = true
	mgr := NewManager(memstore.New(), ex, nil)

	s, err := mgr.OpenSession(ctx, []model.Document{{ID: "news-1", Text: "verdict-3y"}})
	if err != nil {
		t.Fatalf("open session must tolerate per-document extraction failure: %v", err)
	}
	defer s.Close(ctx)

	if len(s.Unverifiable) != 1 || s.Unverifiable[0] != "news-1" {
		t.Errorf("expected news-1 recorded unverifiable, got %v", s.Unverifiable)
	}

	if err := s.IngestDraft(ctx, "draft-5y"); err != nil {
		t.Fatalf("ingest draft: %v", err)
	}

	_, err = s.Compare(ctx)
	if !errors.Is(err, model.ErrInsufficientEvidence) {
		t.Fatalf("expected ErrInsufficientEvidence, got %v", err)
	}
}

func TestSession_IsolationAcrossSessions(t *testing.T) {
	ctx := context.Background()
	ex := &fakeExtractor{
		triples: map[string][]model.RawTriple{
			"d1": {{Subject: "에디슨모터스", Relation: "인수대상", Object: "쌍용차"}},
			"d2": {{Subject: "삼성전자", Relation: "협력사", Object: "코닝"}},
		},
		fail: map[string]bool{},
	}
	store := memstore.New()
	mgr := NewManager(store, ex, nil)

	a, err := mgr.OpenSession(ctx, []model.Document{{ID: "doc-1", Text: "d1"}})
	if err != nil {
		t.Fatalf("open A: %v", err)
	}
	if err := a.Close(ctx); err != nil {
		t.Fatalf("close A: %v", err)
	}

	b, err := mgr.OpenSession(ctx, []model.Document{{ID: "doc-2", Text: "d2"}})
	if err != nil {
		t.Fatalf("open B: %v", err)
	}
	defer b.Close(ctx)

	all, err := b.Triplets(ctx, "")
	if err != nil {
		t.Fatalf("triplets: %v", err)
	}
	for _, tr := range all {
		if strings.Contains(tr.Subject, "에디슨모터스") || tr.Object == "쌍용차" {
			t.Fatalf("session B sees session A's triplet: %+v", tr)
		}
	}
	if store.ArenaCount() != 1 {
		t.Errorf("expected one live arena after A closed, got %d", store.ArenaCount())
	}
}

func TestSession_ClosedSessionRejectsUse(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memstore.New(), sentencingExtractor(), nil)

	s, err := mgr.OpenSession(ctx, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.IngestDraft(ctx, "draft-5y"); !errors.Is(err, model.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.Triplets(ctx, ""); !errors.Is(err, model.ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	// Double close is harmless.
	if err := s.Close(ctx); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestSession_UniqueArenaIDs(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(memstore.New(), sentencingExtractor(), nil)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		s, err := mgr.OpenSession(ctx, nil)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session id %s", s.ID)
		}
		seen[s.ID] = true
		if err := s.Close(ctx); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

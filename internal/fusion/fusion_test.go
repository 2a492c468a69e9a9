package fusion

import (
	"math"
	"testing"

	"github.com/newsarena/factgraph/internal/model"
)

func ranking(ids ...string) []model.Ranked {
	out := make([]model.Ranked, len(ids))
	for i, id := range ids {
		out[i] = model.Ranked{DocumentID: id, Rank: i + 1}
	}
	return out
}

func TestFuse_PermutationOfUnion(t *testing.T) {
	sparse := ranking("a", "b", "c")
	dense := ranking("c", "d")

	fused := Fuse(sparse, dense, DefaultK)

	want := map[string]bool{"a": true, "b": true, "c": true, "d": true}
	if len(fused) != len(want) {
		t.Fatalf("expected %d fused docs, got %d", len(want), len(fused))
	}
	seen := map[string]bool{}
	for _, h := range fused {
		if !want[h.DocumentID] {
			t.Errorf("unexpected document %q in fused output", h.DocumentID)
		}
		if seen[h.DocumentID] {
			t.Errorf("document %q appears twice", h.DocumentID)
		}
		seen[h.DocumentID] = true
	}

	// Non-increasing score order
	for i := 1; i < len(fused); i++ {
		if fused[i].Score > fused[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %f > %f", i, fused[i].Score, fused[i-1].Score)
		}
	}
}

func TestFuse_BothListsBeatsSingleList(t *testing.T) {
	// "x" ranked 1 in both lists, "y" ranked 1 in only one.
	sparse := []model.Ranked{{DocumentID: "x", Rank: 1}}
	dense := []model.Ranked{{DocumentID: "x", Rank: 1}, {DocumentID: "y", Rank: 2}}

	fused := Fuse(sparse, dense, DefaultK)

	if fused[0].DocumentID != "x" {
		t.Fatalf("expected x first, got %s", fused[0].DocumentID)
	}

	wantX := 2.0 / float64(1+DefaultK)
	if math.Abs(fused[0].Score-wantX) > 1e-12 {
		t.Errorf("expected score %f for x, got %f", wantX, fused[0].Score)
	}
	if fused[0].Score <= fused[1].Score {
		t.Errorf("rank-1-in-both must outscore rank-1-in-one: %f vs %f", fused[0].Score, fused[1].Score)
	}
}

func TestFuse_TieBreaks(t *testing.T) {
	// "a" at rank 2 in both lists vs "b" at rank 2 sparse only and "c" at
	// rank 2 dense only: b and c tie on score, break by document id.
	sparse := []model.Ranked{
		{DocumentID: "z", Rank: 1},
		{DocumentID: "a", Rank: 2},
		{DocumentID: "b", Rank: 3},
	}
	dense := []model.Ranked{
		{DocumentID: "z", Rank: 1},
		{DocumentID: "a", Rank: 2},
		{DocumentID: "c", Rank: 3},
	}

	fused := Fuse(sparse, dense, DefaultK)

	order := make([]string, len(fused))
	for i, h := range fused {
		order[i] = h.DocumentID
	}
	want := []string{"z", "a", "b", "c"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestFuse_EmptyInputs(t *testing.T) {
	if got := Fuse(nil, nil, DefaultK); len(got) != 0 {
		t.Errorf("expected empty fusion for empty inputs, got %d hits", len(got))
	}
}

func TestFuse_ExplicitK(t *testing.T) {
	sparse := []model.Ranked{{DocumentID: "a", Rank: 1}}

	k10 := Fuse(sparse, nil, 10)
	k60 := Fuse(sparse, nil, 60)

	if k10[0].Score <= k60[0].Score {
		t.Errorf("smaller k must produce larger score: k=10 %f vs k=60 %f", k10[0].Score, k60[0].Score)
	}
	want := 1.0 / 11.0
	if math.Abs(k10[0].Score-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, k10[0].Score)
	}
}

func TestTop(t *testing.T) {
	fused := Fuse(ranking("a", "b", "c"), nil, DefaultK)
	if got := Top(fused, 2); len(got) != 2 {
		t.Errorf("expected 2 hits, got %d", len(got))
	}
	if got := Top(fused, 0); len(got) != 3 {
		t.Errorf("expected untruncated result for n=0, got %d", len(got))
	}
}

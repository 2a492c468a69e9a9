package votestore

import (
	"context"
	"testing"

	"github.com/newsarena/factgraph/internal/model"
)

func TestMemStore_AppendAndGroup(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	votes := []model.Vote{
		{IssueID: "i1", Cluster: "a", Weight: 2},
		{IssueID: "i1", Cluster: "a", Weight: 1},
		{IssueID: "i1", Cluster: "b", Weight: 4},
		{IssueID: "i2", Cluster: "a", Weight: 9},
	}
	for _, v := range votes {
		if err := s.Append(ctx, v); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.ByIssue(ctx, "i1")
	if err != nil {
		t.Fatalf("by issue: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 votes for i1, got %d", len(got))
	}

	totals, err := s.TotalsByCluster(ctx, "i1")
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals["a"] != 3 || totals["b"] != 4 {
		t.Errorf("totals = %v", totals)
	}

	empty, err := s.ByIssue(ctx, "missing")
	if err != nil {
		t.Fatalf("by issue: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no votes for unknown issue, got %d", len(empty))
	}
}

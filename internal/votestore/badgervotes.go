package votestore

import (
	"context"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/newsarena/factgraph/internal/model"
)

// BadgerStore persists votes in an embedded BadgerDB. Keys are
// vote:<issue>:<uuid>, so reads are a prefix scan per issue and appends
// never collide.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a vote database at path. An empty path
// opens an in-memory database, which is useful for tests.
func OpenBadger(path string) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger vote store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func votePrefix(issueID string) []byte {
	return []byte("vote:" + issueID + ":")
}

// Append records one vote.
func (s *BadgerStore) Append(_ context.Context, vote model.Vote) error {
	raw, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("marshal vote: %w", err)
	}
	key := append(votePrefix(vote.IssueID), []byte(uuid.NewString())...)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, raw)
	})
	if err != nil {
		return fmt.Errorf("append vote: %w", err)
	}
	return nil
}

// ByIssue returns every vote for an issue.
func (s *BadgerStore) ByIssue(_ context.Context, issueID string) ([]model.Vote, error) {
	var out []model.Vote
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := votePrefix(issueID)
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(raw []byte) error {
				var v model.Vote
				if err := json.Unmarshal(raw, &v); err != nil {
					return fmt.Errorf("decode vote: %w", err)
				}
				out = append(out, v)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TotalsByCluster groups the issue's vote weight by cluster label.
func (s *BadgerStore) TotalsByCluster(ctx context.Context, issueID string) (map[string]float64, error) {
	votes, err := s.ByIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64)
	for _, v := range votes {
		totals[v.Cluster] += v.Weight
	}
	return totals, nil
}

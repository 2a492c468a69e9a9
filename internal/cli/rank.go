package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsarena/factgraph/internal/consensus"
	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/votestore"
)

var (
	votesFile string
	rankOut   string
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank <issue-id>",
	Short: "Compute the consensus score for a published issue",
	Long: `Rank recomputes an issue's consensus score from its current votes:
- Score = log(total votes) scaled by cross-cluster agreement
- Broad agreement across voter clusters outranks a single loud cluster
- Issues with no votes are reported unranked, never scored

Votes are append-only; the score is always derived, never stored.

Example:
  factgraph rank issue-42 --votes votes.json
  factgraph rank issue-42   (reads the configured badger vote store)`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&votesFile, "votes", "", "JSON file of votes to append before ranking")
	rankCmd.Flags().StringVar(&rankOut, "json", "", "write the score to this path instead of stdout")
}

func runRank(cmd *cobra.Command, args []string) error {
	issueID := args[0]
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openVoteStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if votesFile != "" {
		if err := appendVotes(ctx, store, votesFile); err != nil {
			return err
		}
	}

	votes, err := store.ByIssue(ctx, issueID)
	if err != nil {
		return fmt.Errorf("read votes: %w", err)
	}

	score := consensus.Score(issueID, votes)
	if verbose {
		if score.Ranked {
			fmt.Fprintf(os.Stderr, "✓ %s: %.4f from %.0f votes (consensus factor %.4f)\n",
				issueID, score.Score, score.TotalVotes, score.Factor)
		} else {
			fmt.Fprintf(os.Stderr, "✗ %s: unranked (no votes)\n", issueID)
		}
	}

	return writeReport(score, rankOut)
}

// openVoteStore builds the configured vote store. Memory stores start empty,
// so they only make sense together with --votes.
func openVoteStore(cfg *model.Config) (votestore.Store, func(), error) {
	switch cfg.Votes.Backend {
	case "badger":
		s, err := votestore.OpenBadger(cfg.Votes.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "", "memory":
		return votestore.NewMemStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown vote backend: %s (supported: memory, badger)", cfg.Votes.Backend)
	}
}

func appendVotes(ctx context.Context, store votestore.Store, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read votes file: %w", err)
	}
	var votes []model.Vote
	if err := json.Unmarshal(raw, &votes); err != nil {
		return fmt.Errorf("decode votes file: %w", err)
	}
	for _, v := range votes {
		if err := store.Append(ctx, v); err != nil {
			return fmt.Errorf("append vote: %w", err)
		}
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Appended %d votes from %s\n", len(votes), path)
	}
	return nil
}

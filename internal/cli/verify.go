package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsarena/factgraph/internal/pipeline"
)

var (
	query         string
	corpusDir     string
	outJSON       string
	verifyTimeout time.Duration
	llmProvider   string
	llmModel      string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <draft-file>",
	Short: "Verify a draft article against prior coverage",
	Long: `Verify checks one draft article:
- Retrieve relevant verified coverage with hybrid rank fusion
- Build a session-isolated knowledge graph from coverage and draft
- Detect contradictions on shared facts (who, what amount, which date)
- Score the session on six bounded metrics
- Recursively verify the draft's atomic sub-claims with an audit trace

Pass "-" as the draft file to read from stdin.

Example:
  factgraph verify draft.txt --query "강영권 선고" --corpus ./corpus
  factgraph verify - --query "earnings report" --corpus ./corpus --json report.json
  factgraph verify draft.txt --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&query, "query", "", "retrieval query (defaults to the draft's first line)")
	verifyCmd.Flags().StringVar(&corpusDir, "corpus", "", "directory of verified coverage (.txt/.md)")
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "write the report to this path instead of stdout")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "overall verification timeout")

	// LLM flags
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")

	_ = verifyCmd.MarkFlagRequired("corpus")
}

func runVerify(cmd *cobra.Command, args []string) error {
	draft, err := readDraft(args[0])
	if err != nil {
		return err
	}
	if query == "" {
		query = firstLine(draft)
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	cfg.Output.Verbose = verbose

	corpus, err := loadCorpus(corpusDir)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Corpus: %d documents\n", len(corpus))
		fmt.Fprintf(os.Stderr, "Query:  %s\n", query)
		fmt.Fprintln(os.Stderr)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	deps, cleanup, err := buildDeps(ctx, cfg, corpus, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, deps)
	report, err := p.Verify(ctx, draft, query)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verdict: %s\n", report.Verdict)
		fmt.Fprintf(os.Stderr, "✓ Contradictions: %d\n", len(report.Contradictions))
		fmt.Fprintf(os.Stderr, "✓ Trace entries: %d\n", len(report.Trace.Entries))
		if len(report.Unverifiable) > 0 {
			fmt.Fprintf(os.Stderr, "! %d of %d sources unverifiable\n", len(report.Unverifiable), len(report.Hits))
		}
		if report.InsufficientEvidence {
			fmt.Fprintln(os.Stderr, "! insufficient verified evidence for contradiction analysis")
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeReport(report, outJSON)
}

func readDraft(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read draft from stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read draft: %w", err)
	}
	return string(raw), nil
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

func writeReport(report any, path string) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	raw = append(raw, '\n')
	if path == "" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}
	return nil
}

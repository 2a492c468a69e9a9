package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/newsarena/factgraph/internal/cache"
	"github.com/newsarena/factgraph/internal/kgraph"
	"github.com/newsarena/factgraph/internal/kgraph/memstore"
	"github.com/newsarena/factgraph/internal/kgraph/neo4jstore"
	"github.com/newsarena/factgraph/internal/llm"
	"github.com/newsarena/factgraph/internal/model"
	"github.com/newsarena/factgraph/internal/pipeline"
	"github.com/newsarena/factgraph/internal/sandbox"
	"github.com/newsarena/factgraph/internal/search"
	"github.com/newsarena/factgraph/internal/search/weaviatedense"
	"github.com/newsarena/factgraph/internal/verify"
)

// buildDeps assembles the pipeline collaborators from configuration. The
// returned cleanup releases backend connections and is safe to call once.
func buildDeps(ctx context.Context, cfg *model.Config, corpus []model.Document, logger *zap.Logger) (pipeline.Deps, func(), error) {
	cleanup := func() {}

	client, err := llm.NewFromConfig(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return pipeline.Deps{}, cleanup, fmt.Errorf("configure LLM: %w", err)
	}
	if client == nil {
		return pipeline.Deps{}, cleanup, fmt.Errorf("verification requires an LLM provider (--llm-provider or llm.provider in config)")
	}

	var extractor kgraph.Extractor = client
	if cfg.Cache.Enabled {
		store := cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		extractor = llm.NewCachingExtractor(client, store, cfg.Cache.TTL)
	}

	// Lexical search and document resolution run off the in-process corpus
	// index; the dense side may point at a real engine.
	idx := search.NewMemIndex()
	idx.Add(corpus...)

	var dense search.DenseIndex = idx
	if cfg.Dense.Backend == "weaviate" {
		w, err := weaviatedense.New(cfg.Dense.URL, cfg.Dense.Class)
		if err != nil {
			return pipeline.Deps{}, cleanup, fmt.Errorf("connect dense index: %w", err)
		}
		dense = w
	}

	var graphStore kgraph.Store = memstore.New()
	if cfg.Graph.Backend == "neo4j" {
		n, err := neo4jstore.New(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password, "")
		if err != nil {
			return pipeline.Deps{}, cleanup, fmt.Errorf("connect graph store: %w", err)
		}
		graphStore = n
		cleanup = func() {
			if err := n.Close(context.Background()); err != nil {
				logger.Warn("close graph store", zap.Error(err))
			}
		}
	}

	var compute verify.Resolver
	if cfg.Sandbox.BaseURL != "" {
		compute = sandbox.New(cfg.Sandbox.BaseURL, cfg.Sandbox.Timeout)
	}

	return pipeline.Deps{
		Lexical:    idx,
		Dense:      dense,
		Docs:       idx,
		GraphStore: graphStore,
		Extractor:  extractor,
		Reasoner:   client,
		Compute:    compute,
		Logger:     logger,
	}, cleanup, nil
}

// loadCorpus reads every .txt and .md file under dir as one verified
// document, keyed by its path relative to dir.
func loadCorpus(dir string) ([]model.Document, error) {
	var docs []model.Document
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, model.Document{ID: rel, Text: string(raw)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no .txt or .md documents under %s", dir)
	}
	return docs, nil
}

// Package weaviatedense adapts a Weaviate instance to the DenseIndex
// contract. Documents are expected in a single class with a docId text
// property; ranking comes from Weaviate's nearText vector search.
package weaviatedense

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"

	"github.com/newsarena/factgraph/internal/model"
)

// Index is a Weaviate-backed dense index.
type Index struct {
	client *weaviate.Client
	class  string
}

// New connects to a Weaviate endpoint, e.g. "http://localhost:8080".
func New(endpoint, class string) (*Index, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid weaviate endpoint %q", endpoint)
	}
	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "http"
	}
	client, err := weaviate.NewClient(weaviate.Config{Host: parsed.Host, Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("weaviate client: %w", err)
	}
	if class == "" {
		class = "NewsChunk"
	}
	return &Index{client: client, class: class}, nil
}

// Search returns the topN semantically nearest documents, rank 1 first.
func (i *Index) Search(ctx context.Context, query string, topN int) ([]model.Ranked, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if topN <= 0 {
		topN = 5
	}

	nearText := i.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	result, err := i.client.GraphQL().Get().
		WithClassName(i.class).
		WithFields(graphql.Field{Name: "docId"}).
		WithNearText(nearText).
		WithLimit(topN).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("weaviate search: %s", result.Errors[0].Message)
	}

	data := make(map[string]interface{}, len(result.Data))
	for k, v := range result.Data {
		data[k] = v
	}
	return parseRanking(data, i.class)
}

func parseRanking(data map[string]interface{}, class string) ([]model.Ranked, error) {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil, nil
	}
	rows, ok := get[class].([]interface{})
	if !ok {
		return nil, nil
	}

	out := make([]model.Ranked, 0, len(rows))
	for _, row := range rows {
		fields, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := fields["docId"].(string)
		if !ok || id == "" {
			continue
		}
		out = append(out, model.Ranked{DocumentID: id, Rank: len(out) + 1})
	}
	return out, nil
}

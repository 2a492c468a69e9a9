// Package neo4jstore backs isolation sessions with Neo4j. Every triplet is
// written with an arena property and every read filters on it, so session
// isolation holds even if a teardown is skipped.
package neo4jstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/newsarena/factgraph/internal/model"
)

// Store implements kgraph.Store on a Neo4j server.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// New connects to Neo4j with basic auth.
func New(ctx context.Context, uri, username, password, database string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return &Store{driver: driver, database: database}, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// CreateArena is a no-op beyond validation: arenas exist implicitly through
// the arena property stamped on every node and relationship.
func (s *Store) CreateArena(_ context.Context, arenaID string) error {
	if arenaID == "" {
		return fmt.Errorf("empty arena id")
	}
	return nil
}

// DropArena deletes every node and relationship stamped with the arena id.
func (s *Store) DropArena(ctx context.Context, arenaID string) error {
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`MATCH (n:Entity {arena: $arena}) DETACH DELETE n`,
		map[string]any{"arena": arenaID},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return fmt.Errorf("drop arena %s: %w", arenaID, err)
	}
	return nil
}

// AddTriplets merges entities and fact relationships under the arena id.
func (s *Store) AddTriplets(ctx context.Context, arenaID string, triplets []model.Triplet) error {
	rows := make([]map[string]any, 0, len(triplets))
	for _, t := range triplets {
		rows = append(rows, map[string]any{
			"subject":  t.Subject,
			"relation": t.Relation,
			"object":   t.Object,
			"label":    string(t.Label),
			"doc":      t.DocumentID,
		})
	}
	_, err := neo4j.ExecuteQuery(ctx, s.driver,
		`UNWIND $rows AS row
		 MERGE (a:Entity {name: row.subject, arena: $arena})
		 MERGE (b:Entity {name: row.object, arena: $arena})
		 CREATE (a)-[:FACT {relation: row.relation, label: row.label, doc: row.doc, arena: $arena}]->(b)`,
		map[string]any{"rows": rows, "arena": arenaID},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return fmt.Errorf("add triplets to arena %s: %w", arenaID, err)
	}
	return nil
}

// Triplets reads back the arena's facts, optionally filtered by label.
func (s *Store) Triplets(ctx context.Context, arenaID string, label model.SourceLabel) ([]model.Triplet, error) {
	query := `MATCH (a:Entity {arena: $arena})-[r:FACT {arena: $arena}]->(b:Entity {arena: $arena})`
	params := map[string]any{"arena": arenaID}
	if label != "" {
		query += ` WHERE r.label = $label`
		params["label"] = string(label)
	}
	query += ` RETURN a.name AS subject, r.relation AS relation, b.name AS object, r.label AS label, r.doc AS doc`

	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database))
	if err != nil {
		return nil, fmt.Errorf("read arena %s: %w", arenaID, err)
	}

	out := make([]model.Triplet, 0, len(result.Records))
	for _, rec := range result.Records {
		t := model.Triplet{
			Subject:    stringField(rec, "subject"),
			Relation:   stringField(rec, "relation"),
			Object:     stringField(rec, "object"),
			Label:      model.SourceLabel(stringField(rec, "label")),
			DocumentID: stringField(rec, "doc"),
		}
		out = append(out, t)
	}
	return out, nil
}

func stringField(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

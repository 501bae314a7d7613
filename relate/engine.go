// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package relate builds term relationship graphs from embedding
// similarity: pairwise cosine connections above a floor threshold, plus a
// greedy clustering over the strong connections. The clustering is
// order-dependent (edges are processed strongest first) and favors
// responsiveness over optimality; its one hard guarantee is that the
// clusters partition the input terms exactly.
package relate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/querygen/ai"
	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/embed"
)

const (
	// defaultConnectionThreshold is the minimum similarity recorded as a
	// connection.
	defaultConnectionThreshold = 0.4

	// defaultMergeThreshold is the minimum similarity for the first
	// clustering pass.
	defaultMergeThreshold = 0.65

	// defaultAttachThreshold is the minimum similarity for attaching
	// leftover terms in the second pass.
	defaultAttachThreshold = 0.5
)

// ErrNilEmbedder indicates an Engine was constructed without an embedder.
var ErrNilEmbedder = errors.New("relationship engine requires an embedder")

// Engine computes term graphs over an embedding space.
type Engine struct {
	embedder            ai.Embedder
	connectionThreshold float64
	mergeThreshold      float64
	attachThreshold     float64
	logger              *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithThresholds overrides the connection, merge, and attach similarity
// thresholds.
func WithThresholds(connection, merge, attach float64) Option {
	return func(e *Engine) error {
		if connection <= 0 || merge <= 0 || attach <= 0 {
			return errors.New("thresholds must be positive")
		}
		if merge < attach || attach < connection {
			return errors.New("thresholds must satisfy merge >= attach >= connection")
		}
		e.connectionThreshold = connection
		e.mergeThreshold = merge
		e.attachThreshold = attach
		return nil
	}
}

// NewEngine creates a relationship engine over the given embedder.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrNilEmbedder
	}

	e := &Engine{
		embedder:            embedder,
		connectionThreshold: defaultConnectionThreshold,
		mergeThreshold:      defaultMergeThreshold,
		attachThreshold:     defaultAttachThreshold,
		logger:              slog.Default().With("component", "relate-engine"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Relate computes the term graph for the given keywords: connections above
// the connection threshold sorted by descending strength, and clusters that
// partition the distinct terms exactly. Fewer than two distinct terms yield
// an empty graph.
func (e *Engine) Relate(ctx context.Context, keywords []core.KeywordItem) (core.TermGraph, error) {
	terms := distinctTerms(keywords)
	if len(terms) < 2 {
		return core.TermGraph{
			Connections: []core.TermConnection{},
			Clusters:    []core.TermCluster{},
		}, nil
	}

	vectors := make(map[string][]float32, len(terms))
	for _, term := range terms {
		vector, err := e.embedder.EmbedText(ctx, term)
		if err != nil {
			return core.TermGraph{}, fmt.Errorf("embedding term %q: %w", term, err)
		}
		vectors[term] = vector
	}

	connections := e.connect(terms, vectors)
	clusters := e.cluster(terms, connections)

	e.logger.Debug("term graph built",
		"terms", len(terms),
		"connections", len(connections),
		"clusters", len(clusters))

	return core.TermGraph{Connections: connections, Clusters: clusters}, nil
}

// connect records every unordered pair above the connection threshold,
// sorted by descending strength with a deterministic tie-break.
func (e *Engine) connect(terms []string, vectors map[string][]float32) []core.TermConnection {
	connections := make([]core.TermConnection, 0, len(terms))
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			similarity := embed.Cosine(vectors[terms[i]], vectors[terms[j]])
			if similarity > e.connectionThreshold {
				connections = append(connections, core.TermConnection{
					Source:   terms[i],
					Target:   terms[j],
					Strength: similarity,
				})
			}
		}
	}

	slices.SortStableFunc(connections, func(a, b core.TermConnection) int {
		if a.Strength != b.Strength {
			if a.Strength < b.Strength {
				return 1
			}
			return -1
		}
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return connections
}

// cluster greedily groups terms. First pass: walk connections above the
// merge threshold strongest first, merging the smaller cluster into the
// larger when an edge spans two. Second pass: each still-unclustered term
// starts a cluster and pulls in its unclustered neighbors above the attach
// threshold. Whatever remains stands alone. Every input term lands in
// exactly one cluster.
func (e *Engine) cluster(terms []string, connections []core.TermConnection) []core.TermCluster {
	groups := make([][]string, 0, len(terms))
	membership := make(map[string]int, len(terms))

	for _, conn := range connections {
		if conn.Strength <= e.mergeThreshold {
			continue
		}
		srcGroup, srcOk := membership[conn.Source]
		tgtGroup, tgtOk := membership[conn.Target]

		switch {
		case !srcOk && !tgtOk:
			groups = append(groups, []string{conn.Source, conn.Target})
			membership[conn.Source] = len(groups) - 1
			membership[conn.Target] = len(groups) - 1
		case srcOk && !tgtOk:
			groups[srcGroup] = append(groups[srcGroup], conn.Target)
			membership[conn.Target] = srcGroup
		case !srcOk && tgtOk:
			groups[tgtGroup] = append(groups[tgtGroup], conn.Source)
			membership[conn.Source] = tgtGroup
		case srcGroup != tgtGroup:
			// Merge the smaller cluster into the larger.
			small, large := srcGroup, tgtGroup
			if len(groups[small]) > len(groups[large]) {
				small, large = large, small
			}
			for _, term := range groups[small] {
				membership[term] = large
			}
			groups[large] = append(groups[large], groups[small]...)
			groups[small] = nil
		}
	}

	// Second pass: attach moderate-strength orphans, then singletons.
	for _, term := range terms {
		if _, ok := membership[term]; ok {
			continue
		}
		group := []string{term}
		membership[term] = len(groups)
		for _, conn := range connections {
			if conn.Strength <= e.attachThreshold {
				continue
			}
			var neighbor string
			switch term {
			case conn.Source:
				neighbor = conn.Target
			case conn.Target:
				neighbor = conn.Source
			default:
				continue
			}
			if _, ok := membership[neighbor]; !ok {
				group = append(group, neighbor)
				membership[neighbor] = len(groups)
			}
		}
		groups = append(groups, group)
	}

	clusters := make([]core.TermCluster, 0, len(groups))
	for _, group := range groups {
		if group == nil {
			continue
		}
		clusters = append(clusters, core.TermCluster{
			Id:    fmt.Sprintf("cluster_%d", len(clusters)+1),
			Terms: group,
		})
	}
	return clusters
}

// distinctTerms extracts the unique terms from keywords in first-seen
// order, so duplicated inputs cannot break the partition invariant.
func distinctTerms(keywords []core.KeywordItem) []string {
	seen := make(map[string]bool, len(keywords))
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k.Keyword == "" || seen[k.Keyword] {
			continue
		}
		seen[k.Keyword] = true
		terms = append(terms, k.Keyword)
	}
	return terms
}

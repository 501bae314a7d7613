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


// Package query synthesizes Boolean candidate-search expressions from
// ranked keywords. Terms are quoted; required groups are joined with AND;
// interchangeable terms are grouped with OR. When a relationship engine is
// configured, its term graph drives OR-expansion of required terms and the
// grouping of optional terms; without one (or if it fails) synthesis
// proceeds flat.
package query

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/querygen/core"
	"github.com/poiesic/querygen/relate"
)

const (
	// relateLimit caps how many top keywords feed the relationship engine.
	relateLimit = 15

	// essentialCategorized is how many skills are required in the
	// categorized path.
	essentialCategorized = 3

	// essentialUncategorized is how many keywords are required in the
	// uncategorized path.
	essentialUncategorized = 5

	// defaultExpansionLimit caps OR-expansions per required term.
	defaultExpansionLimit = 2

	// Similarity floors for OR-expansion and optional grouping.
	expandStrict  = 0.7
	expandRelaxed = 0.65
)

// Synthesizer builds Boolean query strings from keyword lists.
type Synthesizer struct {
	engine         *relate.Engine
	expansionLimit int
	logger         *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithEngine attaches a relationship engine for semantic expansion.
func WithEngine(engine *relate.Engine) Option {
	return func(s *Synthesizer) error {
		if engine == nil {
			return errors.New("engine cannot be nil")
		}
		s.engine = engine
		return nil
	}
}

// WithExpansionLimit caps OR-expansions per required term.
func WithExpansionLimit(limit int) Option {
	return func(s *Synthesizer) error {
		if limit < 0 {
			return errors.New("expansion limit cannot be negative")
		}
		s.expansionLimit = limit
		return nil
	}
}

// NewSynthesizer creates a query synthesizer. Without WithEngine it
// produces structurally valid queries with no semantic expansion.
func NewSynthesizer(opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		expansionLimit: defaultExpansionLimit,
		logger:         slog.Default().With("component", "query-synthesizer"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Synthesize produces the Boolean query string for the given keywords.
// Zero keywords yield an empty string; a single keyword yields a quoted
// term. Keywords carrying categories take the categorized path (role,
// skill, and qualification groups); otherwise the top keywords by weight
// are required and the rest grouped as alternatives.
func (s *Synthesizer) Synthesize(ctx context.Context, keywords []core.KeywordItem) string {
	if len(keywords) == 0 {
		return ""
	}

	sorted := slices.Clone(keywords)
	slices.SortStableFunc(sorted, func(a, b core.KeywordItem) int {
		if a.Frequency == b.Frequency {
			return 0
		}
		if a.Frequency < b.Frequency {
			return 1
		}
		return -1
	})

	graph := s.termGraph(ctx, sorted)

	if hasCategories(sorted) {
		return s.synthesizeCategorized(sorted, graph)
	}
	return s.synthesizeUncategorized(sorted, graph)
}

// termGraph computes relationships over the top keywords. Engine failure
// is logged and synthesis continues without expansion.
func (s *Synthesizer) termGraph(ctx context.Context, sorted []core.KeywordItem) core.TermGraph {
	empty := core.TermGraph{}
	if s.engine == nil || len(sorted) < 2 {
		return empty
	}

	top := sorted
	if len(top) > relateLimit {
		top = top[:relateLimit]
	}
	graph, err := s.engine.Relate(ctx, top)
	if err != nil {
		s.logger.Warn("relationship engine failed, synthesizing without expansion", "err", err)
		return empty
	}
	return graph
}

// synthesizeCategorized builds the query from role, skill, and
// qualification groups, AND-ing together whichever are non-empty.
func (s *Synthesizer) synthesizeCategorized(sorted []core.KeywordItem, graph core.TermGraph) string {
	var roles, skills, quals, extras []string
	for _, k := range sorted {
		switch k.Category {
		case core.CategoryRole:
			roles = append(roles, k.Keyword)
		case core.CategorySkill:
			skills = append(skills, k.Keyword)
		case core.CategoryQualification:
			quals = append(quals, k.Keyword)
		default:
			extras = append(extras, k.Keyword)
		}
	}

	var groups []string

	if len(roles) > 0 {
		groups = append(groups, orGroup(s.expandAll(roles, graph, expandStrict)))
	}

	essential := skills
	if len(essential) > essentialCategorized {
		essential = essential[:essentialCategorized]
	}
	optional := append(slices.Clone(skills[min(len(skills), essentialCategorized):]), extras...)
	for _, skill := range essential {
		alternatives := s.expand(skill, graph, expandRelaxed, essential)
		// A term absorbed as an alternative no longer needs its own
		// optional slot.
		for _, alt := range alternatives {
			if i := slices.Index(optional, alt); i >= 0 {
				optional = slices.Delete(optional, i, i+1)
			}
		}
		groups = append(groups, orGroup(append([]string{skill}, alternatives...)))
	}

	if len(optional) > 0 {
		groups = append(groups, s.optionalGroup(optional, graph))
	}

	if len(quals) > 0 {
		groups = append(groups, orGroup(s.expandAll(quals, graph, expandStrict)))
	}

	return strings.Join(groups, " AND ")
}

// synthesizeUncategorized requires the top keywords and groups the rest.
func (s *Synthesizer) synthesizeUncategorized(sorted []core.KeywordItem, graph core.TermGraph) string {
	terms := make([]string, len(sorted))
	for i, k := range sorted {
		terms[i] = k.Keyword
	}

	essential := terms
	if len(essential) > essentialUncategorized {
		essential = essential[:essentialUncategorized]
	}

	remaining := slices.Clone(terms[len(essential):])

	var groups []string
	for _, term := range essential {
		alternatives := s.expand(term, graph, expandStrict, essential)
		for _, alt := range alternatives {
			if i := slices.Index(remaining, alt); i >= 0 {
				remaining = slices.Delete(remaining, i, i+1)
			}
		}
		groups = append(groups, orGroup(append([]string{term}, alternatives...)))
	}

	if len(remaining) > 0 {
		groups = append(groups, s.clusterGroups(remaining, graph))
	}

	return strings.Join(groups, " AND ")
}

// optionalGroup renders optional terms as one OR group, sub-grouped by the
// graph's clusters when available.
func (s *Synthesizer) optionalGroup(optional []string, graph core.TermGraph) string {
	if len(graph.Clusters) == 0 {
		return orGroup(optional)
	}

	clusterOf := make(map[string]string, len(optional))
	for _, cluster := range graph.Clusters {
		for _, term := range cluster.Terms {
			clusterOf[term] = cluster.Id
		}
	}

	used := make(map[string]bool, len(optional))
	var parts []string
	for _, term := range optional {
		if used[term] {
			continue
		}
		group := []string{term}
		used[term] = true
		if id := clusterOf[term]; id != "" {
			for _, other := range optional {
				if !used[other] && clusterOf[other] == id {
					group = append(group, other)
					used[other] = true
				}
			}
		}
		parts = append(parts, orGroup(group))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// clusterGroups greedily groups terms that share a strong connection and
// renders them as one OR group of subgroups.
func (s *Synthesizer) clusterGroups(terms []string, graph core.TermGraph) string {
	used := make(map[string]bool, len(terms))
	var parts []string
	for _, term := range terms {
		if used[term] {
			continue
		}
		group := []string{term}
		used[term] = true
		for _, other := range terms {
			if !used[other] && connectionStrength(graph, term, other) > expandRelaxed {
				group = append(group, other)
				used[other] = true
			}
		}
		parts = append(parts, orGroup(group))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// expand returns up to expansionLimit graph neighbors of term above the
// threshold, skipping excluded terms. Order follows the graph's
// strength-sorted connections, so expansion is deterministic.
func (s *Synthesizer) expand(term string, graph core.TermGraph, threshold float64, exclude []string) []string {
	var alternatives []string
	for _, conn := range graph.Connections {
		if len(alternatives) >= s.expansionLimit {
			break
		}
		if conn.Strength <= threshold {
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
		if neighbor == term || slices.Contains(exclude, neighbor) || slices.Contains(alternatives, neighbor) {
			continue
		}
		alternatives = append(alternatives, neighbor)
	}
	return alternatives
}

// expandAll merges a term list with each term's expansions, deduplicated,
// preserving order.
func (s *Synthesizer) expandAll(terms []string, graph core.TermGraph, threshold float64) []string {
	merged := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	add := func(term string) {
		if !seen[term] {
			seen[term] = true
			merged = append(merged, term)
		}
	}
	for _, term := range terms {
		add(term)
		for _, alt := range s.expand(term, graph, threshold, terms) {
			add(alt)
		}
	}
	return merged
}

// hasCategories reports whether any keyword carries a role, skill, or
// qualification category.
func hasCategories(keywords []core.KeywordItem) bool {
	for _, k := range keywords {
		switch k.Category {
		case core.CategoryRole, core.CategorySkill, core.CategoryQualification:
			return true
		}
	}
	return false
}

// connectionStrength returns the strength of the edge between two terms,
// or 0 when absent.
func connectionStrength(graph core.TermGraph, a, b string) float64 {
	for _, conn := range graph.Connections {
		if (conn.Source == a && conn.Target == b) || (conn.Source == b && conn.Target == a) {
			return conn.Strength
		}
	}
	return 0
}

// orGroup renders terms as a quoted OR group; a single term is just
// quoted.
func orGroup(terms []string) string {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = `"` + term + `"`
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return "(" + strings.Join(quoted, " OR ") + ")"
}

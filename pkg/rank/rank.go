// Package rank selects trend setters - the most influential accounts of
// each community in a follows graph.
//
// For every community with more than two members, the top decile (rounded
// up) by the configured metric is marked as trend setters. The metric is a
// pluggable strategy: the authoritative default ranks by follower count
// (in-degree); ranking by following count (out-degree) is available for
// callers that need parity with older deployments.
//
// Ranking is a pure function of the graph and the community memberships: it
// returns a fresh [Set] per call and never mutates the graph, so repeated
// invocations are idempotent.
package rank

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/trendspot/pkg/digraph"
)

// DefaultTopFraction is the share of each community marked as trend
// setters, rounded up.
const DefaultTopFraction = 0.1

// minCommunitySize is the exclusive lower bound on community size;
// communities of two or fewer members contribute no trend setters.
const minCommunitySize = 2

// Metric scores a vertex for influence ranking. Higher scores rank first.
// Scores are always taken from the full graph, not the community subgraph,
// so edges crossing community boundaries still count.
type Metric func(g *digraph.Graph, id int) int

// ByFollowers ranks by incoming-edge count - the number of accounts
// following the vertex. This is the authoritative trendspot metric.
func ByFollowers(g *digraph.Graph, id int) int { return g.InDegree(id) }

// ByFollowing ranks by outgoing-edge count. Kept for parity with analysis
// runs produced before the metric was settled; prefer [ByFollowers].
func ByFollowing(g *digraph.Graph, id int) int { return g.OutDegree(id) }

// Set holds the IDs selected as trend setters in one ranking pass.
type Set map[int]bool

// Contains reports whether id was selected.
func (s Set) Contains(id int) bool { return s[id] }

// IDs returns the selected vertex IDs in ascending order.
func (s Set) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Option configures a ranking pass.
type Option func(*options)

type options struct {
	metric      Metric
	topFraction float64
}

// WithMetric overrides the ranking metric. Nil metrics are ignored.
func WithMetric(m Metric) Option {
	return func(o *options) {
		if m != nil {
			o.metric = m
		}
	}
}

// WithTopFraction overrides the selected share per community. Values
// outside (0, 1] are ignored and the default of 0.1 is kept.
func WithTopFraction(f float64) Option {
	return func(o *options) {
		if f > 0 && f <= 1 {
			o.topFraction = f
		}
	}
}

// TrendSetters ranks every community and returns the union of each
// community's top selections. Communities are the membership lists produced
// by the community package; members are sorted descending by metric with a
// stable tie-break on membership order, and the top ceil(fraction*size) are
// selected. Communities with two or fewer members are skipped.
func TrendSetters(g *digraph.Graph, communities [][]int, opts ...Option) Set {
	o := options{metric: ByFollowers, topFraction: DefaultTopFraction}
	for _, fn := range opts {
		fn(&o)
	}

	setters := make(Set)
	for _, members := range communities {
		if len(members) <= minCommunitySize {
			continue
		}
		ranked := slices.Clone(members)
		slices.SortStableFunc(ranked, func(a, b int) int {
			return cmp.Compare(o.metric(g, b), o.metric(g, a))
		})
		k := ceilFraction(len(members), o.topFraction)
		for _, id := range ranked[:k] {
			setters[id] = true
		}
	}
	return setters
}

// ceilFraction computes ceil(f*n), clamped to n.
func ceilFraction(n int, f float64) int {
	k := int(math.Ceil(f * float64(n)))
	if k > n {
		k = n
	}
	return k
}

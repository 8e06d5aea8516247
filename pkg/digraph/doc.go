// Package digraph provides the directed follows graph at the core of
// trendspot's social network analysis.
//
// # Overview
//
// Trendspot models a social network as a directed graph over integer account
// IDs: an edge u→v means account u follows account v. The graph maintains
// two adjacency views per vertex - Following (outgoing) and Followers
// (incoming) - that are kept consistent through a single edge mutation path,
// so asymmetric states cannot be produced by Add/Remove alone.
//
// # Basic Usage
//
// Create a graph with [New], register vertices with [Graph.AddVertex], then
// connect them with [Graph.AddEdge]. Vertices must exist before edges
// referencing them:
//
//	g := digraph.New()
//	g.AddVertex(1)
//	g.AddVertex(2)
//	if err := g.AddEdge(1, 2); err != nil { ... }
//
// Query structure with [Graph.Following], [Graph.Followers], the degree
// counters, and [Graph.Export] for a deduplicated adjacency snapshot.
//
// # Duplicate Edges
//
// AddEdge does not deduplicate: adding the same pair twice produces two
// entries in both views. Degrees count duplicates, which in turn affects
// influence ranking. This mirrors re-follow events in ingested data.
//
// # Subgraphs
//
// [Graph.Egonet] and [Graph.Induced] build detached copies: vertices are
// re-created and edges re-attached only between members, so mutating a
// subgraph never affects its parent. The community and viral packages use
// the same mechanism for component subgraphs and generation snapshots.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Detached subgraphs are
// independent and may be processed in parallel.
//
// # Related Packages
//
// [community] decomposes a graph into strongly connected components,
// [rank] selects trend setters per component, and [viral] simulates
// content propagation over the followers view.
//
// [community]: github.com/matzehuels/trendspot/pkg/community
// [rank]: github.com/matzehuels/trendspot/pkg/rank
// [viral]: github.com/matzehuels/trendspot/pkg/viral
package digraph

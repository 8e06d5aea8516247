package digraph

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownVertex is returned by [Graph.AddEdge] when either endpoint
	// has not been added to the graph. Vertices must exist before edges
	// referencing them.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrVertexNotFound is returned by [Graph.Vertex] and [Graph.Egonet]
	// when a direct lookup misses.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrEdgeNotFound is returned by [Graph.RemoveEdge] when the edge does
	// not exist. It is advisory: the graph is unchanged and callers that
	// treat removal as best-effort may ignore it.
	ErrEdgeNotFound = errors.New("edge not found")
)

// Vertex is a single account in the follows network. Following holds the
// accounts this vertex follows (outgoing edges) and Followers the accounts
// following it (incoming edges). Both lists preserve insertion order and may
// contain duplicates - AddEdge does not deduplicate, so parallel edges count
// toward degrees.
//
// A Vertex is owned by the Graph that created it; the slices are live views
// mutated by edge operations.
type Vertex struct {
	ID        int
	Following []int
	Followers []int
}

// Graph is a directed follows graph keyed by integer vertex ID.
//
// Edges are stored as one canonical relation with two index views: each
// vertex's Following (by-source) and Followers (by-target) lists. All edge
// mutation goes through AddEdge/RemoveEdge, which update both views, so the
// views never drift apart.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	vertices map[int]*Vertex
	order    []int    // vertex IDs in insertion order
	edges    [][2]int // [from, to] pairs in insertion order, duplicates kept
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{vertices: make(map[int]*Vertex)}
}

// AddVertex inserts a fresh vertex with empty edge lists. If id already
// exists the vertex is silently replaced - last write wins - and every edge
// incident to the old vertex is removed through RemoveEdge first, so
// neighbor views and Size never retain orphaned edges.
func (g *Graph) AddVertex(id int) {
	if old, exists := g.vertices[id]; exists {
		for _, to := range slices.Clone(old.Following) {
			_ = g.RemoveEdge(id, to)
		}
		for _, from := range slices.Clone(old.Followers) {
			_ = g.RemoveEdge(from, id)
		}
	} else {
		g.order = append(g.order, id)
	}
	g.vertices[id] = &Vertex{ID: id}
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id int) bool {
	_, ok := g.vertices[id]
	return ok
}

// Vertex returns the vertex with the given ID.
// Returns ErrVertexNotFound if absent.
func (g *Graph) Vertex(id int) (*Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	return v, nil
}

// AddEdge records that from follows to. Both endpoints must already exist;
// otherwise ErrUnknownVertex is returned and the graph is unchanged.
//
// Duplicate edges are allowed: calling AddEdge twice with the same pair
// produces two entries in both views, which counts toward degrees and
// through them toward influence ranking.
func (g *Graph) AddEdge(from, to int) error {
	src, ok := g.vertices[from]
	if !ok {
		return ErrUnknownVertex
	}
	dst, ok := g.vertices[to]
	if !ok {
		return ErrUnknownVertex
	}
	src.Following = append(src.Following, to)
	dst.Followers = append(dst.Followers, from)
	g.edges = append(g.edges, [2]int{from, to})
	return nil
}

// RemoveEdge removes the first occurrence of the edge from→to, updating
// both the by-source and by-target views so they stay consistent. If the
// edge does not exist, the graph is unchanged and the advisory
// ErrEdgeNotFound is returned.
func (g *Graph) RemoveEdge(from, to int) error {
	src, ok := g.vertices[from]
	if !ok {
		return ErrEdgeNotFound
	}
	i := slices.Index(src.Following, to)
	if i < 0 {
		return ErrEdgeNotFound
	}
	src.Following = slices.Delete(src.Following, i, i+1)

	// The matching reverse entry is guaranteed to exist because both views
	// are only ever written through AddEdge.
	if dst, ok := g.vertices[to]; ok {
		if j := slices.Index(dst.Followers, from); j >= 0 {
			dst.Followers = slices.Delete(dst.Followers, j, j+1)
		}
	}
	if k := slices.Index(g.edges, [2]int{from, to}); k >= 0 {
		g.edges = slices.Delete(g.edges, k, k+1)
	}
	return nil
}

// VertexIDs returns all vertex IDs in insertion order. The order is stable
// across reads but callers must not assume stability across mutation.
// The returned slice is a copy.
func (g *Graph) VertexIDs() []int {
	return slices.Clone(g.order)
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.vertices) }

// Size returns the number of edges, counting duplicates.
func (g *Graph) Size() int { return len(g.edges) }

// EdgeList returns every edge as a [from, to] pair in insertion order,
// duplicates included. Replaying the list through AddEdge on a graph with
// the same vertices reproduces g exactly, including the order of both
// adjacency views. The returned slice is a copy.
func (g *Graph) EdgeList() [][2]int {
	return slices.Clone(g.edges)
}

// Following returns the outgoing neighbor list of id, or nil if the vertex
// doesn't exist. The returned slice is a read-only view.
func (g *Graph) Following(id int) []int {
	if v, ok := g.vertices[id]; ok {
		return v.Following
	}
	return nil
}

// Followers returns the incoming neighbor list of id, or nil if the vertex
// doesn't exist. The returned slice is a read-only view.
func (g *Graph) Followers(id int) []int {
	if v, ok := g.vertices[id]; ok {
		return v.Followers
	}
	return nil
}

// OutDegree returns the number of outgoing edges of id, counting duplicates.
// Returns 0 if the vertex doesn't exist.
func (g *Graph) OutDegree(id int) int { return len(g.Following(id)) }

// InDegree returns the number of incoming edges of id, counting duplicates.
// Returns 0 if the vertex doesn't exist.
func (g *Graph) InDegree(id int) int { return len(g.Followers(id)) }

// Induced returns a new detached graph over the given vertex IDs, with the
// edges of g re-added between pairs that are both members. Edges to or from
// vertices outside the set are dropped. IDs absent from g are ignored;
// duplicate IDs collapse to one membership.
//
// The result copies selected vertices and re-attaches neighbor lists - it
// shares no mutable storage with g.
func (g *Graph) Induced(ids []int) *Graph {
	members := make(map[int]bool, len(ids))
	sub := New()
	for _, id := range ids {
		if !g.HasVertex(id) || members[id] {
			continue
		}
		members[id] = true
		sub.AddVertex(id)
	}
	for _, id := range sub.order {
		for _, to := range g.vertices[id].Following {
			if members[to] {
				// Both endpoints exist in sub, so AddEdge cannot fail.
				_ = sub.AddEdge(id, to)
			}
		}
	}
	return sub
}

// Egonet returns the induced subgraph over center and every vertex it
// follows. Edges are kept only between members of that set. Returns
// ErrVertexNotFound if center is absent.
func (g *Graph) Egonet(center int) (*Graph, error) {
	v, ok := g.vertices[center]
	if !ok {
		return nil, ErrVertexNotFound
	}
	ids := make([]int, 0, len(v.Following)+1)
	ids = append(ids, center)
	ids = append(ids, v.Following...)
	return g.Induced(ids), nil
}

// Transpose returns a new graph with the same vertex set and every edge
// reversed: u→v in g becomes v→u in the result.
func (g *Graph) Transpose() *Graph {
	t := New()
	for _, id := range g.order {
		t.AddVertex(id)
	}
	for _, id := range g.order {
		for _, to := range g.vertices[id].Following {
			_ = t.AddEdge(to, id)
		}
	}
	return t
}

// Export returns a read-only adjacency view: for every vertex, the set of
// its outgoing neighbor IDs, deduplicated and sorted for deterministic
// serialization.
func (g *Graph) Export() map[int][]int {
	out := make(map[int][]int, len(g.vertices))
	for id, v := range g.vertices {
		seen := make(map[int]bool, len(v.Following))
		neighbors := make([]int, 0, len(v.Following))
		for _, to := range v.Following {
			if !seen[to] {
				seen[to] = true
				neighbors = append(neighbors, to)
			}
		}
		slices.Sort(neighbors)
		out[id] = neighbors
	}
	return out
}

// Clone returns a deep copy of g sharing no storage with it. Edges are
// replayed in insertion order, so both adjacency views match the original
// exactly.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, id := range g.order {
		c.AddVertex(id)
	}
	for _, e := range g.edges {
		_ = c.AddEdge(e[0], e[1])
	}
	return c
}

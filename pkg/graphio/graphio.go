// Package graphio serializes follows graphs to and from JSON.
//
// Two forms are provided. [Document] is the user-facing interchange
// representation: a sorted vertex list plus a deduplicated adjacency map,
// designed for deterministic, diffable output. Duplicate follow events are
// collapsed on export, matching the Export adjacency view. [Snapshot] is
// the lossless form used for caching and hashing: it keeps vertex and edge
// insertion order and duplicate follows, so restoring a snapshot yields a
// graph indistinguishable from the one that was serialized.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/matzehuels/trendspot/pkg/digraph"
)

// Document is the serialized form of a follows graph.
type Document struct {
	Vertices []int            `json:"vertices"`
	Edges    map[string][]int `json:"edges"` // source ID (as string) → sorted target IDs
}

// FromGraph builds the serializable document for g. Vertices are sorted and
// the adjacency comes from [digraph.Graph.Export], so the output is
// deterministic regardless of insertion order.
func FromGraph(g *digraph.Graph) Document {
	ids := g.VertexIDs()
	slices.Sort(ids)

	edges := make(map[string][]int)
	for id, neighbors := range g.Export() {
		if len(neighbors) > 0 {
			edges[strconv.Itoa(id)] = neighbors
		}
	}
	return Document{Vertices: ids, Edges: edges}
}

// ToGraph reconstructs a graph from a document. Returns an error if an edge
// references a vertex missing from the vertex list or a source key is not
// an integer.
func ToGraph(doc Document) (*digraph.Graph, error) {
	g := digraph.New()
	for _, id := range doc.Vertices {
		g.AddVertex(id)
	}
	for key, targets := range doc.Edges {
		from, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("edge source %q is not an integer: %w", key, err)
		}
		for _, to := range targets {
			if err := g.AddEdge(from, to); err != nil {
				return nil, fmt.Errorf("edge %d→%d: %w", from, to, err)
			}
		}
	}
	return g, nil
}

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *digraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to w.
func WriteGraph(g *digraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file created with 0644 permissions.
func WriteGraphFile(g *digraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// Snapshot is the lossless serialized form of a graph: vertices and edges
// in insertion order, duplicate follows kept. The pipeline caches
// snapshots so a cache hit restores the exact graph that was ingested,
// down to degree counts and adjacency order; Document stays the
// deduplicated user-facing interchange form.
type Snapshot struct {
	Vertices []int    `json:"vertices"`
	Edges    [][2]int `json:"edges"` // [from, to] pairs in insertion order
}

// SnapshotGraph captures g as a lossless snapshot.
func SnapshotGraph(g *digraph.Graph) Snapshot {
	return Snapshot{Vertices: g.VertexIDs(), Edges: g.EdgeList()}
}

// RestoreGraph rebuilds a graph from a snapshot by replaying its edges in
// order. Returns an error if an edge references a vertex missing from the
// vertex list.
func RestoreGraph(s Snapshot) (*digraph.Graph, error) {
	g := digraph.New()
	for _, id := range s.Vertices {
		g.AddVertex(id)
	}
	for _, e := range s.Edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d→%d: %w", e[0], e[1], err)
		}
	}
	return g, nil
}

// MarshalSnapshot converts a graph to lossless JSON bytes.
func MarshalSnapshot(g *digraph.Graph) ([]byte, error) {
	return json.Marshal(SnapshotGraph(g))
}

// ReadSnapshot decodes a lossless JSON snapshot from r.
func ReadSnapshot(r io.Reader) (*digraph.Graph, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return RestoreGraph(s)
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*digraph.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*digraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

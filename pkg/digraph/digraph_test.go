package digraph

import (
	"errors"
	"slices"
	"testing"
)

func buildGraph(t *testing.T, n int, edges [][2]int) *Graph {
	t.Helper()
	g := New()
	for i := 1; i <= n; i++ {
		g.AddVertex(i)
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddVertex(t *testing.T) {
	g := New()
	g.AddVertex(1)
	g.AddVertex(2)

	if got := g.Order(); got != 2 {
		t.Errorf("Order() = %d, want 2", got)
	}
	if !g.HasVertex(1) || !g.HasVertex(2) {
		t.Error("expected vertices 1 and 2 to exist")
	}
	if g.HasVertex(3) {
		t.Error("vertex 3 should not exist")
	}
}

func TestAddVertexOverwrites(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 2}, {3, 1}, {1, 1}})

	// Re-adding an existing ID replaces the vertex with a fresh one and
	// detaches it from its neighbors in both directions.
	g.AddVertex(1)

	if got := g.OutDegree(1); got != 0 {
		t.Errorf("OutDegree(1) after overwrite = %d, want 0", got)
	}
	if got := g.InDegree(1); got != 0 {
		t.Errorf("InDegree(1) after overwrite = %d, want 0", got)
	}
	if got := g.Followers(2); len(got) != 0 {
		t.Errorf("Followers(2) = %v, want empty", got)
	}
	if got := g.Following(3); len(got) != 0 {
		t.Errorf("Following(3) = %v, want empty", got)
	}
	if got := g.Size(); got != 0 {
		t.Errorf("Size() = %d, want 0", got)
	}
	if got := g.Order(); got != 3 {
		t.Errorf("Order() = %d, want 3", got)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		wantErr  error
	}{
		{"Valid", 1, 2, nil},
		{"SelfLoop", 1, 1, nil},
		{"UnknownSource", 9, 1, ErrUnknownVertex},
		{"UnknownTarget", 1, 9, ErrUnknownVertex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, 2, nil)
			err := g.AddEdge(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge(%d, %d) = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestAddEdgeUpdatesBothViews(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 2}, {1, 3}, {3, 2}})

	if got := g.Following(1); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("Following(1) = %v, want [2 3]", got)
	}
	if got := g.Followers(2); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Followers(2) = %v, want [1 3]", got)
	}
	if got := g.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
}

func TestAddEdgeAllowsDuplicates(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{1, 2}, {1, 2}})

	if got := g.OutDegree(1); got != 2 {
		t.Errorf("OutDegree(1) = %d, want 2 (duplicates count)", got)
	}
	if got := g.InDegree(2); got != 2 {
		t.Errorf("InDegree(2) = %d, want 2 (duplicates count)", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 2}, {1, 3}, {2, 3}})

	if err := g.RemoveEdge(1, 2); err != nil {
		t.Fatalf("RemoveEdge(1, 2): %v", err)
	}

	if got := g.Following(1); !slices.Equal(got, []int{3}) {
		t.Errorf("Following(1) = %v, want [3]", got)
	}
	// Symmetric removal: the reverse view is updated too.
	if got := g.Followers(2); len(got) != 0 {
		t.Errorf("Followers(2) = %v, want empty", got)
	}
	if got := g.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
}

func TestRemoveEdgeFirstOccurrenceOnly(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{1, 2}, {1, 2}})

	if err := g.RemoveEdge(1, 2); err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}

	if got := g.OutDegree(1); got != 1 {
		t.Errorf("OutDegree(1) = %d, want 1", got)
	}
	if got := g.InDegree(2); got != 1 {
		t.Errorf("InDegree(2) = %d, want 1", got)
	}
}

func TestRemoveEdgeMissing(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{1, 2}})

	if err := g.RemoveEdge(2, 1); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("RemoveEdge(2, 1) = %v, want ErrEdgeNotFound", err)
	}
	// Advisory error: graph unchanged.
	if got := g.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestEdgeList(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{2, 1}, {1, 2}, {1, 2}, {3, 1}})

	want := [][2]int{{2, 1}, {1, 2}, {1, 2}, {3, 1}}
	if got := g.EdgeList(); !slices.Equal(got, want) {
		t.Errorf("EdgeList() = %v, want %v", got, want)
	}

	if err := g.RemoveEdge(1, 2); err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}
	want = [][2]int{{2, 1}, {1, 2}, {3, 1}}
	if got := g.EdgeList(); !slices.Equal(got, want) {
		t.Errorf("EdgeList() after removal = %v, want %v", got, want)
	}
}

func TestVertexLookup(t *testing.T) {
	g := buildGraph(t, 1, nil)

	if _, err := g.Vertex(1); err != nil {
		t.Errorf("Vertex(1): %v", err)
	}
	if _, err := g.Vertex(9); !errors.Is(err, ErrVertexNotFound) {
		t.Errorf("Vertex(9) = %v, want ErrVertexNotFound", err)
	}
}

func TestVertexIDsInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []int{5, 1, 3} {
		g.AddVertex(id)
	}

	if got := g.VertexIDs(); !slices.Equal(got, []int{5, 1, 3}) {
		t.Errorf("VertexIDs() = %v, want [5 1 3]", got)
	}
}

func TestEgonet(t *testing.T) {
	// 1 follows 2 and 3; 2 follows 3 and 4; 4 follows 1.
	g := buildGraph(t, 4, [][2]int{{1, 2}, {1, 3}, {2, 3}, {2, 4}, {4, 1}})

	ego, err := g.Egonet(1)
	if err != nil {
		t.Fatalf("Egonet(1): %v", err)
	}

	want := []int{1, 2, 3}
	got := ego.VertexIDs()
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("egonet vertices = %v, want %v", got, want)
	}

	// Edge 2→4 leaves the member set and must be dropped; 2→3 stays.
	if got := ego.Following(2); !slices.Equal(got, []int{3}) {
		t.Errorf("Following(2) in egonet = %v, want [3]", got)
	}

	// Every edge connects two members.
	for _, id := range ego.VertexIDs() {
		for _, to := range ego.Following(id) {
			if !ego.HasVertex(to) {
				t.Errorf("egonet edge %d→%d points outside the member set", id, to)
			}
		}
	}
}

func TestEgonetDetached(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{1, 2}})

	ego, err := g.Egonet(1)
	if err != nil {
		t.Fatalf("Egonet(1): %v", err)
	}

	ego.AddVertex(99)
	_ = ego.AddEdge(1, 99)

	if g.HasVertex(99) {
		t.Error("mutating the egonet leaked into the parent graph")
	}
	if got := g.OutDegree(1); got != 1 {
		t.Errorf("parent OutDegree(1) = %d, want 1", got)
	}
}

func TestEgonetMissingCenter(t *testing.T) {
	g := New()
	if _, err := g.Egonet(4); !errors.Is(err, ErrVertexNotFound) {
		t.Errorf("Egonet(4) = %v, want ErrVertexNotFound", err)
	}
}

func TestTranspose(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 2}, {2, 3}, {3, 1}})
	tr := g.Transpose()

	if got := tr.Following(2); !slices.Equal(got, []int{1}) {
		t.Errorf("transpose Following(2) = %v, want [1]", got)
	}
	if got := tr.Size(); got != g.Size() {
		t.Errorf("transpose Size() = %d, want %d", got, g.Size())
	}
	if got := tr.Order(); got != g.Order() {
		t.Errorf("transpose Order() = %d, want %d", got, g.Order())
	}
}

func TestExportDeduplicates(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 3}, {1, 2}, {1, 2}})

	adj := g.Export()
	if got := adj[1]; !slices.Equal(got, []int{2, 3}) {
		t.Errorf("Export()[1] = %v, want [2 3]", got)
	}
	if got := adj[2]; len(got) != 0 {
		t.Errorf("Export()[2] = %v, want empty", got)
	}
}

func TestInduced(t *testing.T) {
	g := buildGraph(t, 4, [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 1}})

	sub := g.Induced([]int{1, 2, 3})
	if got := sub.Order(); got != 3 {
		t.Errorf("Order() = %d, want 3", got)
	}
	// 3→4 and 4→1 cross the boundary and are dropped.
	if got := sub.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}
}

func TestInducedIgnoresUnknownAndDuplicateIDs(t *testing.T) {
	g := buildGraph(t, 2, [][2]int{{1, 2}})

	sub := g.Induced([]int{1, 1, 2, 42})
	if got := sub.Order(); got != 2 {
		t.Errorf("Order() = %d, want 2", got)
	}
	if got := sub.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestClone(t *testing.T) {
	g := buildGraph(t, 3, [][2]int{{1, 2}, {1, 2}, {2, 3}})
	c := g.Clone()

	if got := c.OutDegree(1); got != 2 {
		t.Errorf("clone OutDegree(1) = %d, want 2", got)
	}

	_ = c.RemoveEdge(1, 2)
	if got := g.OutDegree(1); got != 2 {
		t.Errorf("mutating clone changed parent: OutDegree(1) = %d, want 2", got)
	}
}

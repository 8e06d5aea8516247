package rank

import (
	"slices"
	"testing"

	"github.com/matzehuels/trendspot/pkg/digraph"
)

func buildGraph(t *testing.T, n int, edges [][2]int) *digraph.Graph {
	t.Helper()
	g := digraph.New()
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

func TestTrendSettersSelectionCount(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int // flagged per community
	}{
		{"SizeOne", 1, 0},
		{"SizeTwo", 2, 0},
		{"SizeThree", 3, 1},
		{"SizeTen", 10, 1},
		{"SizeEleven", 11, 2},
		{"SizeFourteen", 14, 2},
		{"SizeTwenty", 20, 2},
		{"SizeTwentyOne", 21, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Directed ring: all vertices form one community.
			edges := make([][2]int, 0, tt.size)
			if tt.size > 1 {
				for i := 1; i <= tt.size; i++ {
					edges = append(edges, [2]int{i, i%tt.size + 1})
				}
			}
			g := buildGraph(t, tt.size, edges)

			members := g.VertexIDs()
			setters := TrendSetters(g, [][]int{members})
			if got := len(setters); got != tt.want {
				t.Errorf("selected = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrendSettersByFollowers(t *testing.T) {
	// Community {1..5}: vertex 3 has the most followers.
	g := buildGraph(t, 5, [][2]int{
		{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1}, // ring
		{1, 3}, {4, 3}, {5, 3},
	})

	setters := TrendSetters(g, [][]int{g.VertexIDs()})
	if !setters.Contains(3) {
		t.Errorf("setters = %v, want vertex 3 selected", setters.IDs())
	}
	if got := len(setters); got != 1 {
		t.Errorf("selected = %d, want 1", got)
	}
}

func TestTrendSettersByFollowing(t *testing.T) {
	// Vertex 1 follows everyone; vertex 5 is followed by everyone else.
	g := buildGraph(t, 5, [][2]int{
		{1, 2}, {1, 3}, {1, 4}, {1, 5},
		{2, 5}, {3, 5}, {4, 5},
		{5, 1}, {2, 1}, // close the loops so the set is one community
	})
	members := g.VertexIDs()

	byFollowers := TrendSetters(g, [][]int{members})
	if !byFollowers.Contains(5) {
		t.Errorf("ByFollowers setters = %v, want vertex 5", byFollowers.IDs())
	}

	byFollowing := TrendSetters(g, [][]int{members}, WithMetric(ByFollowing))
	if !byFollowing.Contains(1) {
		t.Errorf("ByFollowing setters = %v, want vertex 1", byFollowing.IDs())
	}
}

func TestTrendSettersStableTieBreak(t *testing.T) {
	// All five vertices have identical degrees; the first in membership
	// order must win the single slot.
	g := buildGraph(t, 5, [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 1}})

	setters := TrendSetters(g, [][]int{{4, 5, 1, 2, 3}})
	if !setters.Contains(4) || len(setters) != 1 {
		t.Errorf("setters = %v, want exactly [4]", setters.IDs())
	}
}

func TestTrendSettersDuplicateEdgesCount(t *testing.T) {
	// Duplicate follows push vertex 2 ahead despite equal distinct edges.
	g := buildGraph(t, 3, [][2]int{
		{1, 2}, {1, 2}, {1, 2},
		{2, 3}, {3, 1}, {2, 1},
	})

	setters := TrendSetters(g, [][]int{{1, 2, 3}})
	if !setters.Contains(2) {
		t.Errorf("setters = %v, want vertex 2 (duplicate follows count)", setters.IDs())
	}
}

func TestTrendSettersIdempotent(t *testing.T) {
	g := buildGraph(t, 4, [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 1}, {2, 1}})
	comms := [][]int{g.VertexIDs()}

	first := TrendSetters(g, comms)
	second := TrendSetters(g, comms)

	if !slices.Equal(first.IDs(), second.IDs()) {
		t.Errorf("repeated ranking differs: %v vs %v", first.IDs(), second.IDs())
	}
}

func TestTrendSettersMultipleCommunities(t *testing.T) {
	g := buildGraph(t, 8, [][2]int{
		{1, 2}, {2, 3}, {3, 1}, // community of 3 → 1 setter
		{4, 5}, {5, 4}, // community of 2 → none
		{6, 7}, {7, 8}, {8, 6}, // community of 3 → 1 setter
	})

	setters := TrendSetters(g, [][]int{{1, 2, 3}, {4, 5}, {6, 7, 8}})
	if got := len(setters); got != 2 {
		t.Errorf("selected = %d, want 2", got)
	}
	if setters.Contains(4) || setters.Contains(5) {
		t.Error("two-member community must contribute no trend setters")
	}
}

func TestWithTopFraction(t *testing.T) {
	g := buildGraph(t, 10, nil)
	members := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	setters := TrendSetters(g, [][]int{members}, WithTopFraction(0.5))
	if got := len(setters); got != 5 {
		t.Errorf("selected = %d, want 5", got)
	}

	// Out-of-range fractions keep the default.
	setters = TrendSetters(g, [][]int{members}, WithTopFraction(3))
	if got := len(setters); got != 1 {
		t.Errorf("selected = %d, want 1", got)
	}
}

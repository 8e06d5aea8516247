// Package community decomposes a follows graph into strongly connected
// components using Kosaraju's two-pass algorithm.
//
// An SCC groups accounts that are all mutually reachable through follow
// edges - trendspot treats these as communities for influence ranking.
// Both passes use an explicit work stack instead of recursion, so very
// large graphs cannot overflow the call stack. Runs in O(V+E).
package community

import (
	"github.com/matzehuels/trendspot/pkg/digraph"
)

// frame is one entry of the iterative DFS stack: a vertex and a cursor into
// its neighbor list.
type frame struct {
	id   int
	next int
}

// Components returns the SCC memberships of g. Every vertex appears in
// exactly one component; isolated vertices form singletons. Components are
// ordered by the second pass's root discovery, which follows decreasing
// first-pass finish time, and membership is deterministic for a given graph
// because traversal follows the graph's insertion-ordered vertex IDs.
func Components(g *digraph.Graph) [][]int {
	order := finishOrder(g)
	t := g.Transpose()

	visited := make(map[int]bool, g.Order())
	var components [][]int
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if visited[root] {
			continue
		}
		components = append(components, collect(t, root, visited))
	}
	return components
}

// Decompose returns one detached subgraph per SCC of g. Each subgraph is
// closed: it contains the component's vertices and only the edges between
// them, matching the egonet filtering policy. The union of the returned
// vertex sets partitions g's vertex set exactly.
func Decompose(g *digraph.Graph) []*digraph.Graph {
	comps := Components(g)
	subs := make([]*digraph.Graph, len(comps))
	for i, members := range comps {
		subs[i] = g.Induced(members)
	}
	return subs
}

// finishOrder runs the first DFS pass over g in vertex insertion order and
// returns vertex IDs in increasing finish time (last finished last).
func finishOrder(g *digraph.Graph) []int {
	visited := make(map[int]bool, g.Order())
	order := make([]int, 0, g.Order())

	for _, root := range g.VertexIDs() {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			nbrs := g.Following(top.id)
			if top.next < len(nbrs) {
				n := nbrs[top.next]
				top.next++
				if !visited[n] {
					visited[n] = true
					stack = append(stack, frame{id: n})
				}
				continue
			}
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}

// collect walks the transpose from root and returns every newly reached
// vertex - one SCC of the original graph.
func collect(t *digraph.Graph, root int, visited map[int]bool) []int {
	visited[root] = true
	members := []int{root}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := t.Following(top.id)
		if top.next < len(nbrs) {
			n := nbrs[top.next]
			top.next++
			if !visited[n] {
				visited[n] = true
				members = append(members, n)
				stack = append(stack, frame{id: n})
			}
			continue
		}
		stack = stack[:len(stack)-1]
	}
	return members
}

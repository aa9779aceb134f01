// Package digraph implements the shared reachability engine behind the
// FIRST, FOLLOW, and LALR(1) lookahead analyzers: a directed graph
// on a dense integer vertex space plus a single "traverse and union"
// primitive.
package digraph

import "github.com/tanagra-tools/lrforge/internal/util"

// Graph is a directed graph over vertices [0, N) with no parallel edges.
type Graph struct {
	n     int
	edges [][]int
}

// New returns an empty graph over n vertices.
func New(n int) *Graph {
	return &Graph{n: n, edges: make([][]int, n)}
}

// AddEdge adds a directed edge from -> to. Duplicate edges are silently
// ignored.
func (g *Graph) AddEdge(from, to int) {
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// N returns the number of vertices.
func (g *Graph) N() int { return g.n }

// Neighbors returns the out-edges of v.
func (g *Graph) Neighbors(v int) []int { return g.edges[v] }

// Traverse computes, for every vertex v, F[v] = union of init[u] over every
// u reachable from v (including v itself), by depth-first traversal from
// each vertex. This is the shared primitive behind FIRST, FOLLOW, and the
// LALR(1) digraph's Read/Follow set equations: each of those reduces to
// "direct contribution sets (init) + a superset-relation graph + Traverse".
func Traverse[T comparable](g *Graph, init []util.Set[T]) []util.Set[T] {
	out := make([]util.Set[T], g.n)
	for v := 0; v < g.n; v++ {
		out[v] = util.NewSet[T]()
		visited := make([]bool, g.n)
		var stack []int
		stack = append(stack, v)
		visited[v] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			out[v].AddAll(init[u])
			for _, w := range g.Neighbors(u) {
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return out
}

// ABOUTME: Tests for BFS, connected components and degree centrality, including partition and reachability properties.
// ABOUTME: Property checks run over a fixed family of generated graphs so results are reproducible.
package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *Graph {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("B", "D")
	g.AddEdge("C", "D")
	return g
}

func TestBFSSquare(t *testing.T) {
	order, err := square().BFS("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
}

func TestBFSStaysInComponent(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("X", "Y")

	order, err := g.BFS("X")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, order)
}

func TestBFSIsolatedNode(t *testing.T) {
	g := New()
	g.AddNode("solo")

	order, err := g.BFS("solo")
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, order)
}

func TestBFSUnknownStart(t *testing.T) {
	g := square()
	order, err := g.BFS("Z")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, order)
	assert.Equal(t, 4, g.Len(), "failed lookup must not alter the store")
	assert.False(t, g.Has("Z"))
}

func TestBFSWithSelfLoopAndParallelEdges(t *testing.T) {
	g := New()
	g.AddEdge("a", "a")
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	order, err := g.BFS("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestConnectedComponentsSquare(t *testing.T) {
	comps := square().ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Equal(t, []string{"A", "B", "D", "C"}, comps[0])
}

func TestConnectedComponentsDisjoint(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("X", "Y")

	assert.Equal(t, [][]string{{"A", "B"}, {"X", "Y"}}, g.ConnectedComponents())
}

func TestConnectedComponentsIncludesIsolatedNodes(t *testing.T) {
	g := New()
	g.AddNode("lonely")
	g.AddEdge("a", "b")

	assert.Equal(t, [][]string{{"lonely"}, {"a", "b"}}, g.ConnectedComponents())
}

func TestConnectedComponentsEmpty(t *testing.T) {
	assert.Empty(t, New().ConnectedComponents())
}

func TestConnectedComponentsDFSPreOrder(t *testing.T) {
	// r -> [x, y]; x -> [z]; the recursive pre-order is r x z y.
	g := New()
	g.AddEdge("r", "x")
	g.AddEdge("r", "y")
	g.AddEdge("x", "z")

	assert.Equal(t, [][]string{{"r", "x", "z", "y"}}, g.ConnectedComponents())
}

func TestConnectedComponentsLongPath(t *testing.T) {
	g := New()
	const n = 200000
	for i := 0; i < n-1; i++ {
		g.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1))
	}

	comps := g.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], n)
	assert.Equal(t, "n0", comps[0][0])
	assert.Equal(t, fmt.Sprintf("n%d", n-1), comps[0][n-1])
}

func TestDegreeCentralitySquare(t *testing.T) {
	assert.Equal(t, map[string]int{"A": 2, "B": 2, "C": 2, "D": 2}, square().DegreeCentrality())
}

func TestDegreeCentralityCountsParallelEdges(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	before := g.DegreeCentrality()
	g.AddEdge("a", "b")
	after := g.DegreeCentrality()

	assert.Equal(t, before["a"]+1, after["a"])
	assert.Equal(t, before["b"]+1, after["b"])
}

func TestDegreeCentralityCountsSelfLoops(t *testing.T) {
	g := New()
	g.AddEdge("a", "a")
	g.AddNode("b")

	assert.Equal(t, map[string]int{"a": 2, "b": 0}, g.DegreeCentrality())
}

func TestDegreeCentralityIsIdempotent(t *testing.T) {
	g := square()
	assert.Equal(t, g.DegreeCentrality(), g.DegreeCentrality())
}

// randomGraph builds a reproducible sparse graph for property checks.
func randomGraph(seed int64, nodes, edges int) *Graph {
	r := rand.New(rand.NewSource(seed))
	g := New()
	for i := 0; i < nodes; i++ {
		g.AddNode(fmt.Sprintf("v%02d", i))
	}
	for i := 0; i < edges; i++ {
		g.AddEdge(fmt.Sprintf("v%02d", r.Intn(nodes)), fmt.Sprintf("v%02d", r.Intn(nodes)))
	}
	return g
}

// reachable computes the closure from start by fixed-point iteration over Edges.
func reachable(g *Graph, start string) map[string]bool {
	seen := map[string]bool{start: true}
	for changed := true; changed; {
		changed = false
		for _, e := range g.Edges() {
			if seen[e.From] != seen[e.To] {
				seen[e.From], seen[e.To] = true, true
				changed = true
			}
		}
	}
	return seen
}

func TestTraversalProperties(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := randomGraph(seed, 30, 25)

			// Components partition the node set.
			comps := g.ConnectedComponents()
			owner := make(map[string]int)
			for i, comp := range comps {
				for _, id := range comp {
					_, dup := owner[id]
					require.False(t, dup, "node %s appears in two components", id)
					owner[id] = i
				}
			}
			require.Len(t, owner, g.Len())

			for _, id := range g.NodeIDs() {
				reach := reachable(g, id)

				// BFS visits exactly the reachable set, each node once.
				order, err := g.BFS(id)
				require.NoError(t, err)
				require.Len(t, order, len(reach))
				for _, v := range order {
					require.True(t, reach[v])
				}

				// Two nodes share a component iff a path connects them.
				for other := range reach {
					require.Equal(t, owner[id], owner[other])
				}
				require.Len(t, comps[owner[id]], len(reach))
			}

			// Degree equals recorded endpoints.
			total := 0
			for _, d := range g.DegreeCentrality() {
				total += d
			}
			require.Equal(t, 2*g.EdgeCount(), total)
		})
	}
}

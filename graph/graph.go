// ABOUTME: In-memory undirected graph store holding nodes by value with symmetric adjacency lists.
// ABOUTME: Nodes and edges are only ever added; insertion order is tracked for deterministic sweeps.
package graph

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when an operation references a node absent from the store.
var ErrNotFound = errors.New("node not found")

// Node is a vertex with its neighbor identifiers in insertion order.
// Parallel edges and self-loops appear as repeated entries.
type Node struct {
	ID        string
	Neighbors []string
}

// Degree returns the number of edge endpoints recorded at the node.
func (n Node) Degree() int {
	return len(n.Neighbors)
}

// Edge is a distinct undirected pair with From < To.
type Edge struct {
	From string
	To   string
}

// Graph is the node store. The zero value is not usable; call New.
//
// All insertions are expected to complete before analysis begins. The lock
// lets concurrent readers (e.g. HTTP handlers) share one populated graph.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]Node
	order []string
	edges int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// AddNode creates a node with no neighbors if id is unseen. It is a no-op otherwise.
func (g *Graph) AddNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(id)
}

func (g *Graph) addNodeLocked(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = Node{ID: id}
	g.order = append(g.order, id)
}

// AddEdge records an undirected edge between id1 and id2, creating either
// endpoint on demand. Repeated pairs are kept as parallel edges and id1 == id2
// records a self-loop.
func (g *Graph) AddEdge(id1, id2 string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(id1)
	g.addNodeLocked(id2)

	n1 := g.nodes[id1]
	n1.Neighbors = append(n1.Neighbors, id2)
	g.nodes[id1] = n1

	n2 := g.nodes[id2]
	n2.Neighbors = append(n2.Neighbors, id1)
	g.nodes[id2] = n2

	g.edges++
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// EdgeCount returns the number of AddEdge calls recorded, parallel edges and
// self-loops included.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// Has reports whether id is a known node.
func (g *Graph) Has(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return Node{ID: n.ID, Neighbors: append([]string(nil), n.Neighbors...)}, true
}

// Neighbors returns a copy of id's adjacency list.
func (g *Graph) Neighbors(id string) ([]string, error) {
	n, ok := g.Node(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return n.Neighbors, nil
}

// Edges returns each distinct undirected pair once, as seen from its
// lexicographically smaller endpoint. Nodes are examined in insertion order and
// neighbors in adjacency order. Parallel edges collapse into one pair and
// self-loops are omitted.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var edges []Edge
	for _, id := range g.order {
		seen := make(map[string]bool)
		for _, nb := range g.nodes[id].Neighbors {
			if id < nb && !seen[nb] {
				seen[nb] = true
				edges = append(edges, Edge{From: id, To: nb})
			}
		}
	}
	return edges
}

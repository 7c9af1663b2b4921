// ABOUTME: Structural queries over the graph store: breadth-first order, connected components, degree centrality.
// ABOUTME: Traversals are iterative and never depend on map iteration order.
package graph

import "fmt"

// BFS returns the nodes of start's connected component in breadth-first
// visitation order. Neighbors are expanded in adjacency-list order.
func (g *Graph) BFS(start string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[start]; !ok {
		return nil, fmt.Errorf("bfs from %q: %w", start, ErrNotFound)
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, nb := range g.nodes[current].Neighbors {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return order, nil
}

// ConnectedComponents partitions the node set. Roots are taken in insertion
// order and each component lists its members in depth-first pre-order.
func (g *Graph) ConnectedComponents() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := make(map[string]bool, len(g.nodes))
	var components [][]string
	for _, id := range g.order {
		if visited[id] {
			continue
		}
		components = append(components, g.explore(id, visited))
	}
	return components
}

// explore walks everything reachable from root with an explicit stack.
// Neighbors are pushed in reverse so they pop in adjacency order, which gives
// the same pre-order as the recursive formulation.
func (g *Graph) explore(root string, visited map[string]bool) []string {
	var component []string
	stack := []string{root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		component = append(component, current)

		neighbors := g.nodes[current].Neighbors
		for i := len(neighbors) - 1; i >= 0; i-- {
			if !visited[neighbors[i]] {
				stack = append(stack, neighbors[i])
			}
		}
	}
	return component
}

// DegreeCentrality maps every node to the length of its neighbor list.
// Parallel edges and self-loops both contribute.
func (g *Graph) DegreeCentrality() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	centrality := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		centrality[id] = n.Degree()
	}
	return centrality
}

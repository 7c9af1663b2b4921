// ABOUTME: Lint rules for undirected graphs: invalid IDs, self-loops, parallel edges, isolated nodes, fragmentation.
// ABOUTME: The store accepts every insertion; only IDs that cannot be reported or exported are errors.
package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/2389-research/netgraph/graph"
)

// Severity levels, most serious first.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Diagnostic is a single lint finding, optionally tied to a node or an edge.
type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	NodeID   string `json:"node_id,omitempty"`
	PeerID   string `json:"peer_id,omitempty"`
	Rule     string `json:"rule"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Rule, d.Message)
}

// Lint runs all rules on the graph and returns the diagnostics in rule order.
func Lint(g *graph.Graph) []Diagnostic {
	if g.Len() == 0 {
		return []Diagnostic{{
			Severity: SeverityWarning,
			Message:  "graph has no nodes",
			Rule:     "empty_graph",
		}}
	}

	var diags []Diagnostic
	diags = append(diags, checkIDs(g)...)
	diags = append(diags, checkSelfLoops(g)...)
	diags = append(diags, checkParallelEdges(g)...)
	diags = append(diags, checkIsolated(g)...)
	diags = append(diags, checkFragmented(g)...)
	return diags
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// checkIDs flags empty IDs, which print as blanks in every report, and IDs
// that are not valid UTF-8, which do not survive a DOT export.
func checkIDs(g *graph.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, id := range g.NodeIDs() {
		var msg string
		switch {
		case id == "":
			msg = "node has an empty ID"
		case !utf8.ValidString(id):
			msg = fmt.Sprintf("node ID %q is not valid UTF-8", id)
		default:
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Message:  msg,
			NodeID:   id,
			Rule:     "invalid_id",
		})
	}
	return diags
}

// checkSelfLoops flags nodes that list themselves as neighbors. Each loop adds
// two entries, one per endpoint.
func checkSelfLoops(g *graph.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		count := 0
		for _, nb := range n.Neighbors {
			if nb == id {
				count++
			}
		}
		if count == 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("self-loop on node %q (x%d) adds %d to its degree", id, count/2, count),
			NodeID:   id,
			PeerID:   id,
			Rule:     "self_loop",
		})
	}
	return diags
}

// checkParallelEdges flags pairs inserted more than once, reported from the
// smaller endpoint so each pair appears once.
func checkParallelEdges(g *graph.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		counts := make(map[string]int)
		var order []string
		for _, nb := range n.Neighbors {
			if nb == id || id > nb {
				continue
			}
			if counts[nb] == 0 {
				order = append(order, nb)
			}
			counts[nb]++
		}
		for _, nb := range order {
			if counts[nb] < 2 {
				continue
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("edge %q -- %q inserted %d times; degree counts each, export writes one line", id, nb, counts[nb]),
				NodeID:   id,
				PeerID:   nb,
				Rule:     "parallel_edge",
			})
		}
	}
	return diags
}

// checkIsolated flags nodes with no neighbors at all.
func checkIsolated(g *graph.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if n.Degree() > 0 {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("node %q has no edges", id),
			NodeID:   id,
			Rule:     "isolated_node",
		})
	}
	return diags
}

// checkFragmented notes when the graph splits into more than one component.
func checkFragmented(g *graph.Graph) []Diagnostic {
	comps := g.ConnectedComponents()
	if len(comps) < 2 {
		return nil
	}
	return []Diagnostic{{
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("graph has %d connected components", len(comps)),
		Rule:     "fragmented",
	}}
}

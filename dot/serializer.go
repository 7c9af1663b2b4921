// ABOUTME: Serializer that renders a graph store as an undirected DOT block, one line per distinct edge.
// ABOUTME: Also writes the rendering to disk, surfacing write failures as ErrIOFailure.
package dot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/2389-research/netgraph/graph"
)

// DefaultName is the graph name used when none is given.
const DefaultName = "G"

// ErrIOFailure wraps any failure to persist an export.
var ErrIOFailure = errors.New("export io failure")

// Serialize renders g as
//
//	graph G {
//	    "a" -- "b";
//	}
//
// Each undirected pair is written once, from its lexicographically smaller
// endpoint. Parallel edges therefore share one line and self-loops are not
// written, even though both count toward degree centrality.
//
// IDs are written byte for byte. An ID that is not valid UTF-8 produces
// output Parse rejects; validator.Lint reports such IDs as errors.
func Serialize(g *graph.Graph, name string) string {
	var b strings.Builder

	if name == "" {
		name = DefaultName
	}
	if needsQuoting(name) {
		name = quoteID(name)
	}
	fmt.Fprintf(&b, "graph %s {\n", name)

	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "    %s -- %s;\n", quoteID(e.From), quoteID(e.To))
	}

	b.WriteString("}\n")
	return b.String()
}

// WriteFile serializes g to path. The graph is only read.
func WriteFile(path string, g *graph.Graph, name string) error {
	if err := os.WriteFile(path, []byte(Serialize(g, name)), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// quoteID always double-quotes an identifier, escaping quotes and backslashes.
func quoteID(id string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range id {
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// needsQuoting reports whether a graph name must be quoted: anything other than
// an ASCII letter or underscore followed by letters, digits or underscores.
func needsQuoting(val string) bool {
	if val == "" {
		return true
	}
	if _, ok := keywords[strings.ToLower(val)]; ok {
		return true
	}
	for i, ch := range val {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && ch >= '0' && ch <= '9':
		default:
			return true
		}
	}
	return false
}

// ABOUTME: Tests for the undirected DOT serializer and file export.
// ABOUTME: Covers edge dedup rules, quoting, graph naming, round-trips through Parse, and IO failure wrapping.
package dot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/2389-research/netgraph/graph"
)

func TestSerializeSquare(t *testing.T) {
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("B", "D")
	g.AddEdge("C", "D")

	want := "graph G {\n" +
		"    \"A\" -- \"B\";\n" +
		"    \"A\" -- \"C\";\n" +
		"    \"B\" -- \"D\";\n" +
		"    \"C\" -- \"D\";\n" +
		"}\n"
	if got := Serialize(g, ""); got != want {
		t.Errorf("Serialize =\n%s\nwant\n%s", got, want)
	}
}

func TestSerializeEmptyGraph(t *testing.T) {
	if got := Serialize(graph.New(), "G"); got != "graph G {\n}\n" {
		t.Errorf("Serialize(empty) = %q", got)
	}
}

func TestSerializeDedupRules(t *testing.T) {
	g := graph.New()
	g.AddEdge("b", "a")
	g.AddEdge("a", "b")
	g.AddEdge("c", "c")
	g.AddNode("lonely")

	want := "graph G {\n    \"a\" -- \"b\";\n}\n"
	if got := Serialize(g, ""); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
	if deg := g.DegreeCentrality(); deg["a"] != 2 || deg["c"] != 2 {
		t.Errorf("degrees should still count parallel edges and self-loops: %v", deg)
	}
}

func TestSerializeEmitsFromSmallerEndpoint(t *testing.T) {
	g := graph.New()
	g.AddEdge("Zed", "Alice")
	g.AddEdge("alice", "Bob")

	// Byte ordering: "Alice" < "Bob" < "Zed" < "alice".
	want := "graph G {\n" +
		"    \"Alice\" -- \"Zed\";\n" +
		"    \"Bob\" -- \"alice\";\n" +
		"}\n"
	if got := Serialize(g, ""); got != want {
		t.Errorf("Serialize =\n%s\nwant\n%s", got, want)
	}
}

func TestQuoteID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", `"Alice"`},
		{"", `""`},
		{"two words", `"two words"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
	}
	for _, tt := range tests {
		if got := quoteID(tt.in); got != tt.want {
			t.Errorf("quoteID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerializeGraphName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "graph G {"},
		{"social", "graph social {"},
		{"_net2", "graph _net2 {"},
		{"my net", `graph "my net" {`},
		{"2fast", `graph "2fast" {`},
		{"node", `graph "node" {`},
	}
	for _, tt := range tests {
		got := Serialize(graph.New(), tt.name)
		if got[:len(tt.want)] != tt.want {
			t.Errorf("Serialize name %q header = %q, want prefix %q", tt.name, got, tt.want)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	g := graph.New()
	g.AddEdge("Alice", "Bob")
	g.AddEdge("Bob", `Quote"d`)
	g.AddEdge(`C:\path`, "Alice")
	g.AddEdge("Alice", "Bob")

	f, err := Parse(Serialize(g, "round trip"))
	if err != nil {
		t.Fatalf("Parse(Serialize) error: %v", err)
	}
	if f.Name != "round trip" {
		t.Errorf("Name = %q", f.Name)
	}
	if !reflect.DeepEqual(f.Graph.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", f.Graph.Edges(), g.Edges())
	}
}

func TestParseRejectsExportedInvalidUTF8(t *testing.T) {
	g := graph.New()
	g.AddEdge("a\xff", "b")

	_, err := Parse(Serialize(g, DefaultName))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Parse error = %v, want ErrSyntax", err)
	}
}

func TestWriteFile(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	path := filepath.Join(t.TempDir(), "graph.dot")

	if err := WriteFile(path, g, ""); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != Serialize(g, "") {
		t.Errorf("file contents = %q", data)
	}
}

func TestWriteFileFailure(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b")
	path := filepath.Join(t.TempDir(), "missing", "dir", "graph.dot")

	err := WriteFile(path, g, "")
	if err == nil {
		t.Fatal("expected write failure")
	}
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("error %v should wrap ErrIOFailure", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should keep the underlying cause", err)
	}
	if g.Len() != 2 || g.EdgeCount() != 1 {
		t.Error("failed export must not alter the graph")
	}
}

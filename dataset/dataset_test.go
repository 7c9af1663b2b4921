// ABOUTME: Tests for the sample dataset and the YAML/DOT file loaders.
// ABOUTME: Includes the expected analysis of the built-in social network.
package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2389-research/netgraph/dot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleGraph(t *testing.T) {
	g := LoadSample().Graph

	assert.Equal(t, 13, g.Len())
	assert.Equal(t, 24, g.EdgeCount())

	order, err := g.BFS("Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Alice", "Bob", "Carol", "Eve", "Heidi", "Grace", "David", "Frank",
		"Judy", "Ivan", "yashas", "sazid", "rahul",
	}, order)

	comps := g.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Equal(t, "Alice", comps[0][0])

	deg := g.DegreeCentrality()
	assert.Equal(t, 5, deg["Alice"])
	assert.Equal(t, 6, deg["Grace"])
	assert.Equal(t, 2, deg["yashas"])
}

func TestLoadYAML(t *testing.T) {
	src := `name: tiny
nodes: [hermit]
edges:
  - [a, b]
  - [b, c]
`
	d, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "tiny", d.Name)
	assert.Equal(t, [][2]string{{"a", "b"}, {"b", "c"}}, d.Edges)

	g := d.Build()
	assert.Equal(t, []string{"hermit", "a", "b", "c"}, g.NodeIDs())
}

func TestLoadYAMLEmpty(t *testing.T) {
	d, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Build().Len())
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "name: x\nweights: [1]\n"},
		{"three endpoints", "edges:\n  - [a, b, c]\n"},
		{"empty endpoint", "edges:\n  - [a, \"\"]\n"},
		{"not yaml", "edges: [[a, b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "friends.yaml", "edges:\n  - [x, y]\n")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "friends", loaded.Name, "name falls back to the file stem")
	assert.True(t, loaded.Graph.Has("x"))
}

func TestLoadFileDOTKeepsStatementOrder(t *testing.T) {
	path := writeFile(t, "net.gv", `graph net { b -- c; a -- b; b -- a; lonely }`)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "net", loaded.Name)
	assert.Equal(t, []string{"b", "c", "a", "lonely"}, loaded.Graph.NodeIDs())

	nbs, err := loaded.Graph.Neighbors("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "a"}, nbs)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(writeFile(t, "edges.csv", "a,b\n"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadFile(writeFile(t, "bad.dot", "digraph { a -> b }"))
	assert.True(t, errors.Is(err, dot.ErrSyntax))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

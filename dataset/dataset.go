// ABOUTME: Edge-list datasets: the built-in social sample and loaders for YAML and DOT input files.
// ABOUTME: Loaders insert nodes and edges in source order so traversal results follow the file.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389-research/netgraph/dot"
	"github.com/2389-research/netgraph/graph"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for input files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a named edge list plus optional isolated nodes.
type Dataset struct {
	Name  string      `yaml:"name"`
	Nodes []string    `yaml:"nodes,omitempty"`
	Edges [][2]string `yaml:"edges"`
}

// Build inserts nodes first, then edges, into a fresh graph.
func (d *Dataset) Build() *graph.Graph {
	g := graph.New()
	for _, id := range d.Nodes {
		g.AddNode(id)
	}
	for _, e := range d.Edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// Sample returns the 24-edge social network shipped with the tool.
func Sample() *Dataset {
	return &Dataset{
		Name: "social",
		Edges: [][2]string{
			{"Alice", "Bob"},
			{"Alice", "Carol"},
			{"Bob", "David"},
			{"Carol", "David"},
			{"Alice", "Eve"},
			{"Eve", "Frank"},
			{"Frank", "Grace"},
			{"Grace", "Heidi"},
			{"Heidi", "Ivan"},
			{"Ivan", "Judy"},
			{"Eve", "Judy"},
			{"Grace", "Ivan"},
			{"Frank", "Heidi"},
			{"Heidi", "Alice"},
			{"Alice", "Grace"},
			{"Bob", "Eve"},
			{"Carol", "Grace"},
			{"David", "yashas"},
			{"rahul", "Judy"},
			{"Grace", "David"},
			{"Ivan", "rahul"},
			{"sazid", "Frank"},
			{"sazid", "yashas"},
			{"rahul", "sazid"},
		},
	}
}

// LoadYAML decodes a dataset of the form
//
//	name: social
//	nodes: [hermit]
//	edges:
//	  - [Alice, Bob]
func LoadYAML(r io.Reader) (*Dataset, error) {
	var d Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return &d, nil
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	for i, e := range d.Edges {
		if e[0] == "" || e[1] == "" {
			return nil, fmt.Errorf("decode dataset: edge %d has an empty endpoint", i)
		}
	}
	return &d, nil
}

// Loaded is a populated graph together with the name its source declared.
type Loaded struct {
	Name  string
	Graph *graph.Graph
}

// LoadFile reads a dataset, choosing the decoder by extension:
// .yaml/.yml for YAML and .dot/.gv for DOT. DOT sources are inserted in
// statement order, so adjacency order follows the file.
func LoadFile(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var out Loaded
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err := LoadYAML(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		out = Loaded{Name: d.Name, Graph: d.Build()}
	case ".dot", ".gv":
		f, err := dot.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		out = Loaded{Name: f.Name, Graph: f.Graph}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if out.Name == "" {
		out.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &out, nil
}

// LoadSample returns the built-in dataset as a populated graph.
func LoadSample() *Loaded {
	d := Sample()
	return &Loaded{Name: d.Name, Graph: d.Build()}
}

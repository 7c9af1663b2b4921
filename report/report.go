// ABOUTME: Collects one analysis session (BFS order, degree centrality, communities, lint) into a Report.
// ABOUTME: Reports are immutable snapshots tagged with a ULID so every surface can refer to the same run.
package report

import (
	"crypto/rand"
	"time"

	"github.com/2389-research/netgraph/dot/validator"
	"github.com/2389-research/netgraph/graph"
	"github.com/oklog/ulid/v2"
)

// Degree is one node's degree centrality.
type Degree struct {
	ID     string `json:"id"`
	Degree int    `json:"degree"`
}

// Report is the result of analyzing one graph.
type Report struct {
	SessionID   ulid.ULID              `json:"session_id"`
	Name        string                 `json:"name"`
	CreatedAt   time.Time              `json:"created_at"`
	Nodes       int                    `json:"nodes"`
	Edges       int                    `json:"edges"`
	Start       string                 `json:"start"`
	BFS         []string               `json:"bfs"`
	Centrality  []Degree               `json:"centrality"`
	Communities [][]string             `json:"communities"`
	Diagnostics []validator.Diagnostic `json:"diagnostics"`
}

// NewSessionID returns a fresh, time-ordered session identifier.
func NewSessionID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// Build analyzes g. An empty start picks the first inserted node; an empty
// graph yields an empty BFS. An unknown start fails with graph.ErrNotFound.
func Build(g *graph.Graph, name, start string) (*Report, error) {
	ids := g.NodeIDs()
	if start == "" && len(ids) > 0 {
		start = ids[0]
	}

	var order []string
	if start != "" {
		var err error
		order, err = g.BFS(start)
		if err != nil {
			return nil, err
		}
	}

	deg := g.DegreeCentrality()
	centrality := make([]Degree, 0, len(ids))
	for _, id := range ids {
		centrality = append(centrality, Degree{ID: id, Degree: deg[id]})
	}

	return &Report{
		SessionID:   NewSessionID(),
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Nodes:       len(ids),
		Edges:       g.EdgeCount(),
		Start:       start,
		BFS:         order,
		Centrality:  centrality,
		Communities: g.ConnectedComponents(),
		Diagnostics: validator.Lint(g),
	}, nil
}

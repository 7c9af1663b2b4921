// ABOUTME: Report sections shown by the browser and the plain-text body of each.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/netgraph/report"
)

// Section identifies one page of the report browser.
type Section int

const (
	SectionBFS Section = iota
	SectionCentrality
	SectionCommunities
	SectionLint
	SectionDOT
	sectionCount
)

var sectionNames = [...]string{
	SectionBFS:         "BFS",
	SectionCentrality:  "Centrality",
	SectionCommunities: "Communities",
	SectionLint:        "Lint",
	SectionDOT:         "DOT",
}

// String returns the tab label of the section.
func (s Section) String() string {
	if s < 0 || s >= sectionCount {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

// Next wraps around after the last section.
func (s Section) Next() Section { return (s + 1) % sectionCount }

// Prev wraps around before the first section.
func (s Section) Prev() Section { return (s + sectionCount - 1) % sectionCount }

// sectionBody renders one section of r. dotText backs the DOT section.
func sectionBody(s Section, r *report.Report, dotText string) string {
	var b strings.Builder
	switch s {
	case SectionBFS:
		if r.Start == "" {
			return "graph is empty\n"
		}
		fmt.Fprintf(&b, "BFS starting from %s:\n%s\n", r.Start, report.BFSLine(r))
	case SectionCentrality:
		for _, d := range r.Centrality {
			fmt.Fprintf(&b, "%s: %d\n", d.ID, d.Degree)
		}
	case SectionCommunities:
		for i, comp := range r.Communities {
			fmt.Fprintf(&b, "Community %d: %s\n", i+1, strings.Join(comp, " "))
		}
	case SectionLint:
		if len(r.Diagnostics) == 0 {
			return "no findings\n"
		}
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "%s [%s] %s\n", StyleForSeverity(d.Severity).Render(d.Severity), d.Rule, d.Message)
		}
	case SectionDOT:
		b.WriteString(dotText)
	}
	return b.String()
}

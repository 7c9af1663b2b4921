// ABOUTME: Renders a Report as console text (plain or lipgloss-styled), Markdown, or HTML via goldmark.
// ABOUTME: The plain text layout is the stable contract: BFS line, "id: degree" lines, numbered communities.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
	idStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	degreeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	communityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TextOptions controls console rendering.
type TextOptions struct {
	Styled bool
}

// WriteText prints the console report.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	var b strings.Builder

	heading := func(s string) string {
		if opts.Styled {
			return headingStyle.Render(s)
		}
		return s
	}
	id := func(s string) string {
		if opts.Styled {
			return idStyle.Render(s)
		}
		return s
	}

	fmt.Fprintln(&b, heading(fmt.Sprintf("BFS starting from %s:", r.Start)))
	fmt.Fprintln(&b, BFSLine(r))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, heading("Degree Centrality:"))
	for _, d := range r.Centrality {
		deg := fmt.Sprint(d.Degree)
		if opts.Styled {
			deg = degreeStyle.Render(deg)
		}
		fmt.Fprintf(&b, "%s: %s\n", id(d.ID), deg)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, heading("Communities:"))
	for i, comp := range r.Communities {
		label := fmt.Sprintf("Community %d:", i+1)
		if opts.Styled {
			label = communityStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, strings.Join(comp, " "))
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, heading("Diagnostics:"))
		for _, d := range r.Diagnostics {
			line := d.String()
			if opts.Styled {
				line = mutedStyle.Render(line)
			}
			fmt.Fprintln(&b, line)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// BFSLine is the traversal order separated by single spaces.
func BFSLine(r *Report) string {
	return strings.Join(r.BFS, " ")
}

// Markdown renders the report as a Markdown document.
func Markdown(r *Report) string {
	var out strings.Builder

	title := r.Name
	if title == "" {
		title = "graph"
	}
	fmt.Fprintf(&out, "# Analysis of %s\n\n", title)
	fmt.Fprintf(&out, "> Session `%s`: %d nodes, %d edges\n\n", r.SessionID, r.Nodes, r.Edges)

	fmt.Fprintf(&out, "## BFS from %s\n\n", r.Start)
	if len(r.BFS) == 0 {
		fmt.Fprintln(&out, "_empty graph_")
	} else {
		fmt.Fprintln(&out, BFSLine(r))
	}
	fmt.Fprintln(&out)

	fmt.Fprintln(&out, "## Degree centrality")
	fmt.Fprintln(&out)
	fmt.Fprintln(&out, "| Node | Degree |")
	fmt.Fprintln(&out, "|---|---|")
	for _, d := range r.Centrality {
		fmt.Fprintf(&out, "| %s | %d |\n", escapeCell(d.ID), d.Degree)
	}
	fmt.Fprintln(&out)

	fmt.Fprintln(&out, "## Communities")
	fmt.Fprintln(&out)
	for i, comp := range r.Communities {
		fmt.Fprintf(&out, "%d. %s\n", i+1, strings.Join(comp, " "))
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintln(&out)
		fmt.Fprintln(&out, "## Diagnostics")
		fmt.Fprintln(&out)
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&out, "- **%s** `%s`: %s\n", d.Severity, d.Rule, d.Message)
		}
	}
	return out.String()
}

// HTML converts the Markdown report to an HTML fragment. goldmark runs in its
// default safe mode, so raw HTML smuggled in through node IDs is dropped.
func HTML(r *Report) (string, error) {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

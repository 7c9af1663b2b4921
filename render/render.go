// ABOUTME: Turns an analyzed graph into viewable output: DOT text directly, SVG/PNG through the graphviz dot binary.
// ABOUTME: Rendered images fill each node with its connected component color so the partition is visible.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/2389-research/netgraph/dot"
	"github.com/2389-research/netgraph/graph"
)

// Supported output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ErrGraphvizMissing is returned when svg/png output is requested without graphviz installed.
var ErrGraphvizMissing = errors.New("graphviz dot command not found")

// communityPalette cycles fill colors across connected components.
var communityPalette = []string{
	"#ADD8E6", // blue
	"#90EE90", // green
	"#FFB6C1", // red
	"#FFFFE0", // yellow
	"#DDA0DD", // purple
	"#FFA500", // orange
}

// ContentType returns the MIME type for a supported format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

// Render produces g in the given format. "dot" returns the plain export;
// "svg" and "png" render a community-colored variant through graphviz.
func Render(ctx context.Context, g *graph.Graph, name, format string) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot render nil graph")
	}

	switch format {
	case FormatDOT:
		return []byte(dot.Serialize(g, name)), nil
	case FormatSVG, FormatPNG:
		return RenderDOTSource(ctx, WithCommunityColors(g, name), format)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are dot, svg, png", format)
	}
}

// WithCommunityColors returns the DOT export with a filled node declaration
// per node, colored by the connected component it belongs to. Isolated
// nodes, which have no edge line, become visible this way too.
func WithCommunityColors(g *graph.Graph, name string) string {
	base := dot.Serialize(g, name)
	body := strings.TrimSuffix(base, "}\n")

	var b strings.Builder
	b.WriteString(body)
	for i, comp := range g.ConnectedComponents() {
		color := communityPalette[i%len(communityPalette)]
		for _, id := range comp {
			fmt.Fprintf(&b, "    %s [style=filled, fillcolor=%q];\n", quote(id), color)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// GraphvizAvailable checks whether the graphviz dot command is installed and reachable.
func GraphvizAvailable() bool {
	_, err := exec.LookPath("dot")
	return err == nil
}

// RenderDOTSource takes raw DOT text and renders it to the specified format.
// For "dot" format, it returns the input text as-is.
func RenderDOTSource(ctx context.Context, dotText string, format string) ([]byte, error) {
	if dotText == "" {
		return nil, fmt.Errorf("cannot render empty DOT text")
	}

	switch format {
	case FormatDOT:
		return []byte(dotText), nil
	case FormatSVG, FormatPNG:
		return renderWithGraphviz(ctx, dotText, format)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are dot, svg, png", format)
	}
}

// renderWithGraphviz pipes DOT text to the graphviz dot command and returns the output.
func renderWithGraphviz(ctx context.Context, dotText string, format string) ([]byte, error) {
	if !GraphvizAvailable() {
		return nil, fmt.Errorf("%w: install graphviz to render %s output", ErrGraphvizMissing, format)
	}

	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = strings.NewReader(dotText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz dot command failed: %w: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

// quote mirrors the export's identifier quoting.
func quote(id string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(id) + `"`
}

// ABOUTME: Long help, examples and environment status for the netgraph CLI.
// ABOUTME: writeEnvStatus reports graphviz availability and which config sources are present.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/2389-research/netgraph/config"
	"github.com/2389-research/netgraph/render"
)

const rootLong = `netgraph builds an undirected graph from a dataset and reports on it:
breadth-first order from a start node, degree centrality per node and
connected components ("communities"). The graph can be exported as Graphviz
DOT, rendered to SVG/PNG, served over HTTP or browsed in a terminal UI.

Without a subcommand, netgraph analyzes the dataset (the built-in sample
unless --input is given), prints the report and writes export.path.

Configuration is layered: defaults, YAML config file, .env in the working
directory, NETGRAPH_* environment variables, then command-line flags.`

const rootExample = `  netgraph
  netgraph analyze --start Alice
  netgraph analyze --input team.yaml --format markdown
  netgraph export --input team.dot --format svg --out team.svg
  netgraph lint --input team.yaml
  netgraph serve --addr 127.0.0.1:8080
  netgraph tui`

// writeEnvStatus prints the environment the CLI will run with.
func writeEnvStatus(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	if render.GraphvizAvailable() {
		fmt.Fprintln(w, "  graphviz dot          [found]")
	} else {
		fmt.Fprintln(w, "  graphviz dot          [not found] (svg/png export unavailable)")
	}
	if path, err := config.DefaultConfigFile(); err == nil {
		fmt.Fprintf(w, "  config file           %s %s\n", path, fileStatus(path))
	}
	for _, key := range []string{"INPUT", "LOG_ENV", "SERVER_ADDR"} {
		fmt.Fprintf(w, "  %-21s %s\n", config.EnvPrefix+key, envStatus(config.EnvPrefix+key))
	}
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}

func fileStatus(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "[found]"
	}
	return "[not found]"
}

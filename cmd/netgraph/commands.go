// ABOUTME: cobra command tree for netgraph and the shared setup that loads config, logger and dataset.
// ABOUTME: Flags override config: defaults, YAML file, .env, NETGRAPH_* variables, then command-line flags.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2389-research/netgraph/config"
	"github.com/2389-research/netgraph/dataset"
	"github.com/2389-research/netgraph/dot"
	"github.com/2389-research/netgraph/dot/validator"
	"github.com/2389-research/netgraph/logging"
	"github.com/2389-research/netgraph/render"
	"github.com/2389-research/netgraph/report"
	"github.com/2389-research/netgraph/tui"
	"github.com/2389-research/netgraph/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds state shared by every subcommand once setup has run.
type app struct {
	configPath string
	logEnv     string
	logLevel   string
	input      string

	cfg    config.Config
	logger *zap.Logger
	data   *dataset.Loaded
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "netgraph",
		Short:         "Analyze small undirected graphs: BFS, communities, degree centrality, DOT export",
		Long:          rootLong,
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()
			if err := a.analyze(cmd, a.cfg.Start, "text", false); err != nil {
				return err
			}
			return a.export(cmd, a.cfg.Export.Path, a.cfg.Export.Format, a.cfg.Export.Name)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default: $XDG_CONFIG_HOME/netgraph/config.yaml if present)")
	pf.StringVar(&a.logEnv, "log-env", "", "log environment: development or production")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.input, "input", "", "dataset file (.yaml, .yml, .dot, .gv); default is the built-in sample")

	root.AddCommand(
		newAnalyzeCmd(a),
		newExportCmd(a),
		newLintCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves configuration, builds the logger and loads the dataset.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("log-env") {
		cfg.Log.Env = a.logEnv
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger = logger

	if cfg.Input == "" {
		a.data = dataset.LoadSample()
	} else {
		a.data, err = dataset.LoadFile(cfg.Input)
		if err != nil {
			return err
		}
	}
	a.logger.Debug("dataset loaded",
		zap.String("name", a.data.Name),
		zap.String("path", cfg.Input),
		zap.Int("nodes", a.data.Graph.Len()),
		zap.Int("edges", a.data.Graph.EdgeCount()),
	)
	return nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		start  string
		format string
		color  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print BFS order, degree centrality, communities and lint findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()
			if !cmd.Flags().Changed("start") {
				start = a.cfg.Start
			}
			return a.analyze(cmd, start, format, color)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "BFS start node (default: first inserted node)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, markdown, html")
	cmd.Flags().BoolVar(&color, "color", false, "style text output for a terminal")
	return cmd
}

func (a *app) analyze(cmd *cobra.Command, start, format string, color bool) error {
	r, err := report.Build(a.data.Graph, a.data.Name, start)
	if err != nil {
		return err
	}
	a.logger.Info("analysis complete",
		zap.String("session_id", r.SessionID.String()),
		zap.Int("nodes", r.Nodes),
		zap.Int("edges", r.Edges),
		zap.Int("communities", len(r.Communities)),
	)

	out := cmd.OutOrStdout()
	switch format {
	case "text":
		return report.WriteText(out, r, report.TextOptions{Styled: color})
	case "markdown", "md":
		_, err := fmt.Fprint(out, report.Markdown(r))
		return err
	case "html":
		html, err := report.HTML(r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, html)
		return err
	default:
		return fmt.Errorf("unsupported report format %q: supported formats are text, markdown, html", format)
	}
}

func newExportCmd(a *app) *cobra.Command {
	var out, format, name string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph as DOT, or as SVG/PNG through graphviz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()
			flags := cmd.Flags()
			if !flags.Changed("out") {
				out = a.cfg.Export.Path
			}
			if !flags.Changed("format") {
				format = a.cfg.Export.Format
			}
			if !flags.Changed("name") {
				name = a.cfg.Export.Name
			}
			return a.export(cmd, out, format, name)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: export.path from config)")
	cmd.Flags().StringVar(&format, "format", "", "output format: dot, svg, png")
	cmd.Flags().StringVar(&name, "name", "", "DOT graph name")
	return cmd
}

func (a *app) export(cmd *cobra.Command, path, format, name string) error {
	g := a.data.Graph
	if format == render.FormatDOT {
		if err := dot.WriteFile(path, g, name); err != nil {
			return err
		}
	} else {
		data, err := render.Render(cmd.Context(), g, name, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("%w: %w", dot.ErrIOFailure, err)
		}
	}

	a.logger.Info("graph exported", zap.String("path", path), zap.String("format", format))
	fmt.Fprintf(cmd.OutOrStdout(), "Graph exported to %s for visualization.\n", path)
	return nil
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report self-loops, parallel edges, isolated nodes and fragmentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()

			diags := validator.Lint(a.data.Graph)
			out := cmd.OutOrStdout()
			if len(diags) == 0 {
				fmt.Fprintln(out, "no findings")
				return nil
			}
			for _, d := range diags {
				fmt.Fprintln(out, d.String())
			}
			if validator.HasErrors(diags) {
				return errors.New("lint found errors")
			}
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:      a.cfg.Server.Addr,
				Graph:     a.data.Graph,
				Name:      a.cfg.Export.Name,
				Start:     a.cfg.Start,
				RenderTTL: a.cfg.Server.RenderTTL,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "netgraph serving %s on http://%s\n", a.data.Name, a.cfg.Server.Addr)
			return srv.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the analysis in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.sync()
			if !cmd.Flags().Changed("start") {
				start = a.cfg.Start
			}
			r, err := report.Build(a.data.Graph, a.data.Name, start)
			if err != nil {
				return err
			}
			return tui.Run(r, dot.Serialize(a.data.Graph, a.cfg.Export.Name))
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "BFS start node (default: first inserted node)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and environment status",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netgraph %s\n", version)
			writeEnvStatus(cmd.OutOrStdout())
		},
	}
}

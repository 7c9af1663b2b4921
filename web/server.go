// ABOUTME: Read-only netgraph HTTP server exposing one analysis session behind a chi router.
// ABOUTME: Serves traversal, components, centrality, lint, DOT/SVG export, an HTML report and Prometheus metrics.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/2389-research/netgraph/dot"
	"github.com/2389-research/netgraph/dot/validator"
	"github.com/2389-research/netgraph/graph"
	"github.com/2389-research/netgraph/render"
	"github.com/2389-research/netgraph/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SessionIDHeader carries the ULID of the analysis session being served.
const SessionIDHeader = "X-Session-ID"

// Server serves a single graph. The graph is never mutated after NewServer.
type Server struct {
	graph   *graph.Graph
	report  *report.Report
	name    string
	cache   *render.RenderCache
	logger  *zap.Logger
	metrics *serverMetrics
	router  chi.Router
	addr    string
}

// ServerConfig holds the configuration for the HTTP server.
type ServerConfig struct {
	Addr      string // listen address (default: "127.0.0.1:2390")
	Graph     *graph.Graph
	Name      string // DOT graph name
	Start     string // BFS start for the report; empty picks the first node
	RenderTTL time.Duration
	Logger    *zap.Logger
	// RenderFunc overrides graphviz for image routes.
	RenderFunc render.RenderFunc
}

// NewServer analyzes cfg.Graph once and wires the routes over the result.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Graph == nil {
		return nil, fmt.Errorf("graph must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2390"
	}
	if cfg.RenderTTL <= 0 {
		cfg.RenderTTL = 10 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RenderFunc == nil {
		cfg.RenderFunc = render.RenderDOTSource
	}

	rep, err := report.Build(cfg.Graph, cfg.Name, cfg.Start)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}

	cache := render.NewRenderCache(cfg.RenderFunc, cfg.RenderTTL)
	s := &Server{
		graph:   cfg.Graph,
		report:  rep,
		name:    cfg.Name,
		cache:   cache,
		logger:  cfg.Logger.With(zap.String("session_id", rep.SessionID.String())),
		metrics: newServerMetrics(cache, rep.Nodes, rep.Edges),
		addr:    cfg.Addr,
	}
	s.router = s.buildRouter()
	return s, nil
}

// Report returns the analysis session being served.
func (s *Server) Report() *report.Report { return s.report }

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve listens on the configured address until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(withRequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.withSessionID)

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.metrics.handler().ServeHTTP)
	r.Get("/report", s.handleReport)
	r.Get("/graph.dot", s.handleDOT)
	r.Get("/graph.svg", s.handleImage(render.FormatSVG))
	r.Get("/graph.png", s.handleImage(render.FormatPNG))

	r.Route("/graph", func(r chi.Router) {
		r.Get("/", s.handleSummary)
		r.Get("/nodes/{id}", s.handleNode)
		r.Get("/bfs/{start}", s.handleBFS)
		r.Get("/components", s.handleComponents)
		r.Get("/centrality", s.handleCentrality)
		r.Get("/lint", s.handleLint)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such route")
	})
	return r
}

func (s *Server) withSessionID(next http.Handler) http.Handler {
	sid := s.report.SessionID.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionIDHeader, sid)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type summary struct {
	SessionID  string `json:"session_id"`
	Name       string `json:"name"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Components int    `json:"components"`
	Start      string `json:"start"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summary{
		SessionID:  s.report.SessionID.String(),
		Name:       s.report.Name,
		Nodes:      s.report.Nodes,
		Edges:      s.report.Edges,
		Components: len(s.report.Communities),
		Start:      s.report.Start,
	})
}

type nodeView struct {
	ID        string   `json:"id"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, ok := s.graph.Node(id)
	if !ok {
		s.writeGraphError(w, fmt.Errorf("node %q: %w", id, graph.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, nodeView{ID: n.ID, Degree: n.Degree(), Neighbors: nonNil(n.Neighbors)})
}

func (s *Server) handleBFS(w http.ResponseWriter, r *http.Request) {
	start := chi.URLParam(r, "start")
	order, err := s.graph.BFS(start)
	if err != nil {
		s.writeGraphError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"start": start, "order": order})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	comps := s.report.Communities
	if comps == nil {
		comps = [][]string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"components": comps})
}

func (s *Server) handleCentrality(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"centrality": s.report.Centrality})
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	diags := s.report.Diagnostics
	if diags == nil {
		diags = []validator.Diagnostic{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagnostics": diags})
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", render.ContentType(render.FormatDOT))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dot.Serialize(s.graph, s.name)))
}

func (s *Server) handleImage(format string) http.HandlerFunc {
	src := render.WithCommunityColors(s.graph, s.name)
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.cache.RenderDOTSource(r.Context(), src, format)
		if errors.Is(err, render.ErrGraphvizMissing) {
			writeError(w, http.StatusNotImplemented, err.Error())
			return
		}
		if err != nil {
			s.logger.Error("render failed", zap.String("format", format), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		w.Header().Set("Content-Type", render.ContentType(format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	body, err := report.HTML(s.report)
	if err != nil {
		s.logger.Error("rendering report", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n%s</body></html>\n",
		"netgraph report", body)
}

func (s *Server) writeGraphError(w http.ResponseWriter, err error) {
	if errors.Is(err, graph.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Error("graph query failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

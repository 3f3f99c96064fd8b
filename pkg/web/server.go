package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/trailgraph/pkg/analysis"
	"github.com/ritzau/trailgraph/pkg/geo"
	"github.com/ritzau/trailgraph/pkg/graph"
	"github.com/ritzau/trailgraph/pkg/logging"
	"github.com/ritzau/trailgraph/pkg/model"
	"github.com/ritzau/trailgraph/pkg/pubsub"
	"github.com/ritzau/trailgraph/pkg/query"
)

// GraphNode represents a node in the trail graph
type GraphNode struct {
	ID   int64       `json:"id"`
	Name string      `json:"name"`
	At   model.Coord `json:"at"`
}

// GraphEdge represents an edge in the trail graph
type GraphEdge struct {
	Source   int64   `json:"source"`
	Target   int64   `json:"target"`
	LengthKm float64 `json:"lengthKm"`
	Route    string  `json:"route"`
}

// GraphData holds the trail graph in JSON form
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// PathData is the JSON form of a shortest path
type PathData struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Nodes    []GraphNode `json:"nodes"`
	Routes   []string    `json:"routes"`
	LengthKm float64     `json:"lengthKm"`
}

// Server serves read-only queries over a route set
type Server struct {
	router    *mux.Router
	distance  geo.DistanceFunc
	publisher *pubsub.SSEPublisher

	mu     sync.RWMutex
	routes *model.RouteSet
}

// NewServer creates a server that measures routes with dist
func NewServer(dist geo.DistanceFunc) *Server {
	if dist == nil {
		dist = geo.Kilometers
	}
	s := &Server{
		router:    mux.NewRouter(),
		distance:  dist,
		publisher: pubsub.NewSSEPublisher(),
	}
	// late subscribers only need the current state
	s.publisher.ConfigureTopic(pubsub.TopicNetwork, pubsub.TopicConfig{BufferSize: 1})
	s.setupRoutes()
	return s
}

// SetRoutes replaces the route set served by all endpoints and notifies
// event stream subscribers
func (s *Server) SetRoutes(rs *model.RouteSet) {
	s.mu.Lock()
	eventType := pubsub.EventReloaded
	if s.routes == nil {
		eventType = pubsub.EventLoaded
	}
	s.routes = rs
	s.mu.Unlock()

	g, _ := graph.NewBuilder(s.distance).Build(rs)
	status := pubsub.NetworkStatus{
		Routes:     rs.Len(),
		Nodes:      len(g.Nodes()),
		Edges:      len(g.Edges()),
		Components: len(analysis.Components(g)),
	}
	if err := s.publisher.Publish(pubsub.TopicNetwork, eventType, status); err != nil {
		logging.Warn("failed to publish network status", "error", err)
	}
}

// ReportReloadFailure tells subscribers that the served routes are stale
func (s *Server) ReportReloadFailure(err error) {
	status := pubsub.NetworkStatus{Error: err.Error()}
	if rs := s.snapshot(); rs != nil {
		status.Routes = rs.Len()
	}
	if perr := s.publisher.Publish(pubsub.TopicNetwork, pubsub.EventReloadFailed, status); perr != nil {
		logging.Warn("failed to publish reload failure", "error", perr)
	}
}

// snapshot returns the current route set. Handlers must not modify it.
func (s *Server) snapshot() *model.RouteSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.routes
}

// Handler returns the HTTP handler with logging middleware applied
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/routes", s.handleRoutes).Methods("GET")
	api.HandleFunc("/graph", s.handleGraph).Methods("GET")
	api.HandleFunc("/junctions", s.handleJunctions).Methods("GET")
	api.HandleFunc("/components", s.handleComponents).Methods("GET")
	api.HandleFunc("/path", s.handlePath).Methods("GET")
	api.HandleFunc("/events", s.handleEvents).Methods("GET")
}

// handleEvents streams network status changes as Server-Sent Events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicNetwork)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.DebugContext(r.Context(), "event stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	rs := s.snapshot()
	if rs == nil {
		writeJSON(w, http.StatusOK, []analysis.RouteLength{})
		return
	}
	writeJSON(w, http.StatusOK, analysis.RouteLengths(rs, s.distance))
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, ok := s.buildGraph(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildGraphData(g))
}

func (s *Server) handleJunctions(w http.ResponseWriter, r *http.Request) {
	rs := s.snapshot()
	if rs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("route data not available"))
		return
	}
	writeJSON(w, http.StatusOK, analysis.Junctions(rs))
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	g, ok := s.buildGraph(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.Components(g))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	rs := s.snapshot()
	if rs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("route data not available"))
		return
	}

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, errors.New("query parameters from and to are required"))
		return
	}

	res, err := query.NewRunner(graph.NewBuilder(s.distance)).ShortestPath(rs, from, to)
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, model.ErrNoPath):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		logging.ErrorContext(r.Context(), "path query failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	data := PathData{From: from, To: to, LengthKm: res.Path.LengthKm, Routes: make([]string, 0)}
	for _, n := range res.Path.Nodes {
		data.Nodes = append(data.Nodes, GraphNode{ID: n.ID(), Name: n.Name, At: n.Coord})
	}
	for _, e := range res.Path.Edges {
		data.Routes = append(data.Routes, e.Route)
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) buildGraph(w http.ResponseWriter) (*graph.Graph, bool) {
	rs := s.snapshot()
	if rs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("route data not available"))
		return nil, false
	}
	g, _ := graph.NewBuilder(s.distance).Build(rs)
	return g, true
}

func buildGraphData(g *graph.Graph) *GraphData {
	data := &GraphData{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
	}
	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, GraphNode{ID: n.ID(), Name: n.Name, At: n.Coord})
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, GraphEdge{
			Source:   e.U.ID(),
			Target:   e.V.ID(),
			LengthKm: e.LengthKm,
			Route:    e.Route,
		})
	}
	return data
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Start serves on port until ctx is cancelled
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Info("shutting down web server")
		// ends open event streams so Shutdown does not wait for them
		_ = s.publisher.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

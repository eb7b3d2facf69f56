// Package api provides the panel's local status/diagnostics HTTP endpoint.
//
// Installers point a browser (or curl) at the panel to check what mode
// it booted in, whether the broker feed is up, and how many events have
// flowed — without attaching a debugger to the device.
//
// It exposes read-only snapshots and counters, plus optional test-fire
// command routes that go through the normal command dispatcher (and are
// therefore suppressed in demo mode like every other command). It
// follows the same lifecycle pattern as the other components:
//
//	server := api.New(deps)
//	server.Start()
//	defer server.Close()
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/store"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 5 * time.Second

// ConnectionReporter reports the broker feed state; implemented by
// ingress.Worker.
type ConnectionReporter interface {
	Connected() bool
}

// DrainCounter reports cumulative applied event counts; implemented by
// panel.Panel.
type DrainCounter interface {
	Counters() (stateUpdates, sceneEvents uint64)
}

// Deps holds the dependencies required by the status server.
type Deps struct {
	Config    config.APIConfig
	Logger    *logging.Logger
	Store     *store.Store
	Ingress   ConnectionReporter
	Drains    DrainCounter
	Commander Commander
	Version   string
}

// Server is the panel's local status HTTP server.
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	store     *store.Store
	ingress   ConnectionReporter
	drains    DrainCounter
	commander Commander
	version   string
	server    *http.Server
}

// New creates a status server. Start must be called to begin listening.
func New(deps Deps) *Server {
	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger.With("component", "api"),
		store:     deps.Store,
		ingress:   deps.Ingress,
		drains:    deps.Drains,
		commander: deps.Commander,
		version:   deps.Version,
	}
}

// Start begins listening in the background. It returns immediately;
// listener errors are logged, not returned — the status endpoint is a
// diagnostic convenience, never worth failing the panel over.
func (s *Server) Start() {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		s.logger.Info("status server listening", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", "error", err)
		}
	}()
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// buildRouter assembles the route tree.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/v1/status", s.handleStatus)

	// Test-fire routes: forward through the normal dispatcher so an
	// installer can exercise a device without touching the screen.
	if s.commander != nil {
		r.Post("/api/v1/devices/{deviceID}/command", s.handleDeviceCommand)
		r.Post("/api/v1/scenes/{sceneID}/activate", s.handleSceneActivate)
	}

	return r
}

// handleHealthz is a bare liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// statusResponse is the GET /api/v1/status payload.
type statusResponse struct {
	Version         string `json:"version"`
	Mode            string `json:"mode"`
	BrokerConnected bool   `json:"broker_connected"`
	RoomID          string `json:"room_id"`
	RoomName        string `json:"room_name"`
	DeviceCount     int    `json:"device_count"`
	SceneCount      int    `json:"scene_count"`
	ActiveSceneID   string `json:"active_scene_id"`
	StatesApplied   uint64 `json:"states_applied"`
	ScenesApplied   uint64 `json:"scenes_applied"`
}

// handleStatus reports the panel's current mode, feed state and room
// snapshot summary.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.store.Snapshot()

	mode := "fallback"
	if s.store.IsLive() {
		mode = "live"
	}

	resp := statusResponse{
		Version:       s.version,
		Mode:          mode,
		RoomID:        snapshot.Room.ID,
		RoomName:      snapshot.Room.Name,
		DeviceCount:   len(snapshot.Devices),
		SceneCount:    len(snapshot.Scenes),
		ActiveSceneID: snapshot.ActiveSceneID,
	}
	if s.ingress != nil {
		resp.BrokerConnected = s.ingress.Connected()
	}
	if s.drains != nil {
		resp.StatesApplied, resp.ScenesApplied = s.drains.Counters()
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

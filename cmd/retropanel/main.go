// Gray Logic Retro Panel - room control panel client
//
// This is the main entry point for the retro panel's core runtime: the
// boot-time data acquisition, the live-state synchronization pipeline,
// and the local status endpoint. The widget tree renders on top of this
// via the panel.Refresher interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/gray-logic-panel/internal/api"
	"github.com/nerrad567/gray-logic-panel/internal/command"
	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/ingress"
	"github.com/nerrad567/gray-logic-panel/internal/model"
	"github.com/nerrad567/gray-logic-panel/internal/panel"
	"github.com/nerrad567/gray-logic-panel/internal/rest"
	"github.com/nerrad567/gray-logic-panel/internal/store"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/panel.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic retro panel",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// The hand-off primitives between the broker goroutines and the
	// presentation tick. Everything downstream of here is wired by
	// explicit reference, no globals.
	stateQueue := events.NewQueue[events.StateUpdate](cfg.Panel.StateQueueSize)
	sceneQueue := events.NewQueue[events.SceneEvent](cfg.Panel.SceneQueueSize)
	roomStore := store.New()

	worker := ingress.NewWorker(cfg.MQTT, cfg.Panel.ClientID, stateQueue, sceneQueue, log)
	defer worker.Stop()

	restClient := rest.NewClient(cfg.Core.URL, cfg.Core.PanelToken, cfg.CoreTimeout())

	// Boot: live load with fallback to the demo dataset. Never fails;
	// the panel always has something to show.
	sequencer := panel.NewBootSequencer(cfg, restClient, roomStore, worker, log)
	boot := sequencer.Run(ctx)
	log.Info("boot complete",
		"mode", boot.Mode,
		"room", boot.Room.ID,
		"push", boot.PushActive,
	)

	// The drain/apply loop. The refresher stands in for the widget
	// layer; the real screen registers its own on top of this runtime.
	p := panel.New(roomStore, stateQueue, sceneQueue, newLogRefresher(log))

	dispatcher := command.NewDispatcher(restClient, roomStore, log)

	// Local status/diagnostics endpoint
	if cfg.API.Enabled {
		statusServer := api.New(api.Deps{
			Config:    cfg.API,
			Logger:    log,
			Store:     roomStore,
			Ingress:   worker,
			Drains:    p,
			Commander: dispatcher,
			Version:   version,
		})
		statusServer.Start()
		defer func() {
			if closeErr := statusServer.Close(); closeErr != nil {
				log.Error("error closing status server", "error", closeErr)
			}
		}()
	}

	log.Info("initialisation complete, entering tick loop",
		"tick_interval", cfg.TickIntervalDuration(),
	)

	// Presentation tick loop: drain the queues once per tick. This is
	// the single goroutine allowed to mutate the room store.
	ticker := time.NewTicker(cfg.TickIntervalDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			return nil
		case <-ticker.C:
			p.Drain()
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses GRAYLOGIC_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// logRefresher is the headless stand-in for the widget layer: it logs
// refresh notifications at debug level.
type logRefresher struct {
	log *logging.Logger
}

func newLogRefresher(log *logging.Logger) *logRefresher {
	return &logRefresher{log: log.With("component", "refresh")}
}

func (r *logRefresher) OnDeviceChanged(deviceID string, device model.Device) {
	r.log.Debug("device changed", "device", deviceID, "health", device.Health)
}

func (r *logRefresher) OnSceneChanged(sceneID string, scenes []model.Scene) {
	r.log.Debug("active scene changed", "scene", sceneID, "scenes", len(scenes))
}

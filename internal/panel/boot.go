package panel

import (
	"context"

	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/model"
	"github.com/nerrad567/gray-logic-panel/internal/store"
)

// Mode is the boot sequencer's terminal state.
type Mode string

const (
	// ModeLive means the room store holds data loaded from Core.
	ModeLive Mode = "live"

	// ModeFallback means the room store holds the static demo dataset.
	ModeFallback Mode = "fallback"
)

// Loader is the boot-time data acquisition contract, implemented by the
// Core REST client. Narrowed to an interface so the sequencer is
// testable without HTTP.
type Loader interface {
	// LoadRooms returns the ordered room directory.
	LoadRooms(ctx context.Context) ([]model.Room, error)

	// LoadDevices returns the ordered device list for a room.
	LoadDevices(ctx context.Context, roomID string) ([]model.Device, error)

	// LoadScenes returns the ordered scene list for a room plus the
	// currently active scene id (empty if none).
	LoadScenes(ctx context.Context, roomID string) ([]model.Scene, string, error)
}

// IngressStarter starts the live update feed; implemented by
// ingress.Worker.
type IngressStarter interface {
	Start() error
}

// BootResult describes how the boot sequence terminated.
type BootResult struct {
	// Mode is the terminal state: live or fallback.
	Mode Mode

	// Room is the room the panel settled on.
	Room model.Room

	// PushActive is true when the ingress worker started successfully.
	// A live boot with PushActive=false is REST-only mode: real data,
	// no push updates.
	PushActive bool
}

// BootSequencer orchestrates the startup data acquisition:
// directory → room resolution → devices → scenes, with a defined
// fallback to the demo dataset on discovery failure.
//
// Failure handling is deliberately asymmetric. Discovery failures
// (missing credentials, empty directory) are terminal for the live path
// because there is nothing usable to show. Enrichment failures (device
// or scene loads, ingress start) degrade gracefully because a room
// skeleton is already usable.
type BootSequencer struct {
	cfg    *config.Config
	loader Loader
	store  *store.Store
	worker IngressStarter
	log    *logging.Logger
}

// NewBootSequencer wires a sequencer. worker may be nil (headless tests);
// then a live boot reports PushActive=false.
func NewBootSequencer(cfg *config.Config, loader Loader, st *store.Store,
	worker IngressStarter, log *logging.Logger,
) *BootSequencer {
	return &BootSequencer{
		cfg:    cfg,
		loader: loader,
		store:  st,
		worker: worker,
		log:    log.With("component", "boot"),
	}
}

// Run executes the boot sequence once. It always leaves the store
// initialised — either with live Core data or with the fallback
// dataset — and never returns an error: every failure is converted into
// a mode decision.
func (b *BootSequencer) Run(ctx context.Context) BootResult {
	// ConfigCheck: without credentials there is nothing to discover.
	if !b.cfg.HasCoreCredentials() {
		b.log.Info("core credentials not configured, using demo data")
		return b.fallback()
	}

	// DirectoryLoad: an empty directory is terminal for the live path.
	rooms, err := b.loader.LoadRooms(ctx)
	if err != nil {
		b.log.Warn("room directory load failed, using demo data", "error", err)
		return b.fallback()
	}
	if len(rooms) == 0 {
		b.log.Warn("room directory is empty, using demo data")
		return b.fallback()
	}

	// RoomResolve: a missing configured room is degraded success, not
	// failure — the first directory entry substitutes.
	room := rooms[0]
	found := false
	for _, r := range rooms {
		if r.ID == b.cfg.Core.RoomID {
			room = r
			found = true
			break
		}
	}
	if !found {
		b.log.Warn("configured room not found, substituting first room",
			"configured", b.cfg.Core.RoomID,
			"substituted", room.ID,
			"name", room.Name,
		)
	}

	// DeviceLoad / SceneLoad: zero results are legitimate (a room may
	// have no devices yet); load errors degrade to empty lists.
	devices, err := b.loader.LoadDevices(ctx, room.ID)
	if err != nil {
		b.log.Warn("device load failed, continuing with empty device list",
			"room", room.ID, "error", err)
		devices = nil
	}

	scenes, activeScene, err := b.loader.LoadScenes(ctx, room.ID)
	if err != nil {
		b.log.Warn("scene load failed, continuing with empty scene list",
			"room", room.ID, "error", err)
		scenes = nil
		activeScene = ""
	}

	// LiveCommit
	b.store.Init(&model.RoomData{
		Room:          room,
		Devices:       devices,
		Scenes:        scenes,
		ActiveSceneID: activeScene,
	})
	b.store.SetLive(true)

	result := BootResult{Mode: ModeLive, Room: room}
	if b.worker != nil {
		if err := b.worker.Start(); err != nil {
			// The initial load already succeeded; stay live without
			// push updates rather than throwing the data away.
			b.log.Warn("ingress start failed, running REST-only", "error", err)
		} else {
			result.PushActive = true
		}
	}

	b.log.Info("live boot complete",
		"room", room.ID,
		"name", room.Name,
		"devices", len(devices),
		"scenes", len(scenes),
		"push", result.PushActive,
	)
	return result
}

// fallback initialises the store with the demo dataset and marks it
// non-live. Commands are suppressed for the rest of the session.
func (b *BootSequencer) fallback() BootResult {
	data := model.DemoRoomData()
	b.store.Init(data)
	b.store.SetLive(false)
	return BootResult{Mode: ModeFallback, Room: data.Room}
}

package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/model"
	"github.com/nerrad567/gray-logic-panel/internal/store"
)

// fakeLoader scripts the boot-time REST responses.
type fakeLoader struct {
	rooms      []model.Room
	roomsErr   error
	devices    []model.Device
	devicesErr error
	scenes     []model.Scene
	active     string
	scenesErr  error
}

func (f *fakeLoader) LoadRooms(context.Context) ([]model.Room, error) {
	return f.rooms, f.roomsErr
}

func (f *fakeLoader) LoadDevices(context.Context, string) ([]model.Device, error) {
	return f.devices, f.devicesErr
}

func (f *fakeLoader) LoadScenes(context.Context, string) ([]model.Scene, string, error) {
	return f.scenes, f.active, f.scenesErr
}

// fakeStarter scripts the ingress worker start.
type fakeStarter struct {
	err     error
	started bool
}

func (f *fakeStarter) Start() error {
	f.started = true
	return f.err
}

func bootConfig(roomID string) *config.Config {
	return &config.Config{
		Core: config.CoreConfig{
			URL:        "http://localhost:8090",
			PanelToken: "token",
			RoomID:     roomID,
			Timeout:    10,
		},
	}
}

func TestBootSequencer_FallbackWithoutCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "no token",
			cfg: &config.Config{
				Core: config.CoreConfig{URL: "http://localhost:8090", RoomID: "room-1"},
			},
		},
		{
			name: "no room",
			cfg: &config.Config{
				Core: config.CoreConfig{URL: "http://localhost:8090", PanelToken: "token"},
			},
		},
		{
			name: "empty config",
			cfg:  &config.Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			loader := &fakeLoader{}
			seq := NewBootSequencer(tt.cfg, loader, st, nil, logging.Default())

			result := seq.Run(context.Background())

			if result.Mode != ModeFallback {
				t.Fatalf("Mode = %q, want fallback", result.Mode)
			}
			if st.IsLive() {
				t.Error("store reports live in fallback mode")
			}

			snap := st.Snapshot()
			if snap.Room.Name != "Living Room" {
				t.Errorf("fallback room = %q, want demo Living Room", snap.Room.Name)
			}
			if len(snap.Devices) == 0 || len(snap.Scenes) == 0 {
				t.Error("fallback dataset empty")
			}
			if snap.ActiveSceneID == "" {
				t.Error("fallback has no active scene")
			}
		})
	}
}

func TestBootSequencer_FallbackOnDirectoryFailure(t *testing.T) {
	tests := []struct {
		name   string
		loader *fakeLoader
	}{
		{
			name:   "load error",
			loader: &fakeLoader{roomsErr: errors.New("connection refused")},
		},
		{
			name:   "empty directory",
			loader: &fakeLoader{rooms: nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			worker := &fakeStarter{}
			seq := NewBootSequencer(bootConfig("room-1"), tt.loader, st, worker, logging.Default())

			result := seq.Run(context.Background())

			if result.Mode != ModeFallback {
				t.Fatalf("Mode = %q, want fallback", result.Mode)
			}
			if worker.started {
				t.Error("ingress started despite fallback")
			}
			if result.PushActive {
				t.Error("PushActive = true in fallback mode")
			}
		})
	}
}

func TestBootSequencer_LiveBoot(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{
		rooms: []model.Room{
			{ID: "room-1", Name: "Lounge"},
			{ID: "room-2", Name: "Kitchen"},
		},
		devices: []model.Device{
			{ID: "light-1", RoomID: "room-2", Domain: model.DomainLighting},
		},
		scenes: []model.Scene{
			{ID: "scene-1", RoomID: "room-2"},
		},
		active: "scene-1",
	}
	worker := &fakeStarter{}
	seq := NewBootSequencer(bootConfig("room-2"), loader, st, worker, logging.Default())

	result := seq.Run(context.Background())

	if result.Mode != ModeLive {
		t.Fatalf("Mode = %q, want live", result.Mode)
	}
	if result.Room.ID != "room-2" {
		t.Errorf("Room = %q, want configured room-2", result.Room.ID)
	}
	if !result.PushActive {
		t.Error("PushActive = false after successful ingress start")
	}
	if !worker.started {
		t.Error("ingress worker not started")
	}
	if !st.IsLive() {
		t.Error("store not marked live")
	}

	snap := st.Snapshot()
	if len(snap.Devices) != 1 || snap.Devices[0].ID != "light-1" {
		t.Errorf("devices = %+v, want the loaded light", snap.Devices)
	}
	if snap.ActiveSceneID != "scene-1" {
		t.Errorf("ActiveSceneID = %q, want scene-1", snap.ActiveSceneID)
	}
}

func TestBootSequencer_SubstitutesFirstRoomWhenConfiguredMissing(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{
		rooms: []model.Room{
			{ID: "room-a", Name: "First"},
			{ID: "room-b", Name: "Second"},
		},
	}
	seq := NewBootSequencer(bootConfig("room-c"), loader, st, nil, logging.Default())

	result := seq.Run(context.Background())

	if result.Mode != ModeLive {
		t.Fatalf("Mode = %q, want live (missing room is not a failure)", result.Mode)
	}
	if result.Room.ID != "room-a" {
		t.Errorf("Room = %q, want first directory entry room-a", result.Room.ID)
	}
	if !st.IsLive() {
		t.Error("store not marked live")
	}
}

func TestBootSequencer_EnrichmentFailuresDegrade(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{
		rooms:      []model.Room{{ID: "room-1", Name: "Lounge"}},
		devicesErr: errors.New("devices endpoint down"),
		scenesErr:  errors.New("scenes endpoint down"),
	}
	seq := NewBootSequencer(bootConfig("room-1"), loader, st, nil, logging.Default())

	result := seq.Run(context.Background())

	if result.Mode != ModeLive {
		t.Fatalf("Mode = %q, want live (enrichment failures degrade)", result.Mode)
	}

	snap := st.Snapshot()
	if len(snap.Devices) != 0 || len(snap.Scenes) != 0 {
		t.Error("failed loads left stale data in the store")
	}
	if snap.Room.ID != "room-1" {
		t.Errorf("Room = %q, want room-1", snap.Room.ID)
	}
}

func TestBootSequencer_IngressFailureMeansRESTOnly(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{
		rooms: []model.Room{{ID: "room-1", Name: "Lounge"}},
	}
	worker := &fakeStarter{err: errors.New("broker unreachable")}
	seq := NewBootSequencer(bootConfig("room-1"), loader, st, worker, logging.Default())

	result := seq.Run(context.Background())

	if result.Mode != ModeLive {
		t.Fatalf("Mode = %q, want live (REST-only, not fallback)", result.Mode)
	}
	if result.PushActive {
		t.Error("PushActive = true despite ingress failure")
	}
	if !st.IsLive() {
		t.Error("store not live in REST-only mode")
	}
}

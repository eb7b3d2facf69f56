package store

import (
	"sync"

	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/model"
)

// Store holds the authoritative in-memory snapshot of one room's devices,
// scenes, and active scene.
//
// Ownership discipline: Init is called once by the boot sequencer;
// ApplyStateUpdate and SetActiveScene are called only from the drain/apply
// loop on the presentation tick. Snapshot may be called from any
// goroutine (the status endpoint reads it), so the data is still guarded
// by a mutex even though there is only ever one writer at a time.
type Store struct {
	mu   sync.RWMutex
	data *model.RoomData
	live bool
}

// New creates an empty store. Init must be called before the store is
// useful; until then Snapshot returns an empty RoomData.
func New() *Store {
	return &Store{data: &model.RoomData{}}
}

// Init takes ownership of a fully populated RoomData. The caller's data
// is deep-copied and not aliased afterward.
func (s *Store) Init(data *model.RoomData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.DeepCopy()
}

// Snapshot returns an independent copy of the current room data for
// display or query. Callers may modify the copy freely.
func (s *Store) Snapshot() *model.RoomData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DeepCopy()
}

// ApplyStateUpdate applies the present fields of a state update to the
// matching device, last-write-wins per field. Absent (nil) fields leave
// the device's existing values untouched.
//
// Returns a copy of the device after the update and true if the device
// was found; a zero Device and false otherwise (unknown devices are a
// no-op).
func (s *Store) ApplyStateUpdate(u *events.StateUpdate) (model.Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dev := s.data.FindDevice(u.DeviceID)
	if dev == nil {
		return model.Device{}, false
	}

	if u.On != nil {
		dev.On = *u.On
	}
	if u.Level != nil {
		dev.Level = *u.Level
	}
	if u.Position != nil {
		dev.Position = *u.Position
	}
	if u.Temperature != nil {
		dev.Temperature = *u.Temperature
	}
	if u.Setpoint != nil {
		dev.Setpoint = *u.Setpoint
	}
	if u.Health != nil {
		dev.Health = *u.Health
	}

	return dev.DeepCopy(), true
}

// SetActiveScene records the currently active scene id. An empty id
// clears the indicator.
func (s *Store) SetActiveScene(sceneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ActiveSceneID = sceneID
}

// ActiveSceneID returns the currently active scene id, empty if none.
func (s *Store) ActiveSceneID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.ActiveSceneID
}

// IsLive reports whether the panel is connected to a real Core (true)
// or running on the fallback dataset (false). Commands are suppressed
// entirely when the store is not live.
func (s *Store) IsLive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}

// SetLive sets the live/fallback mode flag.
func (s *Store) SetLive(live bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = live
}

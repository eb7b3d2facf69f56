package panel

import (
	"sync/atomic"

	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/model"
	"github.com/nerrad567/gray-logic-panel/internal/store"
)

// Refresher receives per-entity refresh notifications from the
// drain/apply loop. The widget layer implements it to repaint exactly
// the visuals affected by each event.
//
// Callbacks are invoked synchronously on the presentation tick and must
// not block or re-enter Drain. The device and scene values are copies —
// implementations may retain them.
type Refresher interface {
	// OnDeviceChanged is called after a state update was applied to a device.
	OnDeviceChanged(deviceID string, device model.Device)

	// OnSceneChanged is called after the active scene changed.
	// scenes is the room's full scene list for indicator rendering.
	OnSceneChanged(sceneID string, scenes []model.Scene)
}

// NoopRefresher discards all notifications. Used when the panel runs
// headless (tests, diagnostics).
type NoopRefresher struct{}

func (NoopRefresher) OnDeviceChanged(string, model.Device) {}
func (NoopRefresher) OnSceneChanged(string, []model.Scene) {}

// Panel is the presentation-side controller: it drains the event queues
// once per tick and applies them to the room store.
//
// Drain must only be called from the single presentation goroutine. The
// cumulative counters are atomics so the status endpoint can read them
// from another goroutine.
type Panel struct {
	store     *store.Store
	states    *events.Queue[events.StateUpdate]
	scenes    *events.Queue[events.SceneEvent]
	refresher Refresher

	statesApplied atomic.Uint64
	scenesApplied atomic.Uint64
}

// New creates a Panel draining the given queues into the given store.
// A nil refresher is replaced with NoopRefresher.
func New(st *store.Store,
	states *events.Queue[events.StateUpdate],
	scenes *events.Queue[events.SceneEvent],
	refresher Refresher,
) *Panel {
	if refresher == nil {
		refresher = NoopRefresher{}
	}
	return &Panel{
		store:     st,
		states:    states,
		scenes:    scenes,
		refresher: refresher,
	}
}

// Drain pops all currently pending events from both queues and applies
// them to the room store, returning the total number of events applied.
//
// The state queue is emptied first, then the scene queue. Within each
// queue order is FIFO; across the two queues relative order is NOT a
// contract and must not be relied upon.
//
// State updates for unknown devices count as drained but trigger no
// refresh. Drain itself never errors — upstream failures surface only
// as "no event produced".
func (p *Panel) Drain() int {
	count := 0

	for {
		update, ok := p.states.TryRecv()
		if !ok {
			break
		}
		count++

		device, found := p.store.ApplyStateUpdate(&update)
		if !found {
			continue
		}
		p.statesApplied.Add(1)
		p.refresher.OnDeviceChanged(update.DeviceID, device)
	}

	for {
		event, ok := p.scenes.TryRecv()
		if !ok {
			break
		}
		count++

		p.store.SetActiveScene(event.SceneID)
		p.scenesApplied.Add(1)

		snapshot := p.store.Snapshot()
		p.refresher.OnSceneChanged(event.SceneID, snapshot.Scenes)
	}

	return count
}

// Counters returns the cumulative number of applied state updates and
// scene events since boot. Safe from any goroutine.
func (p *Panel) Counters() (stateUpdates, sceneEvents uint64) {
	return p.statesApplied.Load(), p.scenesApplied.Load()
}

package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
)

// dispatchTimeout bounds each fire-and-forget request. Commands travel
// the local network only; anything slower than this is effectively lost.
const dispatchTimeout = 10 * time.Second

// Sender is the outbound slice of the Core REST client the dispatcher
// depends on.
type Sender interface {
	SendCommand(ctx context.Context, deviceID, command string, params map[string]any) error
	ActivateScene(ctx context.Context, sceneID string) error
}

// LiveChecker gates command dispatch on the store's live flag.
// Implemented by store.Store.
type LiveChecker interface {
	IsLive() bool
}

// Dispatcher issues device commands and scene activations to Core.
//
// Dispatch is fire-and-forget: each call returns immediately after
// spawning the request; success or failure is logged only, never fed
// back into the room store. Confirmation, if any, arrives later as a
// state update or scene event through the sync pipeline.
//
// When the panel is not live (fallback/demo mode), every method returns
// ErrNotLive without touching the network.
type Dispatcher struct {
	sender Sender
	live   LiveChecker
	log    *logging.Logger
}

// NewDispatcher creates a command dispatcher.
func NewDispatcher(sender Sender, live LiveChecker, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		live:   live,
		log:    log.With("component", "command"),
	}
}

// Toggle flips a device's on/off state.
func (d *Dispatcher) Toggle(deviceID string) error {
	return d.dispatch(deviceID, "toggle", nil)
}

// SetLevel sets a dimmable device's level (0-100).
func (d *Dispatcher) SetLevel(deviceID string, level int) error {
	return d.dispatch(deviceID, "set_level", map[string]any{"level": level})
}

// SetPosition sets a blind's position (0-100).
func (d *Dispatcher) SetPosition(deviceID string, position int) error {
	return d.dispatch(deviceID, "set_position", map[string]any{"position": position})
}

// SetSetpoint sets a climate device's target temperature.
func (d *Dispatcher) SetSetpoint(deviceID string, setpoint float64) error {
	return d.dispatch(deviceID, "set_setpoint", map[string]any{"setpoint": setpoint})
}

// ActivateScene requests activation of a scene.
func (d *Dispatcher) ActivateScene(sceneID string) error {
	if !d.live.IsLive() {
		return ErrNotLive
	}

	requestID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.sender.ActivateScene(ctx, sceneID); err != nil {
			d.log.Warn("scene activation failed",
				"scene", sceneID, "request_id", requestID, "error", err)
			return
		}
		d.log.Debug("scene activation accepted",
			"scene", sceneID, "request_id", requestID)
	}()
	return nil
}

// dispatch runs one device command fire-and-forget.
func (d *Dispatcher) dispatch(deviceID, command string, params map[string]any) error {
	if !d.live.IsLive() {
		return ErrNotLive
	}

	requestID := uuid.NewString()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.sender.SendCommand(ctx, deviceID, command, params); err != nil {
			d.log.Warn("command dispatch failed",
				"device", deviceID, "command", command,
				"request_id", requestID, "error", err)
			return
		}
		d.log.Debug("command accepted",
			"device", deviceID, "command", command, "request_id", requestID)
	}()
	return nil
}

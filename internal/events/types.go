package events

import "github.com/nerrad567/gray-logic-panel/internal/model"

// StateUpdate is a partial, field-optional delta describing a device's
// new observed state. Nil fields were absent from the payload and must
// not overwrite existing device state.
//
// Each present field carries an absolute value, so applying an update is
// idempotent and last-write-wins per field — which is what makes the
// queue's drop-oldest overflow policy benign.
type StateUpdate struct {
	DeviceID string

	On          *bool
	Level       *int
	Position    *int
	Temperature *float64
	Setpoint    *float64
	Health      *model.HealthStatus
}

// SceneEvent is a notification that a scene has become active.
// RoomID may be empty if the payload carried none.
type SceneEvent struct {
	SceneID string
	RoomID  string
}

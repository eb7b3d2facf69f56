package ingress

import (
	"encoding/json"
	"fmt"

	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/model"
)

// stateFields is the flat field map carried by device state payloads.
// Every field is individually optional; absent fields stay nil and never
// overwrite device state downstream.
type stateFields struct {
	On          *bool    `json:"on"`
	Level       *int     `json:"level"`
	Position    *int     `json:"position"`
	Temperature *float64 `json:"temperature"`
	Setpoint    *float64 `json:"setpoint"`
	Health      *string  `json:"health"`
}

// stateEnvelope detects the optional single-level wrapper:
// the payload may be the field map directly, or nested under "state".
type stateEnvelope struct {
	State json.RawMessage `json:"state"`
}

// decodeStateUpdate parses a device state payload into a StateUpdate.
// Returns an error for payloads that are not JSON objects; the caller
// drops those messages.
func decodeStateUpdate(deviceID string, payload []byte) (events.StateUpdate, error) {
	raw := payload

	var env stateEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return events.StateUpdate{}, fmt.Errorf("parsing state payload: %w", err)
	}
	if len(env.State) > 0 {
		raw = env.State
	}

	var fields stateFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return events.StateUpdate{}, fmt.Errorf("parsing state fields: %w", err)
	}

	update := events.StateUpdate{
		DeviceID:    deviceID,
		On:          fields.On,
		Level:       fields.Level,
		Position:    fields.Position,
		Temperature: fields.Temperature,
		Setpoint:    fields.Setpoint,
	}
	if fields.Health != nil {
		health := model.ParseHealth(*fields.Health)
		update.Health = &health
	}
	return update, nil
}

// scenePayload carries the optional originating room id.
type scenePayload struct {
	RoomID string `json:"room_id"`
}

// decodeSceneEvent builds a SceneEvent from the topic-derived scene id
// and an optional payload. Malformed payloads are tolerated — the scene
// id alone is enough.
func decodeSceneEvent(sceneID string, payload []byte) events.SceneEvent {
	event := events.SceneEvent{SceneID: sceneID}

	var body scenePayload
	if err := json.Unmarshal(payload, &body); err == nil {
		event.RoomID = body.RoomID
	}
	return event
}

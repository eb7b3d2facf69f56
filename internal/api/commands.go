package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-panel/internal/command"
)

// Commander is the dispatch surface the command routes forward to;
// implemented by command.Dispatcher.
type Commander interface {
	Toggle(deviceID string) error
	SetLevel(deviceID string, level int) error
	SetPosition(deviceID string, position int) error
	SetSetpoint(deviceID string, setpoint float64) error
	ActivateScene(sceneID string) error
}

// commandRequest is the POST /api/v1/devices/{deviceID}/command body.
// Exactly one parameter is read, depending on the command.
type commandRequest struct {
	Command  string   `json:"command"`
	Level    *int     `json:"level"`
	Position *int     `json:"position"`
	Setpoint *float64 `json:"setpoint"`
}

// handleDeviceCommand test-fires a device command through the normal
// dispatcher. Dispatch is fire-and-forget, so success means "accepted",
// never "executed" — confirmation arrives via the sync pipeline.
func (s *Server) handleDeviceCommand(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch req.Command {
	case "toggle":
		err = s.commander.Toggle(deviceID)
	case "set_level":
		if req.Level == nil {
			writeError(w, http.StatusBadRequest, "set_level requires level")
			return
		}
		err = s.commander.SetLevel(deviceID, *req.Level)
	case "set_position":
		if req.Position == nil {
			writeError(w, http.StatusBadRequest, "set_position requires position")
			return
		}
		err = s.commander.SetPosition(deviceID, *req.Position)
	case "set_setpoint":
		if req.Setpoint == nil {
			writeError(w, http.StatusBadRequest, "set_setpoint requires setpoint")
			return
		}
		err = s.commander.SetSetpoint(deviceID, *req.Setpoint)
	default:
		writeError(w, http.StatusBadRequest, "unknown command")
		return
	}

	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

// handleSceneActivate test-fires a scene activation.
func (s *Server) handleSceneActivate(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "sceneID")

	if err := s.commander.ActivateScene(sceneID); err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

// writeDispatchError maps dispatcher errors to HTTP statuses.
func writeDispatchError(w http.ResponseWriter, err error) {
	if errors.Is(err, command.ErrNotLive) {
		writeError(w, http.StatusConflict, "panel is not live")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeError encodes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

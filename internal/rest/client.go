package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nerrad567/gray-logic-panel/internal/model"
)

// maxResponseBytes bounds how much of a Core response the panel will
// read. Hierarchy/device/scene responses for one room are a few KB.
const maxResponseBytes = 1 << 20

// Client talks to the Gray Logic Core REST API.
//
// All calls are blocking with a bounded timeout. Boot-time loads run on
// the presentation thread before the main loop starts; command dispatch
// is wrapped in fire-and-forget goroutines by the command package.
type Client struct {
	baseURL    string
	panelToken string
	httpClient *http.Client
}

// NewClient creates a Core REST client.
//
// Parameters:
//   - baseURL: Core API base, e.g. "http://localhost:8090"
//   - panelToken: opaque panel credential sent as X-Panel-Token
//   - timeout: per-request timeout (connection + response)
func NewClient(baseURL, panelToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		panelToken: panelToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// hierarchyResponse mirrors GET /api/v1/hierarchy.
// Rooms are nested under site → areas → rooms.
type hierarchyResponse struct {
	Site struct {
		Areas []struct {
			Rooms []roomJSON `json:"rooms"`
		} `json:"areas"`
	} `json:"site"`
}

type roomJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DeviceCount int    `json:"device_count"`
	SceneCount  int    `json:"scene_count"`
	SortOrder   int    `json:"sort_order"`
}

// devicesResponse mirrors GET /api/v1/devices?room_id=...
type devicesResponse struct {
	Data []deviceJSON `json:"data"`
}

type deviceJSON struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	RoomID       string          `json:"room_id"`
	Domain       string          `json:"domain"`
	HealthStatus string          `json:"health_status"`
	Capabilities []string        `json:"capabilities"`
	State        json.RawMessage `json:"state"`
}

// deviceStateJSON is the embedded current-state map — the same field set
// StateUpdate carries over MQTT.
type deviceStateJSON struct {
	On          *bool    `json:"on"`
	Level       *int     `json:"level"`
	Position    *int     `json:"position"`
	Tilt        *int     `json:"tilt"`
	Temperature *float64 `json:"temperature"`
	Setpoint    *float64 `json:"setpoint"`
}

// scenesResponse mirrors GET /api/v1/scenes?room_id=...
type scenesResponse struct {
	Scenes       []sceneJSON       `json:"scenes"`
	ActiveScenes map[string]string `json:"active_scenes"`
}

type sceneJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomID    string `json:"room_id"`
	Colour    string `json:"colour"`
	Icon      string `json:"icon"`
	Enabled   bool   `json:"enabled"`
	SortOrder int    `json:"sort_order"`
}

// LoadRooms fetches the site hierarchy and flattens it into an ordered
// room list, capped at model.MaxRooms.
func (c *Client) LoadRooms(ctx context.Context) ([]model.Room, error) {
	var resp hierarchyResponse
	if err := c.getJSON(ctx, "/api/v1/hierarchy", &resp); err != nil {
		return nil, fmt.Errorf("loading hierarchy: %w", err)
	}

	var rooms []model.Room
	for _, area := range resp.Site.Areas {
		for _, r := range area.Rooms {
			if len(rooms) >= model.MaxRooms {
				return rooms, nil
			}
			rooms = append(rooms, model.Room{
				ID:          r.ID,
				Name:        r.Name,
				DeviceCount: r.DeviceCount,
				SceneCount:  r.SceneCount,
				SortOrder:   r.SortOrder,
			})
		}
	}
	return rooms, nil
}

// LoadDevices fetches the devices for a room, capped at
// model.MaxDevicesPerRoom. Unrecognised capability tokens are dropped;
// the embedded state map, when present, seeds the initial device state.
func (c *Client) LoadDevices(ctx context.Context, roomID string) ([]model.Device, error) {
	path := "/api/v1/devices?room_id=" + url.QueryEscape(roomID)

	var resp devicesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("loading devices for room %s: %w", roomID, err)
	}

	devices := make([]model.Device, 0, len(resp.Data))
	for _, item := range resp.Data {
		if len(devices) >= model.MaxDevicesPerRoom {
			break
		}

		dev := model.Device{
			ID:     item.ID,
			Name:   item.Name,
			RoomID: item.RoomID,
			Domain: model.ParseDomain(item.Domain),
			Health: model.ParseHealth(item.HealthStatus),
		}
		for _, token := range item.Capabilities {
			if capability, ok := model.ParseCapability(token); ok {
				dev.Capabilities = append(dev.Capabilities, capability)
			}
		}
		if len(item.State) > 0 {
			applyEmbeddedState(item.State, &dev)
		}

		devices = append(devices, dev)
	}
	return devices, nil
}

// applyEmbeddedState copies the present fields of a device's embedded
// state map onto the device. Parse failures leave the device untouched.
func applyEmbeddedState(raw json.RawMessage, dev *model.Device) {
	var st deviceStateJSON
	if err := json.Unmarshal(raw, &st); err != nil {
		return
	}
	if st.On != nil {
		dev.On = *st.On
	}
	if st.Level != nil {
		dev.Level = *st.Level
	}
	if st.Position != nil {
		dev.Position = *st.Position
	}
	if st.Tilt != nil {
		dev.Tilt = *st.Tilt
	}
	if st.Temperature != nil {
		dev.Temperature = *st.Temperature
	}
	if st.Setpoint != nil {
		dev.Setpoint = *st.Setpoint
	}
}

// LoadScenes fetches the scenes for a room (capped at
// model.MaxScenesPerRoom) plus the currently active scene id for that
// room (empty if none).
func (c *Client) LoadScenes(ctx context.Context, roomID string) ([]model.Scene, string, error) {
	path := "/api/v1/scenes?room_id=" + url.QueryEscape(roomID)

	var resp scenesResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, "", fmt.Errorf("loading scenes for room %s: %w", roomID, err)
	}

	scenes := make([]model.Scene, 0, len(resp.Scenes))
	for _, s := range resp.Scenes {
		if len(scenes) >= model.MaxScenesPerRoom {
			break
		}
		scenes = append(scenes, model.Scene{
			ID:        s.ID,
			Name:      s.Name,
			RoomID:    s.RoomID,
			Colour:    s.Colour,
			Icon:      s.Icon,
			Enabled:   s.Enabled,
			SortOrder: s.SortOrder,
		})
	}

	return scenes, resp.ActiveScenes[roomID], nil
}

// SendCommand issues a device command. Core replies 202 Accepted;
// confirmation, if any, arrives later as a state update over MQTT.
//
// command: "toggle", "set_level", "set_position", "set_setpoint", ...
// params: command parameters, may be nil.
func (c *Client) SendCommand(ctx context.Context, deviceID, command string, params map[string]any) error {
	if params == nil {
		params = map[string]any{}
	}
	body := map[string]any{
		"command":    command,
		"parameters": params,
	}
	path := "/api/v1/devices/" + url.PathEscape(deviceID) + "/state"
	if err := c.postJSON(ctx, path, body); err != nil {
		return fmt.Errorf("sending %s to %s: %w", command, deviceID, err)
	}
	return nil
}

// ActivateScene requests activation of a scene. Confirmation arrives as
// a scene event over MQTT.
func (c *Client) ActivateScene(ctx context.Context, sceneID string) error {
	body := map[string]any{
		"trigger_type":   "manual",
		"trigger_source": "panel",
	}
	path := "/api/v1/scenes/" + url.PathEscape(sceneID) + "/activate"
	if err := c.postJSON(ctx, path, body); err != nil {
		return fmt.Errorf("activating scene %s: %w", sceneID, err)
	}
	return nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Panel-Token", c.panelToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s returned %d", ErrBadStatus, path, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

// postJSON performs an authenticated POST with a JSON body.
// The response body is discarded; only the status code matters.
func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Panel-Token", c.panelToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes)) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s returned %d", ErrBadStatus, path, resp.StatusCode)
	}
	return nil
}

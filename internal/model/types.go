package model

// Capacity limits for a single room's data bundle.
// These bound the fixed-size aggregate the panel holds for its lifetime;
// loaders truncate anything beyond them.
const (
	MaxDevicesPerRoom = 32
	MaxScenesPerRoom  = 16
	MaxRooms          = 16
)

// Domain represents the functional area a device belongs to.
// The panel only distinguishes the domains it can render; everything else
// maps to DomainOther.
type Domain string

// Domain constants — wire tokens match Gray Logic Core.
const (
	DomainLighting Domain = "lighting"
	DomainClimate  Domain = "climate"
	DomainBlinds   Domain = "blinds"
	DomainAudio    Domain = "audio"
	DomainOther    Domain = "other"
)

// ParseDomain converts a Core wire token into a Domain.
// Unrecognised tokens map to DomainOther.
func ParseDomain(s string) Domain {
	switch Domain(s) {
	case DomainLighting, DomainClimate, DomainBlinds, DomainAudio:
		return Domain(s)
	default:
		return DomainOther
	}
}

// Capability represents a control or telemetry axis a device supports.
type Capability string

// Capability constants — wire tokens match Gray Logic Core.
const (
	CapOnOff           Capability = "on_off"
	CapDim             Capability = "dim"
	CapPosition        Capability = "position"
	CapTilt            Capability = "tilt"
	CapTemperatureRead Capability = "temperature_read"
	CapTemperatureSet  Capability = "temperature_set"
	CapColorTemp       Capability = "color_temp"
	CapSpeed           Capability = "speed"
)

// ParseCapability converts a Core wire token into a Capability.
// Returns false for tokens the panel cannot render; loaders drop those.
func ParseCapability(s string) (Capability, bool) {
	switch Capability(s) {
	case CapOnOff, CapDim, CapPosition, CapTilt,
		CapTemperatureRead, CapTemperatureSet, CapColorTemp, CapSpeed:
		return Capability(s), true
	default:
		return "", false
	}
}

// HealthStatus represents device health as reported by Core.
type HealthStatus string

// Health status constants.
const (
	HealthOnline   HealthStatus = "online"
	HealthOffline  HealthStatus = "offline"
	HealthDegraded HealthStatus = "degraded"
	HealthUnknown  HealthStatus = "unknown"
)

// ParseHealth converts a Core wire token into a HealthStatus.
// Unrecognised tokens map to HealthUnknown.
func ParseHealth(s string) HealthStatus {
	switch HealthStatus(s) {
	case HealthOnline, HealthOffline, HealthDegraded:
		return HealthStatus(s)
	default:
		return HealthUnknown
	}
}

// Device is the panel's view of a Gray Logic device: identity,
// classification, and the state fields the panel can display.
//
// State fields are only meaningful when the corresponding capability is
// present — callers must check HasCapability before reading Level,
// Position, Tilt, Temperature or Setpoint.
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoomID string `json:"room_id"`

	Domain       Domain       `json:"domain"`
	Capabilities []Capability `json:"capabilities"`
	Health       HealthStatus `json:"health_status"`

	// State fields — updated via the sync pipeline.
	On          bool    `json:"on"`
	Level       int     `json:"level"`    // 0-100
	Position    int     `json:"position"` // 0-100 (blinds)
	Tilt        int     `json:"tilt"`     // 0-100 (blinds)
	Temperature float64 `json:"temperature"`
	Setpoint    float64 `json:"setpoint"`
}

// HasCapability reports whether the device supports the given capability.
func (d *Device) HasCapability(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// DeepCopy creates an independent copy of the Device.
// The capability slice is cloned so modifications to the copy do not
// affect the original.
func (d *Device) DeepCopy() Device {
	cpy := *d
	if d.Capabilities != nil {
		cpy.Capabilities = make([]Capability, len(d.Capabilities))
		copy(cpy.Capabilities, d.Capabilities)
	}
	return cpy
}

// Scene is the panel's view of a Gray Logic scene.
// Scenes are immutable once loaded for a session.
type Scene struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoomID    string `json:"room_id"`
	Colour    string `json:"colour"` // hex "#RRGGBB"
	Icon      string `json:"icon"`
	Enabled   bool   `json:"enabled"`
	SortOrder int    `json:"sort_order"`
}

// Room holds room metadata from the Core hierarchy. It does not own the
// device or scene lists — RoomData does.
type Room struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DeviceCount int    `json:"device_count"`
	SceneCount  int    `json:"scene_count"`
	SortOrder   int    `json:"sort_order"`
}

// RoomData bundles everything the panel needs for one room: the room
// record, its devices and scenes, and the currently active scene
// (empty = none). It is the single owned mutable aggregate, created once
// at boot and mutated only by the drain/apply loop.
type RoomData struct {
	Room          Room     `json:"room"`
	Devices       []Device `json:"devices"`
	Scenes        []Scene  `json:"scenes"`
	ActiveSceneID string   `json:"active_scene_id"`
}

// DeepCopy creates a complete independent copy of the RoomData.
func (rd *RoomData) DeepCopy() *RoomData {
	if rd == nil {
		return nil
	}

	cpy := *rd

	if rd.Devices != nil {
		cpy.Devices = make([]Device, len(rd.Devices))
		for i := range rd.Devices {
			cpy.Devices[i] = rd.Devices[i].DeepCopy()
		}
	}

	if rd.Scenes != nil {
		cpy.Scenes = make([]Scene, len(rd.Scenes))
		copy(cpy.Scenes, rd.Scenes)
	}

	return &cpy
}

// FindDevice returns a pointer into the Devices slice for the given ID,
// or nil if the device is not present. The pointer aliases RoomData's
// own storage; callers outside the drain/apply context must copy.
func (rd *RoomData) FindDevice(id string) *Device {
	for i := range rd.Devices {
		if rd.Devices[i].ID == id {
			return &rd.Devices[i]
		}
	}
	return nil
}

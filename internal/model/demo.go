package model

// DemoRoomData builds the static fallback dataset used when the panel
// cannot reach Gray Logic Core: a fixed living room with devices spanning
// every domain/capability combination the panel renders, four scenes, and
// one pre-selected active scene.
//
// The data is fully self-consistent — every device and scene references
// the demo room — so the panel behaves identically to a live boot, just
// without push updates or command dispatch.
func DemoRoomData() *RoomData {
	const roomID = "room-living-1"

	return &RoomData{
		Room: Room{
			ID:          roomID,
			Name:        "Living Room",
			DeviceCount: 5,
			SceneCount:  4,
			SortOrder:   1,
		},
		Devices: []Device{
			{
				ID:           "light-living-ceiling",
				Name:         "Ceiling",
				RoomID:       roomID,
				Domain:       DomainLighting,
				Capabilities: []Capability{CapOnOff, CapDim},
				Health:       HealthOnline,
				On:           true,
				Level:        75,
			},
			{
				ID:           "light-living-floor",
				Name:         "Floor Lamp",
				RoomID:       roomID,
				Domain:       DomainLighting,
				Capabilities: []Capability{CapOnOff, CapDim},
				Health:       HealthOnline,
				On:           true,
				Level:        40,
			},
			{
				ID:           "light-living-reading",
				Name:         "Reading",
				RoomID:       roomID,
				Domain:       DomainLighting,
				Capabilities: []Capability{CapOnOff},
				Health:       HealthOnline,
				On:           true,
				Level:        100,
			},
			{
				ID:           "blind-living-main",
				Name:         "Blinds",
				RoomID:       roomID,
				Domain:       DomainBlinds,
				Capabilities: []Capability{CapPosition},
				Health:       HealthOnline,
				On:           true,
				Position:     50,
			},
			{
				ID:           "climate-living-thermo",
				Name:         "Thermostat",
				RoomID:       roomID,
				Domain:       DomainClimate,
				Capabilities: []Capability{CapTemperatureRead, CapTemperatureSet},
				Health:       HealthOnline,
				On:           true,
				Temperature:  22.5,
				Setpoint:     22.0,
			},
		},
		Scenes: []Scene{
			{ID: "scene-evening", Name: "Evening", RoomID: roomID, Colour: "#F5A623", Icon: "evening", Enabled: true, SortOrder: 1},
			{ID: "scene-movie", Name: "Movie", RoomID: roomID, Colour: "#CC5500", Icon: "movie", Enabled: true, SortOrder: 2},
			{ID: "scene-morning", Name: "Morning", RoomID: roomID, Colour: "#FFF8E7", Icon: "morning", Enabled: true, SortOrder: 3},
			{ID: "scene-all-off", Name: "All Off", RoomID: roomID, Colour: "#6B7B3A", Icon: "off", Enabled: true, SortOrder: 4},
		},
		ActiveSceneID: "scene-evening",
	}
}

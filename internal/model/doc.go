// Package model defines the panel's view of Gray Logic Core entities.
//
// These are deliberately lightweight value types — only the fields the
// panel needs for display and control. The authoritative models live in
// Core; the panel mirrors a read-mostly subset of them for exactly one
// room.
//
// # Key Types
//
//   - Device: a controllable/observable entity with a domain and capability set
//   - Scene: a user-activatable preset (immutable for the session)
//   - Room: room metadata from the Core hierarchy
//   - RoomData: the single owned aggregate — one Room plus its devices,
//     scenes, and active scene
//
// # Ownership
//
// RoomData is created once at boot (live load or DemoRoomData fallback),
// handed to the store, and mutated in place by the drain/apply loop for
// the process lifetime. No devices or scenes are added or removed after
// boot.
package model

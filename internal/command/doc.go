// Package command dispatches user-triggered device commands and scene
// activations to Gray Logic Core.
//
// Each interactive control calls a typed method (Toggle, SetLevel,
// SetPosition, SetSetpoint, ActivateScene) on a single Dispatcher owned
// by the controller that created it — there is no per-control callback
// context to allocate or free.
//
// Dispatch is fire-and-forget by design: the UI never blocks on the
// network, and the authoritative result arrives through the MQTT sync
// pipeline as a state update or scene event. The only synchronous
// failure a caller sees is ErrNotLive, when the panel runs in demo mode.
package command

// Package rest implements the panel's HTTP collaborator contract with
// Gray Logic Core.
//
// Three boot-time loads (hierarchy, devices, scenes) and two
// fire-and-forget writes (device command, scene activation). Every call
// is blocking with a bounded timeout, authenticated with the opaque
// X-Panel-Token header.
//
// Command success or failure is never fed back into the room store —
// confirmation, if any, arrives later as a state update or scene event
// through the MQTT pipeline.
package rest

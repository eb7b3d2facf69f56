// Package ingress runs the panel's network receive side.
//
// The Worker owns the MQTT connection and subscribes to exactly two
// topic filters:
//
//	graylogic/core/device/+/state      → StateUpdate
//	graylogic/core/scene/+/activated   → SceneEvent
//
// Inbound messages are decoded on the broker client's goroutines and
// pushed into the bounded event queues. That is the worker's entire
// contract with the presentation side: it never reads or writes the room
// store, and no error crosses the boundary — a bad topic or payload
// simply produces no event.
package ingress

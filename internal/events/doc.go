// Package events defines the hand-off primitives between the panel's two
// threads of interest: the broker client's network goroutines (producer)
// and the presentation tick (consumer).
//
// # Architecture
//
//	MQTT message ──▶ DecodeDeviceTopic / DecodeSceneTopic
//	                         │
//	                         ▼
//	              StateUpdate / SceneEvent
//	                         │
//	                  Queue.TrySend          (network goroutine)
//	  ───────────────────────┼──────────────────────────────────
//	                  Queue.TryRecv          (presentation tick)
//
// The queues are the sole hand-off primitive: the ingress worker never
// touches the room store directly. Within one queue ordering is FIFO
// with possible loss of the oldest entries under overflow; across the
// two queues there is no ordering guarantee.
package events

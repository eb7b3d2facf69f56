// Package panel contains the presentation-side controllers: the boot
// sequencer and the drain/apply loop.
//
// # Architecture
//
//	                 ┌───────────────┐
//	 Core REST ────▶ │ BootSequencer │──▶ store.Init (once, at startup)
//	                 └───────────────┘
//	                 ┌───────────────┐
//	 event queues ──▶│  Panel.Drain  │──▶ store mutators + Refresher
//	                 └───────────────┘     (every presentation tick)
//
// These two are the only writers to the room store. The boot sequencer
// runs exactly once, before the tick loop starts; Drain runs on the
// single presentation goroutine thereafter. Together they give the
// store its single-writer discipline without any locking requirement on
// the callers' side.
//
// The Refresher interface is the panel's boundary with the widget tree:
// the drain loop reports which entity changed, the widget layer decides
// how to repaint it.
package panel

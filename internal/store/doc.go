// Package store holds the panel's single owned mutable snapshot of room
// data.
//
// The store is explicitly constructed at boot and passed by reference to
// the boot sequencer and the drain/apply loop — there is no package-level
// singleton. Lifecycle: init at boot, mutate per tick, drop at shutdown.
//
// Only two mutators exist (ApplyStateUpdate, SetActiveScene) and both are
// invoked exclusively from the drain/apply loop's execution context. All
// other access is read-only via Snapshot, which returns deep copies so
// readers never alias the store's own data.
package store

// Package registry provides the concurrent capability index.
//
// The registry serves the orchestrator's hot path: O(1) name lookups that
// contend with nothing, including in-flight writes. It does this with an
// atomically swapped immutable snapshot: readers load the current snapshot
// pointer and work against it, while all writes are serialized through a
// single mutex, build a complete new snapshot (primary maps plus derived
// by-domain and domain-index views), and publish it in one store.
//
// Derived indexes are always rebuilt from the full primary store after any
// mutation, never incrementally patched, so they can never drift from it.
//
// Writes come in three shapes: a full boot-time load, a targeted
// single-file reload triggered by a filesystem watcher, and a removal when
// a file disappears. A failed reload keeps the previous entry in place.
package registry

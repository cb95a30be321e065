// Package state provides thread-safe sharing of the loaded dataset between
// the background reloader and the UI.
//
// # Architecture
//
//	Producer (reloader):           Consumer (UI tick):
//	┌──────────────────┐          ┌───────────────────────┐
//	│ dataset.Stat()   │          │ store.Snapshot()      │
//	│ dataset.Load()   │          │ Version changed?      │
//	│ store.Update()   │─(mutex)─→│ engine.SetDataset()   │
//	└──────────────────┘          └───────────────────────┘
//
// # Update Semantics
//
//	// Success: replace records, bump Version, clear error
//	store.Update(records, fingerprint, nil)
//
//	// Failure: keep records and Version, record error
//	store.Update(nil, dataset.Fingerprint{}, err)
//
// When the file comes back unchanged after a failure, Recover clears the
// error without touching the records.
//
// The UI compares Snapshot.Version with the version it last handed to the
// engine, so the derived view is only recomputed when new data arrived.
//
// # Defensive Copying
//
// Snapshot clones the record slice and wraps the error so callers can never
// alias the store's internals. Individual records are shared: they are
// read-only once loaded.
//
// The zero Store is ready to use.
package state

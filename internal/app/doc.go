// Package app is the composition root for gridview.
//
// # Overview
//
// Run wires configuration, logging, the dataset, the grid engine and the UI
// together:
//
//  1. Load ~/.config/gridview/config.toml and apply command-line overrides
//  2. Send slog output to the configured log file
//  3. Load the dataset file, or generate the demo dataset
//  4. Build the grid.Engine with the configured sort, locale and selection mode
//  5. Start the reloader when a dataset file and reload_seconds are set
//  6. Run the TUI until the user quits or the context is cancelled
//
// Open performs steps 3 and 4 on its own, so headless callers such as the
// print command share the same loading rules as the TUI.
//
// # Reloading
//
//	┌─────────────────────────────────────────┐
//	│ StartReloader() goroutine               │
//	│  ├─> dataset.Stat()   fingerprint check │
//	│  ├─> dataset.Load()   only on change    │
//	│  └─> store.Update()                     │
//	│      └─> UI tick → Engine.SetDataset()  │
//	└─────────────────────────────────────────┘
//
// A failed reload keeps the previous records in the store and the UI shows
// the error. Retries back off exponentially up to 30 seconds.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration
//   - Log file cannot be opened
//   - Initial dataset missing or unparseable
//
// Recoverable errors (logged, reloading continues):
//   - Dataset file temporarily missing
//   - Dataset file mid-write or malformed
package app

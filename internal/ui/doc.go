// Package ui renders a grid.Engine as an interactive terminal table.
//
// The UI is a bubbletea program. It owns no table state of its own beyond the
// cursor, scroll offset and the text of the filter inputs: filtering, sorting
// and selection are delegated to the engine, and every frame is rendered from
// the engine's derived view. Only the rows inside the viewport are fetched,
// through Engine.Window, so large datasets stay cheap to draw.
//
// # Layout
//
//   - Status bar: title, visible/total rows, sort state, selection count, reload errors
//   - Column header: click or press s to sort; ↑/↓ marks the sorted column
//   - Filter row: one text input per filterable column
//   - Body: rows with a ● marker for selected records
//   - Footer: transient status message or key help
//
// # Reloading
//
// When Options.Store is set, the model polls it every RefreshEvery and hands
// a newer dataset to Engine.SetDataset. Filters, sort and selection survive
// the swap.
//
// # Key Bindings
//
//   - j/k, arrows: Move the cursor
//   - h/l, tab: Move the column focus
//   - s: Sort the focused column (asc, desc, asc, ...)
//   - / or f: Edit the focused column's filter (enter keeps it, esc clears it)
//   - x: Clear all filters
//   - space: Toggle selection of the cursor row
//   - c: Clear selection
//   - y: Copy selected rows (or the cursor row) as TSV
//   - T: Cycle theme, #: Toggle row numbers
//   - ?: Full help, q: Quit
package ui

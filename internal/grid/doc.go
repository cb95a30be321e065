// Package grid implements the view-state engine behind gridview's table.
//
// # Overview
//
// An Engine owns a reference to a host-supplied dataset together with the
// active filters, the active sort and the row selection. From those it
// derives the ordered sequence of records a renderer should draw:
//
//	view = sort(filter(dataset))
//
// The engine never mutates the dataset. Every derived view is a fresh slice.
//
// # Filtering
//
// Filters map a field name to a query string. A record passes when, for every
// non-empty query, the string form of the record's value at that field
// contains the query, compared with Unicode case folding. Filters compose
// conjunctively, so their evaluation order does not matter. A record without
// the field never matches a non-empty query.
//
// # Sorting
//
// At most one field is sorted at a time. SetSort implements the header-click
// state machine:
//
//	unsorted ──SetSort(f)──> (f, asc) ──SetSort(f)──> (f, desc) ──SetSort(f)──> (f, asc)
//	(f, *)   ──SetSort(g)──> (g, asc)
//
// Values are compared by their string form using a locale-aware collator
// (golang.org/x/text/collate). Numbers are not compared numerically: "10"
// sorts before "2". Datasets that need numeric order should zero-pad. The
// sort is stable in both directions.
//
// # Selection
//
// Selection tracks record identities (the "id" field). In Single mode the
// selection holds at most one identity and selecting replaces it. In Multi
// mode toggling adds or removes an identity. Selection is independent of
// dataset membership: replacing the dataset keeps stale identities until
// PruneSelection is called.
//
// # Windowing
//
// Len, Row and Window give O(1) random access into the cached derived view so
// a renderer can draw only the rows inside its viewport.
//
// # Concurrency
//
// An Engine is owned by a single rendering context and is not safe for
// concurrent use.
package grid

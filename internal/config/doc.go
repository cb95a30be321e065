// Package config loads gridview's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gridview/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Dataset: generated demo users (1000 rows)
//   - Columns: Name and Age, both sortable with text filters
//   - Sort: name ascending
//   - Selection: multi
//   - Locale: en
//   - Log file: ~/.local/state/gridview/gridview.log
//
// When a dataset file is configured, either in the file or through
// WithDataset, and no [sort] or [[columns]] are declared, the view starts
// unsorted and columns are inferred from the records.
//
// # TOML Format
//
//	dataset = "people.csv"      # relative to the config file
//	selection = "single"        # or "multi"
//	locale = "en"               # BCP 47 tag used for collation
//	reload_seconds = 5          # 0 disables reloading
//	tail_rows = 500             # keep only the last rows; 0 keeps all
//	demo_rows = 1000            # size of the generated dataset
//	log_file = "~/gridview.log"
//
//	[sort]
//	field = "name"
//	direction = "asc"
//
//	[[columns]]
//	field = "name"
//	label = "Name"
//	sortable = true
//	filter = "text"
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and invalid
// values (unknown selection modes, sort directions, filter kinds, locales,
// negative counts).
// Missing config files are NOT an error.
package config

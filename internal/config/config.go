package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/five82/gridview/internal/dataset"
	"github.com/five82/gridview/internal/grid"
)

// Config is the resolved gridview configuration.
type Config struct {
	DatasetPath   string
	DemoRows      int
	TailRows      int
	Selection     grid.SelectionMode
	Locale        language.Tag
	Sort          *grid.SortSpec
	Columns       []grid.Column
	ReloadEvery   time.Duration
	LogFile       string

	// set while Sort/Columns still hold the demo defaults
	demoSort    bool
	demoColumns bool
}

const (
	defaultConfigPath = "~/.config/gridview/config.toml"
	defaultLogFile    = "~/.local/state/gridview/gridview.log"
	defaultDemoRows   = 1000
	defaultLocale     = "en"
)

type fileConfig struct {
	Dataset       string         `toml:"dataset"`
	DemoRows      int            `toml:"demo_rows"`
	TailRows      int            `toml:"tail_rows"`
	Selection     string         `toml:"selection"`
	Locale        string         `toml:"locale"`
	ReloadSeconds int            `toml:"reload_seconds"`
	LogFile       string         `toml:"log_file"`
	Sort          *sortConfig    `toml:"sort"`
	Columns       []columnConfig `toml:"columns"`
}

type sortConfig struct {
	Field     string `toml:"field"`
	Direction string `toml:"direction"`
}

type columnConfig struct {
	Field    string `toml:"field"`
	Label    string `toml:"label"`
	Sortable bool   `toml:"sortable"`
	Filter   string `toml:"filter"`
}

// Default returns the configuration used when no file exists: the generated
// demo dataset sorted by name with name and age columns.
func Default() Config {
	return Config{
		DemoRows:  defaultDemoRows,
		Selection: grid.Multi,
		Locale:    language.English,
		Sort:      &grid.SortSpec{Field: "name", Direction: grid.Ascending},
		Columns: []grid.Column{
			{Field: "name", Label: "Name", Sortable: true, Filter: grid.FilterText},
			{Field: "age", Label: "Age", Sortable: true, Filter: grid.FilterText},
		},
		LogFile:     mustExpand(defaultLogFile),
		demoSort:    true,
		demoColumns: true,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := raw.resolve(filepath.Dir(resolved))
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (raw fileConfig) resolve(baseDir string) (Config, error) {
	cfg := Default()

	if ds := strings.TrimSpace(raw.Dataset); ds != "" {
		if !strings.HasPrefix(ds, "~") && !filepath.IsAbs(ds) {
			ds = filepath.Join(baseDir, ds)
		}
		cfg.DatasetPath = mustExpand(ds)
	}
	if raw.DemoRows < 0 {
		return Config{}, fmt.Errorf("demo_rows must not be negative")
	}
	if raw.DemoRows > 0 {
		cfg.DemoRows = raw.DemoRows
	}

	if raw.TailRows < 0 {
		return Config{}, fmt.Errorf("tail_rows must not be negative")
	}
	cfg.TailRows = raw.TailRows

	mode, err := grid.ParseSelectionMode(raw.Selection)
	if err != nil {
		return Config{}, err
	}
	cfg.Selection = mode

	locale := strings.TrimSpace(raw.Locale)
	if locale == "" {
		locale = defaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Config{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	cfg.Locale = tag

	if raw.ReloadSeconds < 0 {
		return Config{}, fmt.Errorf("reload_seconds must not be negative")
	}
	cfg.ReloadEvery = time.Duration(raw.ReloadSeconds) * time.Second

	if lf := strings.TrimSpace(raw.LogFile); lf != "" {
		cfg.LogFile = mustExpand(lf)
	}

	if raw.Sort != nil {
		field := strings.TrimSpace(raw.Sort.Field)
		dir, err := grid.ParseDirection(raw.Sort.Direction)
		if err != nil {
			return Config{}, err
		}
		if field == "" {
			cfg.Sort = nil
		} else {
			cfg.Sort = &grid.SortSpec{Field: field, Direction: dir}
		}
		cfg.demoSort = false
	}

	if len(raw.Columns) > 0 {
		cols := make([]grid.Column, 0, len(raw.Columns))
		for i, c := range raw.Columns {
			field := strings.TrimSpace(c.Field)
			if field == "" {
				return Config{}, fmt.Errorf("columns[%d]: field is empty", i)
			}
			kind, err := grid.ParseFilterKind(c.Filter)
			if err != nil {
				return Config{}, fmt.Errorf("columns[%d]: %w", i, err)
			}
			cols = append(cols, grid.Column{
				Field:    field,
				Label:    strings.TrimSpace(c.Label),
				Sortable: c.Sortable,
				Filter:   kind,
			})
		}
		cfg.Columns = cols
		cfg.demoColumns = false
	}

	if !cfg.UsesDemo() {
		cfg.dropDemoDefaults()
	}
	return cfg, nil
}

// WithDataset points the config at a dataset file, overriding the configured
// one. Demo sort and columns are dropped; columns are then inferred.
func (c Config) WithDataset(path string) Config {
	if strings.TrimSpace(path) == "" {
		return c
	}
	c.DatasetPath = mustExpand(path)
	c.dropDemoDefaults()
	return c
}

// The name/age defaults only make sense for the demo dataset.
func (c *Config) dropDemoDefaults() {
	if c.demoSort {
		c.Sort = nil
		c.demoSort = false
	}
	if c.demoColumns {
		c.Columns = nil
		c.demoColumns = false
	}
}

// UsesDemo reports whether the generated demo dataset should be shown.
func (c Config) UsesDemo() bool {
	return strings.TrimSpace(c.DatasetPath) == ""
}

// LoadOptions converts the config into dataset load options.
func (c Config) LoadOptions() []dataset.Option {
	if c.TailRows <= 0 {
		return nil
	}
	return []dataset.Option{dataset.WithTail(c.TailRows)}
}

// GridOptions converts the config into engine options.
func (c Config) GridOptions() grid.Options {
	opts := grid.Options{Mode: c.Selection, Locale: c.Locale}
	if c.Sort != nil {
		s := *c.Sort
		opts.InitialSort = &s
	}
	return opts
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/five82/gridview/internal/config"
	"github.com/five82/gridview/internal/dataset"
	"github.com/five82/gridview/internal/grid"
	"github.com/five82/gridview/internal/logging"
	"github.com/five82/gridview/internal/prefs"
	"github.com/five82/gridview/internal/state"
	"github.com/five82/gridview/internal/ui"
)

// Options configure the gridview application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/gridview/prefs.toml
	DatasetPath string // overrides the configured dataset
	Verbose     bool
}

// Session is a loaded dataset with an engine ready to render it.
type Session struct {
	Config  config.Config
	Engine  *grid.Engine
	Columns []grid.Column
	Store   *state.Store // nil for the demo dataset
	Title   string
}

// LoadConfig reads the config and applies the command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.WithDataset(opts.DatasetPath), nil
}

// Open loads the initial dataset and builds the engine over it.
func Open(cfg config.Config) (*Session, error) {
	s := &Session{Config: cfg, Title: "gridview"}

	var records []grid.Record
	if cfg.UsesDemo() {
		records = dataset.Generate(cfg.DemoRows)
		slog.Debug("generated demo dataset", "rows", len(records))
	} else {
		fp, err := dataset.Stat(cfg.DatasetPath)
		if err != nil {
			return nil, err
		}
		records, err = dataset.Load(cfg.DatasetPath, cfg.LoadOptions()...)
		if err != nil {
			return nil, err
		}
		s.Store = &state.Store{}
		s.Store.SetSource(cfg.DatasetPath)
		s.Store.Update(records, fp, nil)
		s.Title = "gridview · " + filepath.Base(cfg.DatasetPath)
		slog.Info("dataset loaded", "path", cfg.DatasetPath, "rows", len(records))
	}

	s.Columns = cfg.Columns
	if len(s.Columns) == 0 {
		s.Columns = dataset.InferColumns(records)
	}
	s.Engine = grid.New(records, cfg.GridOptions())
	return s, nil
}

// Run boots the gridview TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := logging.Setup(cfg.LogFile, opts.Verbose)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	session, err := Open(cfg)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}

	if session.Store != nil && cfg.ReloadEvery > 0 {
		StartReloader(ctx, session.Store, cfg.DatasetPath, cfg.ReloadEvery, cfg.LoadOptions()...)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Engine:    session.Engine,
		Columns:   session.Columns,
		Store:     session.Store,
		Title:     session.Title,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
	})
}

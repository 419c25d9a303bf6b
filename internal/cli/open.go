package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andyapp/andy/internal/config"
	"github.com/andyapp/andy/internal/logbook"
	"github.com/andyapp/andy/internal/model"
	"github.com/andyapp/andy/internal/store"
)

// openService resolves the database location from flags and config,
// opens the store and wraps it in a logbook service. Callers must
// Close the returned store.
func openService(opts *RootOptions) (*store.Store, *logbook.Service, config.Config, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, config.Config{}, WrapExitError(ExitCommandError, "resolve config path", err)
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, config.Config{}, WrapExitError(ExitCommandError, "load config", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath == "" {
		p, err := config.DefaultDatabasePath()
		if err != nil {
			return nil, nil, config.Config{}, WrapExitError(ExitCommandError, "resolve database path", err)
		}
		dbPath = p
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, config.Config{}, WrapExitError(ExitCommandError, "create database directory", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, config.Config{}, WrapExitError(ExitCommandError, fmt.Sprintf("open database %s", dbPath), err)
	}

	return st, logbook.New(st), cfg, nil
}

// settingsWithDefaults returns the current settings, overlaying config
// defaults onto first-run values so a configured preceptor name shows
// up before the first explicit save.
func settingsWithDefaults(s model.Settings, d config.Defaults) model.Settings {
	if s.PreceptorName == "" {
		s.PreceptorName = d.PreceptorName
	}
	if s.PreceptorPhone == "" {
		s.PreceptorPhone = d.PreceptorPhone
	}
	if d.Discipline != "" && s.Discipline == model.DefaultDiscipline {
		s.Discipline = d.Discipline
	}
	if d.Shift != "" && s.Shift == model.DefaultShift {
		s.Shift = d.Shift
	}
	if s.Location == "" {
		s.Location = d.Location
	}
	if s.Class == "" {
		s.Class = d.Class
	}
	if s.Group == "" {
		s.Group = d.Group
	}
	return s
}

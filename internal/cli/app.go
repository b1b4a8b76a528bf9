// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/siteshell/internal/config"
	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/logging"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	plain      bool
	theme      string
}

// loadConfig reads the config file named by --config, or the default
// location. A broken default file is reported and defaults are used.
func (o *rootOptions) loadConfig(stderr io.Writer) (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromPath(o.configPath)
	}
	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %v (using defaults)\n", WarningStyle.Render("warning:"), err)
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// reloader returns the function the shell calls on reboot.
func (o *rootOptions) reloader() func() (*config.Config, error) {
	if path := o.configPath; path != "" {
		return func() (*config.Config, error) {
			return config.LoadFromPath(path)
		}
	}
	return func() (*config.Config, error) {
		if err := config.ReloadGlobal(); err != nil {
			return nil, err
		}
		return config.Global(), nil
	}
}

// app is everything a running shell needs.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	src index.RecordIndex

	closers []func() error
}

func openApp(o *rootOptions, stderr io.Writer) (*app, error) {
	cfg, err := o.loadConfig(stderr)
	if err != nil {
		return nil, err
	}
	if o.theme != "" {
		if err := cfg.Set("ui.theme", o.theme); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	a := &app{cfg: cfg, log: log, closers: []func() error{logCloser.Close}}

	src, closeSrc, err := index.New(cfg.Index)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open index: %w", err)
	}
	a.src = src
	a.closers = append(a.closers, closeSrc)

	log.WithFields(logrus.Fields{
		"index": cfg.Index.Source,
		"theme": cfg.UI.Theme,
	}).Info("starting")
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

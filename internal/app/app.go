package app

import (
	"context"
	"fmt"
	"time"

	"pillterm/internal/api"
	"pillterm/internal/config"
	"pillterm/internal/prefs"
	"pillterm/internal/state"
	"pillterm/internal/ui"
)

// Options configure the pillterm application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pillterm/prefs.toml
	PollEvery  int    // seconds; zero uses the configured default
}

// Run boots the pillterm TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if cfg.PollSeconds > 0 {
		interval = time.Duration(cfg.PollSeconds) * time.Second
	}
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, client, interval)

	// Do initial refresh to populate store before UI starts
	_ = refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    &cfg,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Refresh: func(ctx context.Context) error {
			return refresh(ctx, store, client)
		},
	}
	return ui.Run(uiOpts)
}

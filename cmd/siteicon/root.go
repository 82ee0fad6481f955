package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/siteicon/config"
	"github.com/jonwraymond/siteicon/observe"
	"github.com/jonwraymond/siteicon/resolve"
	"github.com/jonwraymond/siteicon/source"
	"github.com/jonwraymond/siteicon/store"
)

var version = "dev"

// app carries the wired resolver across a command invocation.
type app struct {
	cfg      config.Config
	obs      observe.Observer
	resolver *resolve.Resolver
	closers  []func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "siteicon",
		Short:         "Resolve, cache and maintain site icons",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newResolveCmd(a),
		newSweepCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
	)
	return cmd
}

// setup loads configuration and wires the full pipeline. Every command
// calls it on entry and defers teardown.
func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	obs, err := observe.NewObserver(ctx, cfg.ObserveConfig())
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	a.obs = obs

	inst, err := observe.FromObserver(obs)
	if err != nil {
		return err
	}

	var kv store.KV
	if cfg.StorePath != "" {
		sq, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("opening icon store: %w", err)
		}
		a.closers = append(a.closers, sq.Close)
		kv = sq
	} else {
		kv = store.NewMemoryKV()
	}

	sources, err := cfg.Sources()
	if err != nil {
		return err
	}

	fetcher := source.NewHTTPFetcher(nil, cfg.RateLimiter())
	resolver, err := resolve.New(resolve.Config{
		Store:   store.New(kv),
		Cascade: source.NewCascade(source.CascadeConfig{
			Sources:    sources,
			Fetcher:    fetcher,
			Instrument: inst,
		}),
		Fetcher:               fetcher,
		Policy:                cfg.TTLPolicy(),
		Janitor:               cfg.JanitorConfig(),
		Instrument:            inst,
		MaxConcurrentUpgrades: cfg.MaxConcurrentUpgrades,
	})
	if err != nil {
		return err
	}
	a.resolver = resolver
	a.closers = append([]func() error{resolver.Close}, a.closers...)
	return nil
}

// teardown closes the resolver, the store and telemetry, in that order.
func (a *app) teardown(ctx context.Context) {
	for _, close := range a.closers {
		_ = close()
	}
	if a.obs != nil {
		_ = a.obs.Shutdown(ctx)
	}
}

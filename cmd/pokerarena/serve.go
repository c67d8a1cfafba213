package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerarena/cmd/pokerarena/shared"
	"github.com/lox/pokerarena/internal/server"
)

// ServeCmd hosts one table and plays the match to completion. The
// process exits once a winner is decided or the match aborts.
type ServeCmd struct {
	Config              string `kong:"short='c',help='Path to HCL configuration file'"`
	Addr                string `kong:"help='Server address (overrides config)'"`
	Debug               bool   `kong:"help='Enable debug logging'"`
	JoinCode            string `kong:"help='Join code bots must present (overrides config)'"`
	Seats               int    `kong:"help='Seats at the table (overrides config)'"`
	StartingStack       int    `kong:"help='Starting stack in chips (overrides config)'"`
	SmallBlind          int    `kong:"name='sb',help='Small blind (overrides config)'"`
	BigBlind            int    `kong:"name='bb',help='Big blind (overrides config)'"`
	MoveTimeMs          *int   `kong:"help='Decision clock in milliseconds, 0 disables it (overrides config)'"`
	HandControl         string `kong:"help='Hand start control, auto or operator (overrides config)'"`
	Presentation        string `kong:"help='Spectator pacing default, on or off (overrides config)'"`
	PresentationDelayMs *int   `kong:"help='Spectator pacing delay in milliseconds (overrides config)'"`
	Seed                *int64 `kong:"help='Deterministic deal seed base (overrides config)'"`
	Monitor             bool   `kong:"help='Print a result line per hand to stdout'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}

	// Apply command line overrides
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.JoinCode != "" {
		cfg.JoinCode = c.JoinCode
	}
	if c.Seats != 0 {
		cfg.Seats = c.Seats
	}
	if c.StartingStack != 0 {
		cfg.StartingStack = c.StartingStack
	}
	if c.SmallBlind != 0 {
		cfg.SB = c.SmallBlind
	}
	if c.BigBlind != 0 {
		cfg.BB = c.BigBlind
	}
	if c.MoveTimeMs != nil {
		cfg.MoveTimeMS = *c.MoveTimeMs
	}
	if c.HandControl != "" {
		cfg.HandControl = c.HandControl
	}
	if c.Presentation != "" {
		cfg.Presentation = c.Presentation
	}
	if c.PresentationDelayMs != nil {
		cfg.PresentationDelayMS = *c.PresentationDelayMs
	}
	if c.Seed != nil {
		cfg.Seed = c.Seed
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.LogLevel, c.Debug)

	metrics := server.NewMetrics()
	session := server.NewSession(cfg, quartz.NewReal(), metrics, logger)
	if c.Monitor {
		session.SetMonitor(server.NewMonitor(os.Stdout, cfg.BB))
	}
	srv := server.NewServer(cfg, session, metrics, logger)

	ctx := shared.SetupSignalHandler(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := session.Run(ctx)
		// The listener has no reason to outlive the match. errgroup
		// only cancels the group context on error, so stop it here.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return err
	})
	g.Go(srv.ListenAndServe)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

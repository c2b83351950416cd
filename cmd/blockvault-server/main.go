// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// blockvault-server runs the TCP listener described in spec §4.7,
// backed by either an in-memory or an on-disk chain store.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/blockvault/chain"
	"github.com/luxfi/blockvault/internal/config"
	"github.com/luxfi/blockvault/internal/logging"
	"github.com/luxfi/blockvault/server"
	"github.com/luxfi/blockvault/store"
	"github.com/luxfi/log"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "blockvault-server"

var app = &cli.App{
	Name:    clientIdentifier,
	Usage:   "append-only content-addressed block chain server",
	Version: "1.0.0",
	// Flag parsing is delegated to internal/config's pflag+viper
	// layer below, so urfave/cli must not try to interpret
	// --ip/--port/--fs/--workers itself.
	SkipFlagParsing: true,
}

func init() {
	app.Action = runServer
	app.Before = func(ctx *cli.Context) error {
		log.SetDefault(log.New())
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runServer resolves the CLI surface through internal/config's
// pflag+viper layer directly, rather than urfave/cli's own flag
// objects: the app shell (name, version, Before hook) is grounded on
// cmd/evm-node/main.go, but flag resolution is shared with anything
// else in this module that needs the same --ip/--port/--fs/--workers
// surface.
func runServer(ctx *cli.Context) error {
	cfg, err := config.BuildServerConfig(config.BuildServerFlagSet(), ctx.Args().Slice())
	if err != nil {
		return fmt.Errorf("blockvault-server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)
	logger := logging.NewServerLogger(addr)

	bc, err := buildChain(cfg, logger)
	if err != nil {
		return fmt.Errorf("blockvault-server: %w", err)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("blockvault-server: listen %s: %w", addr, err)
	}

	srv := server.New(listener, bc, cfg.Workers, logger)

	metricsLn, err := net.Listen("tcp", fmt.Sprintf("%s:0", cfg.IP))
	if err != nil {
		logger.Warn("metrics listener unavailable", "err", err)
	} else {
		go func() {
			logger.Info("metrics listening", "addr", metricsLn.Addr().String())
			_ = http.Serve(metricsLn, server.NewMetricsMux(bc))
		}()
	}

	// SIGINT/SIGTERM trigger the graceful shutdown spec §5 describes
	// (set the flag, unblock accept) rather than letting the process
	// die mid-connection, so spec §6's "exit 0 on clean shutdown"
	// surface is reachable from the binary.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigc
		logger.Info("received signal, shutting down", "signal", sig)
		srv.Shutdown()
	}()

	logger.Info("server listening", "addr", addr, "workers", cfg.Workers, "fs", cfg.FS)
	return srv.Serve()
}

func buildChain(cfg config.Server, logger log.Logger) (*chain.BlockChain, error) {
	if cfg.FS {
		fs, err := store.NewFileStore(store.DefaultRoot, logger)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return chain.New(fs, logger)
	}
	return chain.New(store.NewMemoryStore(), logger)
}

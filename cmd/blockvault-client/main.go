// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// blockvault-client is the interactive client described in spec §6:
// "add <path>", "check <path-or-hash>", "check" (full), "get <hash>",
// "help", "stop". Unknown commands print a warning and continue.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luxfi/blockvault/client"
	"github.com/luxfi/blockvault/internal/config"
	"github.com/luxfi/blockvault/internal/logging"
	"github.com/luxfi/log"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "blockvault-client"

var app = &cli.App{
	Name:            clientIdentifier,
	Usage:           "interactive client for an append-only content-addressed block chain server",
	Version:         "1.0.0",
	SkipFlagParsing: true,
}

func init() {
	app.Action = runClient
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

func runClient(ctx *cli.Context) error {
	cfg, err := config.BuildClientConfig(config.BuildClientFlagSet(), ctx.Args().Slice())
	if err != nil {
		return fmt.Errorf("blockvault-client: %w", err)
	}

	logger := logging.NewClientLogger(cfg.ServerAddr)
	cl, err := client.Connect(cfg.ServerAddr, ".", logger)
	if err != nil {
		return fmt.Errorf("blockvault-client: %w", err)
	}
	defer cl.Close()

	logger.Info("connected", "server", cfg.ServerAddr)
	return commandLoop(cl, logger, os.Stdin)
}

func commandLoop(cl *client.Client, logger log.Logger, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "add":
			if len(args) != 1 {
				logger.Warn("usage: add <path>")
				continue
			}
			if err := cl.AddFile(args[0]); err != nil {
				logger.Warn("add failed", "err", err)
			}
		case "check":
			switch len(args) {
			case 0:
				if err := cl.FullCheck(); err != nil {
					logger.Warn("check failed", "err", err)
				}
			case 1:
				if err := checkPathOrHash(cl, args[0]); err != nil {
					logger.Warn("check failed", "err", err)
				}
			default:
				logger.Warn("usage: check [path-or-hash]")
			}
		case "get":
			if len(args) != 1 {
				logger.Warn("usage: get <hash>")
				continue
			}
			if err := cl.GetFile(args[0]); err != nil {
				logger.Warn("get failed", "err", err)
			}
		case "help":
			printHelp()
		case "stop":
			return nil
		default:
			logger.Warn("unknown command", "cmd", cmd)
		}
	}
	return scanner.Err()
}

// checkPathOrHash follows spec §6's "check <path-or-hash>": if arg
// names a readable file, it's hashed locally and checked; otherwise
// arg is treated as a file hash directly.
func checkPathOrHash(cl *client.Client, arg string) error {
	if _, err := os.Stat(arg); err == nil {
		return cl.CheckFile(arg)
	}
	return cl.CheckHash(arg)
}

func printHelp() {
	fmt.Println("commands:")
	fmt.Println("  add <path>             send a file to the server")
	fmt.Println("  check <path-or-hash>   check whether a file is fully stored")
	fmt.Println("  check                  run a full chain consistency check")
	fmt.Println("  get <hash>             fetch a file by content hash")
	fmt.Println("  help                   show this message")
	fmt.Println("  stop                   disconnect and exit")
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config resolves the CLI surface named in spec §6 through
// spf13/pflag + spf13/viper, so flags and BLOCKVAULT_*-prefixed
// environment variables both feed the same values, the way the
// teacher's simulator command resolves its flags. No config file is
// read.
package config

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ipKey      = "ip"
	portKey    = "port"
	fsKey      = "fs"
	workersKey = "workers"
)

// Server holds the resolved server CLI surface: --ip, --port, --fs,
// --workers.
type Server struct {
	IP      string
	Port    int
	FS      bool
	Workers int
}

// BuildServerFlagSet declares the server's pflag.FlagSet.
func BuildServerFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("blockvault-server", pflag.ContinueOnError)
	fs.String(ipKey, "127.0.0.1", "address to listen on")
	fs.Int(portKey, 9119, "port to listen on")
	fs.Bool(fsKey, false, "persist blocks to disk (FileStore) instead of memory")
	fs.Int(workersKey, 16, "maximum concurrent connection workers")
	return fs
}

// BuildServerConfig parses args against fs, binds viper to it (with a
// BLOCKVAULT_ env-var prefix taking precedence over the flag
// default), and returns the resolved Server config.
func BuildServerConfig(fs *pflag.FlagSet, args []string) (Server, error) {
	if err := fs.Parse(args); err != nil {
		return Server{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("blockvault")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Server{}, fmt.Errorf("config: bind server flags: %w", err)
	}

	workers, err := cast.ToIntE(v.Get(workersKey))
	if err != nil || workers <= 0 {
		return Server{}, fmt.Errorf("config: --workers must be a positive integer, got %v", v.Get(workersKey))
	}

	port, err := cast.ToIntE(v.Get(portKey))
	if err != nil || port <= 0 || port > 65535 {
		return Server{}, fmt.Errorf("config: --port must be in (0, 65535], got %v", v.Get(portKey))
	}

	return Server{
		IP:      v.GetString(ipKey),
		Port:    port,
		FS:      v.GetBool(fsKey),
		Workers: workers,
	}, nil
}

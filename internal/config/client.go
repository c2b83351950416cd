// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const serverKey = "server"

// Client holds the resolved client CLI surface: the server address to
// dial.
type Client struct {
	ServerAddr string
}

// BuildClientFlagSet declares the client's pflag.FlagSet.
func BuildClientFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("blockvault-client", pflag.ContinueOnError)
	fs.String(serverKey, "127.0.0.1:9119", "server address to connect to")
	return fs
}

// BuildClientConfig parses args against fs and resolves the client
// config, honoring BLOCKVAULT_SERVER as an override.
func BuildClientConfig(fs *pflag.FlagSet, args []string) (Client, error) {
	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("blockvault")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Client{}, fmt.Errorf("config: bind client flags: %w", err)
	}

	addr, err := cast.ToStringE(v.Get(serverKey))
	if err != nil || addr == "" {
		return Client{}, fmt.Errorf("config: --server must be a non-empty address, got %v", v.Get(serverKey))
	}
	return Client{ServerAddr: addr}, nil
}

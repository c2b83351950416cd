// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildServerConfigDefaults(t *testing.T) {
	cfg, err := BuildServerConfig(BuildServerFlagSet(), nil)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.IP)
	require.Equal(t, 9119, cfg.Port)
	require.False(t, cfg.FS)
	require.Equal(t, 16, cfg.Workers)
}

func TestBuildServerConfigOverrides(t *testing.T) {
	cfg, err := BuildServerConfig(BuildServerFlagSet(), []string{"--ip", "0.0.0.0", "--port", "4040", "--fs", "--workers", "4"})
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.IP)
	require.Equal(t, 4040, cfg.Port)
	require.True(t, cfg.FS)
	require.Equal(t, 4, cfg.Workers)
}

func TestBuildServerConfigRejectsBadPort(t *testing.T) {
	_, err := BuildServerConfig(BuildServerFlagSet(), []string{"--port", "99999"})
	require.Error(t, err)
}

func TestBuildServerConfigRejectsBadWorkers(t *testing.T) {
	_, err := BuildServerConfig(BuildServerFlagSet(), []string{"--workers", "0"})
	require.Error(t, err)
}

func TestBuildClientConfigDefaults(t *testing.T) {
	cfg, err := BuildClientConfig(BuildClientFlagSet(), nil)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9119", cfg.ServerAddr)
}

func TestBuildClientConfigOverride(t *testing.T) {
	cfg, err := BuildClientConfig(BuildClientFlagSet(), []string{"--server", "10.0.0.5:7000"})
	require.NoError(t, err)
	require.Equal(t, "10.0.0.5:7000", cfg.ServerAddr)
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxfi/blockvault/chain"
	"github.com/luxfi/blockvault/chainblock"
	"github.com/luxfi/blockvault/server"
	"github.com/luxfi/blockvault/store"
	"github.com/stretchr/testify/require"
)

func newTestServerAndClient(t *testing.T) (*chain.BlockChain, *Client, string) {
	t.Helper()

	bc, err := chain.New(store.NewMemoryStore(), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(ln, bc, 4, nil)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Shutdown)

	outputDir := t.TempDir()
	cl, err := Connect(ln.Addr().String(), outputDir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cl.Close() })

	return bc, cl, outputDir
}

func TestClientAddFileAndGetFileRoundTrip(t *testing.T) {
	_, cl, outputDir := newTestServerAndClient(t)

	src := filepath.Join(t.TempDir(), "report.bin")
	data := make([]byte, 2037)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(src, data, 0o644))

	require.NoError(t, cl.AddFile(src))

	fileHash := chainblock.HashBytes(data)
	require.NoError(t, cl.GetFile(fileHash))

	require.Eventually(t, func() bool {
		got, err := os.ReadFile(filepath.Join(outputDir, "report.bin"))
		return err == nil && len(got) == len(data)
	}, 2*time.Second, 10*time.Millisecond)

	got, err := os.ReadFile(filepath.Join(outputDir, "report.bin"))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestClientCheckHashOnAbsentFile(t *testing.T) {
	_, cl, _ := newTestServerAndClient(t)

	// CheckHash is fire-and-forget; the assertion here is only that
	// it doesn't error sending the request over a live connection.
	require.NoError(t, cl.CheckHash("00000000000000000000000000000000000000000000000000000000000000"))
}

func TestClientCloseStopsReaderWorker(t *testing.T) {
	_, cl, _ := newTestServerAndClient(t)
	require.NoError(t, cl.Close())
	require.True(t, cl.isClosed())
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging builds the luxfi/log.Logger instances the server
// and client binaries inject into their components, rather than
// relying on the package-level logger luxfi/log also offers.
package logging

import "github.com/luxfi/log"

// NewServerLogger returns a logger tagged with the listening address,
// so every log line from chain/store/server carries it without the
// caller repeating it.
func NewServerLogger(addr string) log.Logger {
	return log.Root().With("component", "server", "addr", addr)
}

// NewClientLogger returns a logger tagged with the server address the
// client is talking to.
func NewClientLogger(serverAddr string) log.Logger {
	return log.Root().With("component", "client", "server", serverAddr)
}

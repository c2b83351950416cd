// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements the Client described in spec §4.8: a
// connection, a Factory producing server-bound requests, a Handler
// dispatching client-bound replies, and a reader worker running
// concurrently with the user-driven sender.
package client

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/luxfi/blockvault/protocol"
	"github.com/luxfi/blockvault/wire"
	"github.com/luxfi/log"
)

// Client owns one connection to a server. Operations (AddFile,
// CheckHash, CheckFile, GetFile, FullCheck) write a request and
// return once it's on the wire; any reply arrives later on the reader
// goroutine and is handled asynchronously, per spec §4.8/§5.
type Client struct {
	conn net.Conn
	log  log.Logger

	factory *protocol.Factory
	handler *protocol.Handler

	outputDir string

	filesMu sync.Mutex
	files   map[string]*os.File

	closeLock sync.Mutex
	closed    bool
	readerWg  sync.WaitGroup
}

// Connect dials addr and starts the reader worker. outputDir is where
// GetFile reconstructs files named by the blocks it receives;
// outputDir="" uses the process's working directory.
func Connect(addr string, outputDir string, logger log.Logger) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}
	return newClient(conn, outputDir, logger), nil
}

func newClient(conn net.Conn, outputDir string, logger log.Logger) *Client {
	if logger == nil {
		logger = log.Root()
	}
	c := &Client{
		conn:      conn,
		log:       logger,
		factory:   protocol.NewFactory(protocol.ToServer),
		handler:   protocol.NewHandler(protocol.ToClient),
		outputDir: outputDir,
		files:     make(map[string]*os.File),
	}
	c.handler.Register(protocol.KindLogText, c.handleLogText)
	c.handler.Register(protocol.KindSendFile, c.handleSendFile)

	c.readerWg.Add(1)
	go c.readLoop()
	return c
}

// Close closes the connection and waits for the reader worker to
// exit, transitioning the client to a closed state.
func (c *Client) Close() error {
	c.closeLock.Lock()
	if c.closed {
		c.closeLock.Unlock()
		return nil
	}
	c.closed = true
	c.closeLock.Unlock()

	err := c.conn.Close()
	c.readerWg.Wait()
	return err
}

func (c *Client) isClosed() bool {
	c.closeLock.Lock()
	defer c.closeLock.Unlock()
	return c.closed
}

// readLoop dispatches incoming client-bound packages until the
// connection is closed by either side, per spec §4.8's "on disconnect,
// the worker exits and the client transitions to a closed state".
func (c *Client) readLoop() {
	defer c.readerWg.Done()
	defer func() {
		c.closeLock.Lock()
		c.closed = true
		c.closeLock.Unlock()
		_ = c.conn.Close()
	}()
	for {
		raw, err := wire.ReadFrame(c.conn)
		if err != nil {
			if !c.isClosed() {
				c.log.Debug("reader worker exiting", "err", err)
			}
			return
		}
		if _, err := c.handler.Handle(raw); err != nil {
			c.log.Warn("protocol error from server", "err", err)
			return
		}
	}
}

func (c *Client) send(pkg protocol.Package) error {
	if err := wire.WriteFrame(c.conn, pkg.Bytes()); err != nil {
		return fmt.Errorf("client: send %s: %w", pkg.Kind, err)
	}
	return nil
}

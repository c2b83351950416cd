// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server implements the TCP accept loop and per-connection
// workers described in spec §4.7: one worker per accepted connection,
// all sharing the same chain.BlockChain coordinator.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/luxfi/blockvault/chain"
	"github.com/luxfi/blockvault/protocol"
	"github.com/luxfi/blockvault/wire"
	"github.com/luxfi/log"
	"golang.org/x/sync/semaphore"
)

// Server owns the listener, the shared chain, a Factory producing
// client-bound replies, and a Handler accepting server-bound requests.
// Concurrent connection workers are bounded by a weighted semaphore
// sized to --workers, per spec §4.7/§5.
type Server struct {
	listener net.Listener
	chain    *chain.BlockChain
	log      log.Logger

	factory *protocol.Factory
	handler *protocol.Handler
	sem     *semaphore.Weighted

	wg sync.WaitGroup

	closeLock sync.Mutex
	closed    bool

	metrics *serverMetrics
}

// New builds a Server over an already-bound listener. workers bounds
// the number of connections processed concurrently; additional
// accepted connections queue behind the semaphore rather than being
// rejected.
func New(listener net.Listener, bc *chain.BlockChain, workers int, logger log.Logger) *Server {
	if logger == nil {
		logger = log.Root()
	}
	if workers <= 0 {
		workers = 1
	}

	s := &Server{
		listener: listener,
		chain:    bc,
		log:      logger,
		factory:  protocol.NewFactory(protocol.ToClient),
		handler:  protocol.NewHandler(protocol.ToServer),
		sem:      semaphore.NewWeighted(int64(workers)),
		metrics:  newServerMetrics(),
	}
	s.registerHandlers()
	return s
}

// Serve runs the accept loop until Shutdown is called or the listener
// fails for a reason other than having been closed by Shutdown.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isClosed() {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		if s.isClosed() {
			conn.Close()
			s.wg.Wait()
			return nil
		}

		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

// Shutdown sets the shutdown flag and dials the listener once to
// unblock a pending Accept, per spec §5's graceful-shutdown recipe.
// In-flight workers drain their current message, then exit on the
// next iteration once they observe the flag.
func (s *Server) Shutdown() {
	s.closeLock.Lock()
	if s.closed {
		s.closeLock.Unlock()
		return
	}
	s.closed = true
	s.closeLock.Unlock()

	if conn, err := net.Dial(s.listener.Addr().Network(), s.listener.Addr().String()); err == nil {
		conn.Close()
	}
}

func (s *Server) isClosed() bool {
	s.closeLock.Lock()
	defer s.closeLock.Unlock()
	return s.closed
}

// serveConn reads framed packages from conn and invokes the handler
// for each one, writing back any reply packages, until EOF, an I/O
// error, or the shutdown flag is observed between messages.
func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	if err := s.sem.Acquire(context.Background(), 1); err != nil {
		return
	}
	defer s.sem.Release(1)

	s.metrics.connectionsAccepted.Add(1)
	remote := conn.RemoteAddr().String()

	for {
		if s.isClosed() {
			return
		}

		raw, err := wire.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				s.log.Debug("connection closed", "remote", remote, "err", err)
			}
			return
		}

		replies, err := s.handler.Handle(raw)
		if err != nil {
			s.log.Warn("dropping connection on protocol error", "remote", remote, "err", err)
			return
		}

		for _, reply := range replies {
			if err := wire.WriteFrame(conn, reply.Bytes()); err != nil {
				var overflow *wire.OverflowError
				if errors.As(err, &overflow) {
					s.log.Error("reply package too large to send", "remote", remote, "err", err)
					continue
				}
				s.log.Debug("failed to write reply", "remote", remote, "err", err)
				return
			}
		}
	}
}

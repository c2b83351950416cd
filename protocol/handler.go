// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"fmt"
	"sync"
)

// PayloadHandlerFunc processes one Package's payload and returns zero
// or more reply Packages to write back on the same connection.
type PayloadHandlerFunc func(payload []byte) ([]Package, error)

// Handler dispatches incoming, already-framed bytes to registered
// per-kind handlers, matching spec §4.5's PackageHandler: it accepts
// only one fixed Direction, rejecting anything else as a
// PackageHandleError rather than silently processing it.
type Handler struct {
	direction Direction

	mu       sync.RWMutex
	handlers map[Kind]PayloadHandlerFunc
}

// NewHandler returns a Handler that only accepts Packages whose
// Direction equals direction.
func NewHandler(direction Direction) *Handler {
	return &Handler{direction: direction, handlers: make(map[Kind]PayloadHandlerFunc)}
}

// Register installs fn as the handler for kind, replacing any
// previous registration.
func (h *Handler) Register(kind Kind, fn PayloadHandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[kind] = fn
}

// Handle reconstructs a Package from raw, verifies its direction, and
// invokes the handler registered for its kind. An unknown kind (caught
// by FromBytes), a direction mismatch, or a kind with no registered
// handler all return a PackageHandleError.
func (h *Handler) Handle(raw []byte) ([]Package, error) {
	pkg, err := FromBytes(raw)
	if err != nil {
		return nil, &PackageHandleError{Reason: err.Error()}
	}
	if pkg.Direction != h.direction {
		return nil, &PackageHandleError{
			Reason: fmt.Sprintf("direction mismatch: got %s, handler accepts %s", pkg.Direction, h.direction),
		}
	}

	h.mu.RLock()
	fn, ok := h.handlers[pkg.Kind]
	h.mu.RUnlock()
	if !ok {
		return nil, &PackageHandleError{Reason: fmt.Sprintf("no handler registered for kind %s", pkg.Kind)}
	}
	return fn(pkg.Payload)
}

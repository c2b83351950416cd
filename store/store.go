// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store implements the ChainStore persistence abstraction:
// a content-addressed key/value contract keyed by block hash, with an
// in-memory and an on-disk implementation. Neither implementation
// knows about chain semantics (duplicate detection, traversal) -- that
// lives one layer up, in package chain.
package store

import (
	"errors"

	"github.com/luxfi/blockvault/chainblock"
)

// ErrNotFound names the "block not found" condition. Neither
// MemoryStore nor FileStore returns it: their Get reports an absent
// hash as a plain (Block{}, false, nil).
var ErrNotFound = errors.New("store: block not found")

// ChainStore is the persistence contract shared by MemoryStore and
// FileStore. It is deliberately narrow -- Get, Add, GetHead, SetHead,
// Size -- because the chain above it never deletes or updates a
// block once added.
type ChainStore interface {
	// GetHead returns the current head block hash and true, or
	// ("", false) if the chain is empty.
	GetHead() (string, bool, error)

	// SetHead records the given block hash as the new head.
	SetHead(hash string) error

	// Get returns the block stored under hash, or (Block{}, false, nil)
	// if absent.
	Get(hash string) (chainblock.Block, bool, error)

	// Add stores block under chainblock.HashBlock(block) and returns
	// that hash. Add does not check for duplicates or validate
	// PrevHash -- that is chain.BlockChain's job. Re-adding an
	// existing hash is permitted by the store; the chain coordinator
	// never does so because it checks first.
	Add(block chainblock.Block) (string, error)

	// Size returns the number of blocks stored.
	Size() (int, error)
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"sync"

	"github.com/luxfi/blockvault/chainblock"
)

var _ ChainStore = (*MemoryStore)(nil)

// MemoryStore is a ChainStore backed by a plain map, guarded by a
// single reader/writer lock covering both the block map and the head
// pointer. All operations are O(1).
type MemoryStore struct {
	mu     sync.RWMutex
	blocks map[string]chainblock.Block
	head   string
	hasHead bool
}

// NewMemoryStore returns an empty in-memory ChainStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blocks: make(map[string]chainblock.Block)}
}

func (s *MemoryStore) GetHead() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head, s.hasHead, nil
}

func (s *MemoryStore) SetHead(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.head = hash
	s.hasHead = true
	return nil
}

func (s *MemoryStore) Get(hash string) (chainblock.Block, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blocks[hash]
	return b, ok, nil
}

func (s *MemoryStore) Add(block chainblock.Block) (string, error) {
	hash := chainblock.HashBlock(block)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[hash] = block
	return hash, nil
}

func (s *MemoryStore) Size() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks), nil
}

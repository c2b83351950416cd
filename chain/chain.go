// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chain implements BlockChain, the thread-safe coordinator
// that is the only component clients of this library talk to. It
// layers duplicate detection, chain traversal, and consistency
// checking on top of a store.ChainStore.
package chain

import (
	"fmt"
	"hash"
	"hash/fnv"
	"sync"

	"github.com/holiman/bloomfilter/v2"
	"github.com/luxfi/blockvault/chainblock"
	"github.com/luxfi/blockvault/store"
	"github.com/luxfi/log"
)

// bloomExpectedBlocks sizes the duplicate-prefilter for a chain
// expected to hold on the order of a few million blocks before the
// false-positive rate starts mattering enough to rebuild it; a false
// positive only costs an extra chain walk; a false negative is
// impossible by construction (bloom filters never under-report).
const bloomExpectedBlocks = 1 << 20

// bloomFalsePositiveRate trades prefilter memory for walk-skipping
// accuracy.
const bloomFalsePositiveRate = 0.01

// sectionInfo is the IndexAll/Filename a FileHash has already
// committed to, so a later block claiming the same FileHash can be
// checked for agreement in O(1) instead of by walking the chain.
type sectionInfo struct {
	IndexAll uint32
	Filename string
}

// BlockChain is the append-only, thread-safe coordinator described in
// spec §4.4. Reads (Get, CheckHash, CheckChain, Size) never take chainMu:
// blocks are immutable once added and the head pointer is read
// atomically from the store, so a reader observes some consistent
// linearization of completed Adds without blocking writers.
type BlockChain struct {
	store store.ChainStore
	log   log.Logger

	// chainMu serializes Add: read head, check for a duplicate, write
	// the new block, write the new head. This is the only critical
	// section in the whole coordinator.
	chainMu sync.Mutex

	seen   *bloomfilter.Filter
	seenMu sync.Mutex

	// sections lets checkSectionAgreement answer without walking the
	// chain: every FileHash this process has added is keyed to the
	// IndexAll/Filename it committed to.
	sectionsMu sync.Mutex
	sections   map[string]sectionInfo
}

// New builds a BlockChain over the given store. logger may be nil, in
// which case log.Root() is used.
func New(s store.ChainStore, logger log.Logger) (*BlockChain, error) {
	if logger == nil {
		logger = log.Root()
	}
	filter, err := bloomfilter.NewOptimal(bloomExpectedBlocks, bloomFalsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("chain: build duplicate prefilter: %w", err)
	}
	return &BlockChain{store: s, log: logger, seen: filter, sections: make(map[string]sectionInfo)}, nil
}

// bloomKey adapts a content hash string to the hash.Hash64 the bloom
// filter library expects.
func bloomKey(contentHash string) hash.Hash64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(contentHash))
	return h
}

func (c *BlockChain) maybeContains(contentHash string) bool {
	c.seenMu.Lock()
	defer c.seenMu.Unlock()
	return c.seen.Contains(bloomKey(contentHash))
}

func (c *BlockChain) markSeen(contentHash string) {
	c.seenMu.Lock()
	defer c.seenMu.Unlock()
	c.seen.Add(bloomKey(contentHash))
}

// Add atomically appends block to the chain: the block is anointed
// with the current head as PrevHash, checked for a contradicting
// IndexAll/Filename under the same FileHash (this implementation's
// resolution of spec §9's "index_all trust" open question) via the
// O(1) section index, checked against the chain for an exact
// duplicate (per chainblock.Block.Equal) only when the bloom filter
// reports the content as possibly already seen, stored, and made the
// new head.
//
// On ErrDuplicateBlock or ErrSectionInconsistent, Add returns before
// any mutation: size() and head are unchanged.
func (c *BlockChain) Add(block chainblock.Block) (string, error) {
	contentHash := chainblock.ContentHash(block)

	c.chainMu.Lock()
	defer c.chainMu.Unlock()

	head, hasHead, err := c.store.GetHead()
	if err != nil {
		return "", fmt.Errorf("chain: read head: %w", err)
	}
	prevHash := chainblock.SentinelHash
	if hasHead {
		prevHash = head
	}
	candidate := block.WithPrevHash(prevHash)

	if err := c.checkSectionAgreement(candidate); err != nil {
		return "", err
	}

	if c.maybeContains(contentHash) {
		if err := c.checkForDuplicate(head, hasHead, candidate); err != nil {
			return "", err
		}
	}

	blockHash := chainblock.HashBlock(candidate)
	if _, err := c.store.Add(candidate); err != nil {
		return "", fmt.Errorf("chain: persist block: %w", err)
	}
	if err := c.store.SetHead(blockHash); err != nil {
		return "", fmt.Errorf("chain: advance head: %w", err)
	}
	c.markSeen(contentHash)
	c.recordSection(candidate)

	c.log.Info("added block", "fileHash", candidate.FileHash, "ordinal", candidate.Ordinal, "blockHash", blockHash)
	return blockHash, nil
}

// checkForDuplicate walks the chain from head looking for an exact
// duplicate of candidate (by Equal). It is only reached when the
// bloom filter reports a possible match, so a miss never pays for this
// walk. head/hasHead are threaded in from Add's own read rather than
// re-read here, since this runs inside Add's critical section where
// the head cannot have moved.
func (c *BlockChain) checkForDuplicate(head string, hasHead bool, candidate chainblock.Block) error {
	return c.walkFromAnd(head, hasHead, func(b chainblock.Block) (bool, error) {
		if b.Equal(candidate) {
			return false, ErrDuplicateBlock
		}
		return true, nil
	})
}

// checkSectionAgreement reports ErrSectionInconsistent if this process
// has already committed a different IndexAll or Filename for
// candidate's FileHash. It is an O(1) map lookup, not a chain walk, so
// every Add pays for it regardless of what the bloom filter says.
func (c *BlockChain) checkSectionAgreement(candidate chainblock.Block) error {
	c.sectionsMu.Lock()
	existing, ok := c.sections[candidate.FileHash]
	c.sectionsMu.Unlock()
	if !ok {
		return nil
	}
	if existing.IndexAll != candidate.IndexAll || existing.Filename != candidate.Filename {
		return ErrSectionInconsistent
	}
	return nil
}

// recordSection remembers the first IndexAll/Filename committed for a
// FileHash, so later blocks of the same file are checked against it in
// checkSectionAgreement instead of by walking.
func (c *BlockChain) recordSection(block chainblock.Block) {
	c.sectionsMu.Lock()
	defer c.sectionsMu.Unlock()
	if _, ok := c.sections[block.FileHash]; !ok {
		c.sections[block.FileHash] = sectionInfo{IndexAll: block.IndexAll, Filename: block.Filename}
	}
}

// walkFromAnd walks the chain starting at head, invoking visit for
// each block until visit returns false or the sentinel is reached.
// hasHead false (an empty chain) is a no-op. It is used from within
// Add's critical section, so it must not acquire chainMu itself.
func (c *BlockChain) walkFromAnd(head string, hasHead bool, visit func(chainblock.Block) (bool, error)) error {
	if !hasHead {
		return nil
	}

	cursor := head
	for {
		block, ok, err := c.store.Get(cursor)
		if err != nil {
			return fmt.Errorf("chain: read block %s: %w", cursor, err)
		}
		if !ok {
			return nil
		}
		keepGoing, err := visit(block)
		if err != nil {
			return err
		}
		if !keepGoing || block.PrevHash == chainblock.SentinelHash {
			return nil
		}
		cursor = block.PrevHash
	}
}

// Size returns the number of blocks stored, delegating to the store.
func (c *BlockChain) Size() (int, error) {
	return c.store.Size()
}

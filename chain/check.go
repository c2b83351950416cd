// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/luxfi/blockvault/chainblock"
)

// collectFile walks the chain from the current head, gathering blocks
// whose FileHash matches, stopping once either the first collected
// block's IndexAll worth of blocks have been found or the chain ends.
// This is a read path: it never touches chainMu, because blocks are
// immutable and the head pointer is read atomically from the store.
func (c *BlockChain) collectFile(fileHash string) ([]chainblock.Block, error) {
	head, hasHead, err := c.store.GetHead()
	if err != nil {
		return nil, fmt.Errorf("chain: read head: %w", err)
	}
	if !hasHead {
		return nil, nil
	}

	var collected []chainblock.Block
	var wantCount uint32
	cursor := head
	for {
		block, ok, err := c.store.Get(cursor)
		if err != nil {
			return nil, fmt.Errorf("chain: read block %s: %w", cursor, err)
		}
		if !ok {
			break
		}
		if block.FileHash == fileHash {
			if len(collected) == 0 {
				wantCount = block.IndexAll
			}
			collected = append(collected, block)
			if uint32(len(collected)) == wantCount {
				break
			}
		}
		if block.PrevHash == chainblock.SentinelHash {
			break
		}
		cursor = block.PrevHash
	}
	return collected, nil
}

// CheckHash reports whether a file with the given content hash is
// present and complete: all of its blocks have been added, their
// ordinals cover exactly [0, IndexAll) with no duplicates, they agree
// on IndexAll/Filename, and the SHA-256 of their chunks in ordinal
// order equals fileHash.
func (c *BlockChain) CheckHash(fileHash string) (present bool, count int, err error) {
	blocks, err := c.collectFile(fileHash)
	if err != nil {
		return false, 0, err
	}
	if len(blocks) == 0 {
		return false, 0, nil
	}

	computed, err := validateFileSection(blocks)
	if err != nil {
		return false, 0, nil
	}
	if computed != fileHash {
		return false, 0, nil
	}
	if uint32(len(blocks)) != blocks[0].IndexAll {
		return false, 0, nil
	}
	for _, b := range blocks {
		if b.Ordinal >= b.IndexAll {
			return false, 0, nil
		}
	}
	return true, len(blocks), nil
}

// Get returns the blocks of the file identified by fileHash, sorted
// by ascending Ordinal. It returns an empty slice if the file is
// absent, without regard to whether it is complete or consistent --
// callers that need completeness should call CheckHash first.
func (c *BlockChain) Get(fileHash string) ([]chainblock.Block, error) {
	blocks, err := c.collectFile(fileHash)
	if err != nil {
		return nil, err
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Ordinal < blocks[j].Ordinal })
	return blocks, nil
}

// CheckChain walks the entire chain from head to the sentinel,
// verifying that every block's stored hash matches its recomputed
// hash (tamper detection), then verifies every distinct file found
// along the way via CheckHash.
func (c *BlockChain) CheckChain() (valid bool, fileCount int, err error) {
	head, hasHead, err := c.store.GetHead()
	if err != nil {
		return false, 0, fmt.Errorf("chain: read head: %w", err)
	}
	if !hasHead {
		return true, 0, nil
	}

	fileHashes := mapset.NewSet[string]()
	expectedHash := head
	cursor := head
	for {
		block, ok, err := c.store.Get(cursor)
		if err != nil {
			return false, 0, fmt.Errorf("chain: read block %s: %w", cursor, err)
		}
		if !ok {
			// Premature end of chain before reaching the sentinel.
			return false, 0, nil
		}
		if chainblock.HashBlock(block) != expectedHash {
			return false, 0, nil
		}

		fileHashes.Add(block.FileHash)

		if block.PrevHash == chainblock.SentinelHash {
			break
		}
		expectedHash = block.PrevHash
		cursor = block.PrevHash
	}

	valid = true
	for _, fileHash := range fileHashes.ToSlice() {
		ok, _, err := c.CheckHash(fileHash)
		if err != nil {
			return false, 0, err
		}
		valid = valid && ok
	}
	if !valid {
		return false, 0, nil
	}
	return true, fileHashes.Cardinality(), nil
}

// validateFileSection fails with ErrSectionInconsistent if blocks is
// empty, if any two share an Ordinal, or if they disagree on
// FileHash, IndexAll, or Filename. On success it returns the SHA-256
// hex of the chunks in ordinal order.
func validateFileSection(blocks []chainblock.Block) (string, error) {
	if len(blocks) == 0 {
		return "", ErrSectionInconsistent
	}

	first := blocks[0]
	seenOrdinals := make(map[uint32]struct{}, len(blocks))
	for _, b := range blocks {
		if b.FileHash != first.FileHash || b.IndexAll != first.IndexAll || b.Filename != first.Filename {
			return "", ErrSectionInconsistent
		}
		if _, dup := seenOrdinals[b.Ordinal]; dup {
			return "", ErrSectionInconsistent
		}
		seenOrdinals[b.Ordinal] = struct{}{}
	}

	sorted := append([]chainblock.Block(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Ordinal < sorted[j].Ordinal })

	chunks := make([][]byte, len(sorted))
	for i, b := range sorted {
		chunks[i] = b.Chunk
	}
	return chainblock.HashBytes(chunks...), nil
}

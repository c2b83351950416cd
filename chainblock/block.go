// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainblock defines the immutable Block that is the atomic unit
// of the block chain, its canonical wire/storage encoding, and the
// content-hashing it is keyed by.
package chainblock

// ChunkSize is the maximum number of content bytes a single block may
// carry. Only the last block of a file (the one with the highest
// Ordinal) may carry fewer. This is a protocol constant: every
// implementation must use the same value to arrive at identical file
// hashes.
const ChunkSize = 500

// SentinelHash is the PrevHash value of the first block ever added to a
// chain. A store reports an empty head as ("", false), not as this value.
const SentinelHash = "none"

// Block is the atomic, immutable unit of storage. Equality of two
// blocks (see Equal) deliberately ignores PrevHash: identity is the
// content a client submits, not the position it landed at in the
// chain.
type Block struct {
	FileHash string `json:"fileHash"`
	IndexAll uint32 `json:"indexAll"`
	Ordinal  uint32 `json:"ordinal"`
	Filename string `json:"filename"`
	Chunk    []byte `json:"chunk"`
	PrevHash string `json:"prevHash"`
}

// New builds a Block with PrevHash left unset; BlockChain.Add fills it
// in from the current head before hashing and storing it.
func New(fileHash string, indexAll, ordinal uint32, filename string, chunk []byte) Block {
	return Block{
		FileHash: fileHash,
		IndexAll: indexAll,
		Ordinal:  ordinal,
		Filename: filename,
		Chunk:    append([]byte(nil), chunk...),
	}
}

// WithPrevHash returns a copy of b anointed with the given previous
// block hash.
func (b Block) WithPrevHash(prevHash string) Block {
	b.PrevHash = prevHash
	return b
}

// Equal reports whether two blocks carry the same datum, ignoring
// PrevHash. Re-submitting the same file chunk twice produces blocks
// that are Equal even though the second one would land at a different
// point in the chain; BlockChain.Add uses this to detect duplicates.
func (b Block) Equal(o Block) bool {
	if b.FileHash != o.FileHash ||
		b.IndexAll != o.IndexAll ||
		b.Ordinal != o.Ordinal ||
		b.Filename != o.Filename ||
		len(b.Chunk) != len(o.Chunk) {
		return false
	}
	for i := range b.Chunk {
		if b.Chunk[i] != o.Chunk[i] {
			return false
		}
	}
	return true
}

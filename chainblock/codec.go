// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainblock

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// DecodeError wraps any failure to parse canonical block bytes.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "chainblock: decode error: " + e.Reason }

func decodeErrorf(format string, args ...interface{}) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// Encode produces the canonical, length-prefixed byte representation
// of a block, field order FileHash, IndexAll, Ordinal, Filename,
// Chunk, PrevHash. This is the same byte stream used both to compute
// a block's hash (HashBlock) and to persist the block to disk
// (store.FileStore), so that hashing and storage agree by
// construction. Integers are fixed-width big-endian; strings and byte
// strings carry a 4-byte big-endian length prefix. PrevHash uses
// SentinelHash ("none") rather than an empty string for the first
// block in the chain, so an empty string is never ambiguous with "no
// previous block".
func Encode(b Block) []byte {
	prev := b.PrevHash
	if prev == "" {
		prev = SentinelHash
	}

	buf := new(bytes.Buffer)
	writeString(buf, b.FileHash)
	writeUint32(buf, b.IndexAll)
	writeUint32(buf, b.Ordinal)
	writeString(buf, b.Filename)
	writeBytes(buf, b.Chunk)
	writeString(buf, prev)
	return buf.Bytes()
}

// Decode parses bytes produced by Encode back into a Block.
func Decode(data []byte) (Block, error) {
	r := bytes.NewReader(data)

	fileHash, err := readString(r)
	if err != nil {
		return Block{}, decodeErrorf("file_hash: %v", err)
	}
	indexAll, err := readUint32(r)
	if err != nil {
		return Block{}, decodeErrorf("index_all: %v", err)
	}
	ordinal, err := readUint32(r)
	if err != nil {
		return Block{}, decodeErrorf("ordinal: %v", err)
	}
	filename, err := readString(r)
	if err != nil {
		return Block{}, decodeErrorf("filename: %v", err)
	}
	chunk, err := readBytes(r)
	if err != nil {
		return Block{}, decodeErrorf("chunk: %v", err)
	}
	prevHash, err := readString(r)
	if err != nil {
		return Block{}, decodeErrorf("prev_hash: %v", err)
	}
	if r.Len() != 0 {
		return Block{}, decodeErrorf("trailing %d bytes after block", r.Len())
	}

	return Block{
		FileHash: fileHash,
		IndexAll: indexAll,
		Ordinal:  ordinal,
		Filename: filename,
		Chunk:    chunk,
		PrevHash: prevHash,
	}, nil
}

// CompressForStorage gzip-compresses the canonical encoding of a block
// for the on-disk storage path (store.FileStore).
func CompressForStorage(b Block) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(Encode(b)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressFromStorage reverses CompressForStorage and decodes the
// result.
func DecompressFromStorage(data []byte) (Block, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return Block{}, decodeErrorf("gzip: %v", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return Block{}, decodeErrorf("gzip read: %v", err)
	}
	return Decode(raw)
}

// HashBytes feeds a sequence of chunks into SHA-256 in order and
// returns the lowercase hex digest. Used both to compute a file hash
// from its ordered chunks and, via HashBlock, to compute a block hash
// from its canonical encoding.
func HashBytes(chunks ...[]byte) string {
	h := sha256.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashBlock returns the block hash: SHA-256 of the block's canonical
// encoding, including PrevHash. Because PrevHash is part of the
// encoding, a block's hash depends on the entire history up to it,
// which is what gives the chain its tamper-evidence.
func HashBlock(b Block) string {
	return HashBytes(Encode(b))
}

// ContentHash hashes the part of a block that Equal compares --
// FileHash, IndexAll, Ordinal, Filename, Chunk -- excluding PrevHash.
// Unlike HashBlock it is stable across re-submission of the same
// datum at a different chain position, which makes it suitable as a
// bloom-filter key for fast duplicate pre-checks.
func ContentHash(b Block) string {
	buf := Encode(b.WithPrevHash(SentinelHash))
	return HashBytes(buf)
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeBytes(buf, []byte(s))
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b)))
	buf.Write(b)
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Len()) {
		return nil, errors.New("length prefix exceeds remaining bytes")
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/luxfi/blockvault/chainblock"
)

// LogLevel tags a LogText payload, per spec §4.5's LOG_TEXT table.
type LogLevel byte

const (
	LevelInfo LogLevel = iota
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LogLevel(%d)", byte(l))
	}
}

// LogText is the server->client LOG_TEXT payload.
type LogText struct {
	Level   LogLevel
	Message string
}

// EncodeLogText serializes a LogText payload as a one-byte level
// followed by a length-prefixed message, matching the tag-length-value
// style chainblock.Encode uses for Block.
func EncodeLogText(p LogText) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(byte(p.Level))
	writeString(buf, p.Message)
	return buf.Bytes()
}

// DecodeLogText reverses EncodeLogText.
func DecodeLogText(data []byte) (LogText, error) {
	r := bytes.NewReader(data)
	levelByte, err := r.ReadByte()
	if err != nil {
		return LogText{}, fmt.Errorf("protocol: decode LogText level: %w", err)
	}
	message, err := readString(r)
	if err != nil {
		return LogText{}, fmt.Errorf("protocol: decode LogText message: %w", err)
	}
	if r.Len() != 0 {
		return LogText{}, fmt.Errorf("protocol: decode LogText: %d trailing bytes", r.Len())
	}
	return LogText{Level: LogLevel(levelByte), Message: message}, nil
}

// EncodeSendFile serializes the SEND_FILE payload, one Block, by
// delegating to chainblock's canonical encoding.
func EncodeSendFile(b chainblock.Block) []byte {
	return chainblock.Encode(b)
}

// DecodeSendFile reverses EncodeSendFile.
func DecodeSendFile(data []byte) (chainblock.Block, error) {
	return chainblock.Decode(data)
}

// HashCheck is the client->server HASH_CHECK payload.
type HashCheck struct {
	FileHash string
}

func EncodeHashCheck(p HashCheck) []byte {
	buf := new(bytes.Buffer)
	writeString(buf, p.FileHash)
	return buf.Bytes()
}

func DecodeHashCheck(data []byte) (HashCheck, error) {
	r := bytes.NewReader(data)
	fileHash, err := readString(r)
	if err != nil {
		return HashCheck{}, fmt.Errorf("protocol: decode HashCheck: %w", err)
	}
	return HashCheck{FileHash: fileHash}, nil
}

// GetFile is the client->server GET_FILE payload; same shape as
// HashCheck but kept as a distinct type since spec §4.5 names it
// separately and the two kinds are handled independently.
type GetFile struct {
	FileHash string
}

func EncodeGetFile(p GetFile) []byte {
	buf := new(bytes.Buffer)
	writeString(buf, p.FileHash)
	return buf.Bytes()
}

func DecodeGetFile(data []byte) (GetFile, error) {
	r := bytes.NewReader(data)
	fileHash, err := readString(r)
	if err != nil {
		return GetFile{}, fmt.Errorf("protocol: decode GetFile: %w", err)
	}
	return GetFile{FileHash: fileHash}, nil
}

// FileCheck is the client->server FILE_CHECK payload: a list of
// blocks the client already has, offered for a local consistency
// check without a round trip through GET_FILE.
type FileCheck struct {
	Blocks []chainblock.Block
}

func EncodeFileCheck(p FileCheck) []byte {
	buf := new(bytes.Buffer)
	writeUint32(buf, uint32(len(p.Blocks)))
	for _, b := range p.Blocks {
		writeBytes(buf, chainblock.Encode(b))
	}
	return buf.Bytes()
}

func DecodeFileCheck(data []byte) (FileCheck, error) {
	r := bytes.NewReader(data)
	count, err := readUint32(r)
	if err != nil {
		return FileCheck{}, fmt.Errorf("protocol: decode FileCheck count: %w", err)
	}
	blocks := make([]chainblock.Block, 0, count)
	for i := uint32(0); i < count; i++ {
		raw, err := readBytes(r)
		if err != nil {
			return FileCheck{}, fmt.Errorf("protocol: decode FileCheck block %d: %w", i, err)
		}
		block, err := chainblock.Decode(raw)
		if err != nil {
			return FileCheck{}, fmt.Errorf("protocol: decode FileCheck block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	if r.Len() != 0 {
		return FileCheck{}, fmt.Errorf("protocol: decode FileCheck: %d trailing bytes", r.Len())
	}
	return FileCheck{Blocks: blocks}, nil
}

// FullCheck is the client->server FULL_CHECK payload: always empty.
type FullCheck struct{}

func EncodeFullCheck(FullCheck) []byte {
	return nil
}

func DecodeFullCheck(data []byte) (FullCheck, error) {
	if len(data) != 0 {
		return FullCheck{}, fmt.Errorf("protocol: decode FullCheck: expected empty payload, got %d bytes", len(data))
	}
	return FullCheck{}, nil
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
		return nil, fmt.Errorf("length prefix %d exceeds remaining %d bytes", n, r.Len())
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

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire implements the length-prefixed framing described in
// spec §4.6/§6: a 2-byte big-endian length followed by that many bytes
// of payload, capped at 65,535 bytes per message.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize is the largest payload a single frame may carry; it is
// bound by the 2-byte length prefix.
const MaxFrameSize = 1<<16 - 1

// OverflowError is returned by WriteFrame when the payload exceeds
// MaxFrameSize. No bytes are written to w in that case.
type OverflowError struct {
	Size int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("wire: payload of %d bytes exceeds max frame size %d", e.Size, MaxFrameSize)
}

// WriteFrame writes the 2-byte big-endian length of payload followed
// by payload itself. It returns an *OverflowError, writing nothing,
// if payload is too large.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return &OverflowError{Size: len(payload)}
	}

	var lenPrefix [2]byte
	binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(payload)))

	if _, err := w.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("wire: write length prefix: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: write payload: %w", err)
	}
	return nil
}

// ReadFrame reads one frame: a 2-byte length prefix, then exactly that
// many bytes. A short read at either stage (including io.EOF once any
// bytes of the prefix have been consumed) is treated as fatal for the
// connection and returned as an error; io.EOF with zero bytes read is
// returned unwrapped so callers can distinguish a clean close from a
// truncated one.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenPrefix [2]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("wire: read length prefix: %w", err)
	}

	length := binary.BigEndian.Uint16(lenPrefix[:])
	if length == 0 {
		return nil, nil
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("wire: read payload: %w", err)
	}
	return payload, nil
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package protocol implements the wire-level Package described in
// spec §4.5: a one-byte header (direction bit + seven-bit kind)
// followed by an opaque, kind-specific payload.
package protocol

import "fmt"

// Direction distinguishes packages bound for the server from packages
// bound for the client. It is carried in the top bit of a Package's
// header byte.
type Direction bool

const (
	ToClient Direction = false
	ToServer Direction = true
)

func (d Direction) String() string {
	if d == ToServer {
		return "server-bound"
	}
	return "client-bound"
}

// Kind selects a Package's payload shape and, on the receiving side,
// which handler processes it. It occupies the lower seven bits of the
// header byte.
type Kind byte

const (
	KindLogText   Kind = 0x00
	KindSendFile  Kind = 0x01
	KindHashCheck Kind = 0x02
	KindFileCheck Kind = 0x03
	KindGetFile   Kind = 0x04
	KindFullCheck Kind = 0x05
)

func (k Kind) String() string {
	switch k {
	case KindLogText:
		return "LOG_TEXT"
	case KindSendFile:
		return "SEND_FILE"
	case KindHashCheck:
		return "HASH_CHECK"
	case KindFileCheck:
		return "FILE_CHECK"
	case KindGetFile:
		return "GET_FILE"
	case KindFullCheck:
		return "FULL_CHECK"
	default:
		return fmt.Sprintf("Kind(%#02x)", byte(k))
	}
}

func (k Kind) valid() bool {
	switch k {
	case KindLogText, KindSendFile, KindHashCheck, KindFileCheck, KindGetFile, KindFullCheck:
		return true
	default:
		return false
	}
}

const (
	directionBit byte = 0x80
	kindMask     byte = 0x7f
)

// Package is a header byte plus its opaque payload.
type Package struct {
	Direction Direction
	Kind      Kind
	Payload   []byte
}

// Header packs Direction and Kind into the single header byte spec
// §4.5/§6 describes.
func (p Package) Header() byte {
	h := byte(p.Kind) & kindMask
	if p.Direction == ToServer {
		h |= directionBit
	}
	return h
}

// Bytes returns the header byte followed by the payload, ready to be
// handed to wire.WriteFrame.
func (p Package) Bytes() []byte {
	out := make([]byte, 0, 1+len(p.Payload))
	out = append(out, p.Header())
	return append(out, p.Payload...)
}

// FromBytes splits a header byte from raw and validates the kind,
// without regard to which Direction the caller expects; Factory and
// Handler layer that check on top.
func FromBytes(raw []byte) (Package, error) {
	if len(raw) == 0 {
		return Package{}, &PackageCreationError{Reason: "empty package"}
	}

	header := raw[0]
	kind := Kind(header & kindMask)
	if !kind.valid() {
		return Package{}, &PackageCreationError{Reason: fmt.Sprintf("unknown kind %#02x", byte(kind))}
	}

	dir := ToClient
	if header&directionBit != 0 {
		dir = ToServer
	}
	var payload []byte
	if len(raw) > 1 {
		payload = raw[1:]
	}
	return Package{Direction: dir, Kind: kind, Payload: payload}, nil
}

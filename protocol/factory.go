// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import "fmt"

// Factory builds Packages for one fixed Direction. A server holds a
// Factory{ToClient} to build its replies; a client holds a
// Factory{ToServer} to build its requests.
type Factory struct {
	direction Direction
}

// NewFactory returns a Factory that stamps every Package it builds
// with direction.
func NewFactory(direction Direction) *Factory {
	return &Factory{direction: direction}
}

// FromBytes parses raw into a Package and rejects it if its direction
// doesn't match the factory's.
func (f *Factory) FromBytes(raw []byte) (Package, error) {
	pkg, err := FromBytes(raw)
	if err != nil {
		return Package{}, err
	}
	if pkg.Direction != f.direction {
		return Package{}, &PackageCreationError{
			Reason: fmt.Sprintf("direction mismatch: got %s, factory wants %s", pkg.Direction, f.direction),
		}
	}
	return pkg, nil
}

// FromObject wraps an already-serialized payload in a Package of the
// given kind, stamped with the factory's direction.
func (f *Factory) FromObject(kind Kind, payload []byte) (Package, error) {
	if !kind.valid() {
		return Package{}, &PackageCreationError{Reason: fmt.Sprintf("unknown kind %#02x", byte(kind))}
	}
	return Package{Direction: f.direction, Kind: kind, Payload: payload}, nil
}

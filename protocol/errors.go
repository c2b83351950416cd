// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

// PackageCreationError is returned when raw bytes cannot be parsed
// into a Package (empty input or an unrecognised kind), when a Factory
// is given bytes for the other direction, or when a Factory is asked
// to build a Package of a kind it doesn't recognise.
type PackageCreationError struct {
	Reason string
}

func (e *PackageCreationError) Error() string {
	return "protocol: package creation: " + e.Reason
}

// PackageHandleError is returned by Handler.Handle when a Package
// parses fine but cannot be dispatched: direction mismatch, or no
// handler registered for its kind.
type PackageHandleError struct {
	Reason string
}

func (e *PackageHandleError) Error() string {
	return "protocol: package handle: " + e.Reason
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// ErrDuplicateBlock is returned by Add when the submitted block
	// (per chainblock.Block.Equal) is already present anywhere in the
	// chain.
	ErrDuplicateBlock = errors.New("chain: duplicate block")

	// ErrSectionInconsistent is returned when a collection of blocks
	// claiming to belong to the same file disagree on FileHash,
	// IndexAll, or Filename, contains duplicate ordinals, or is empty
	// when one was required.
	ErrSectionInconsistent = errors.New("chain: file section inconsistent")
)

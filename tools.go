// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build tools

package blockvault

import (
	_ "github.com/fjl/gencodec" // chainblock/block_json.go's //go:generate
)

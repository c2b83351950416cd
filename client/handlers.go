// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/blockvault/protocol"
)

// handleLogText emits an incoming LOG_TEXT package via the logger
// collaborator, per spec §4.8.
func (c *Client) handleLogText(payload []byte) ([]protocol.Package, error) {
	logText, err := protocol.DecodeLogText(payload)
	if err != nil {
		return nil, err
	}

	switch logText.Level {
	case protocol.LevelInfo:
		c.log.Info(logText.Message)
	case protocol.LevelWarn:
		c.log.Warn(logText.Message)
	case protocol.LevelError:
		c.log.Error(logText.Message)
	default:
		c.log.Info(logText.Message, "level", logText.Level)
	}
	return nil, nil
}

// handleSendFile appends an incoming block's chunk to a local file
// named by block.Filename, per spec §4.8. Blocks of the same file
// arrive in ordinal order (the server sends GET_FILE replies that
// way), so the file is opened fresh on ordinal 0 and closed once the
// last ordinal has been written.
func (c *Client) handleSendFile(payload []byte) ([]protocol.Package, error) {
	block, err := protocol.DecodeSendFile(payload)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(c.outputDir, block.Filename)

	c.filesMu.Lock()
	f, open := c.files[block.Filename]
	if open && block.Ordinal == 0 {
		_ = f.Close()
		open = false
	}
	if !open {
		var err error
		f, err = os.Create(path)
		if err != nil {
			c.filesMu.Unlock()
			return nil, fmt.Errorf("client: create %s: %w", path, err)
		}
		c.files[block.Filename] = f
	}
	c.filesMu.Unlock()

	if _, err := f.Write(block.Chunk); err != nil {
		return nil, fmt.Errorf("client: write %s: %w", path, err)
	}

	if block.Ordinal+1 == block.IndexAll {
		c.filesMu.Lock()
		delete(c.files, block.Filename)
		c.filesMu.Unlock()

		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("client: close %s: %w", path, err)
		}
		c.log.Info("file received", "filename", block.Filename, "blocks", block.IndexAll)
	}
	return nil, nil
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/blockvault/chainblock"
	"github.com/luxfi/blockvault/protocol"
)

// AddFile loads path, splits it into chainblock.ChunkSize chunks, and
// sends one SEND_FILE request per block, per spec §4.8.
func (c *Client) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("client: read %s: %w", path, err)
	}

	fileHash := chainblock.HashBytes(data)
	filename := filepath.Base(path)
	blocks := splitIntoBlocks(fileHash, filename, data)

	for _, b := range blocks {
		pkg, err := c.factory.FromObject(protocol.KindSendFile, protocol.EncodeSendFile(b))
		if err != nil {
			return err
		}
		if err := c.send(pkg); err != nil {
			return err
		}
	}
	c.log.Info("sent file", "path", path, "fileHash", fileHash, "blocks", len(blocks))
	return nil
}

// CheckHash sends a HASH_CHECK request for an already-known file hash.
// The server's verdict arrives asynchronously as LOG_TEXT and is
// logged by handleLogText.
func (c *Client) CheckHash(fileHash string) error {
	pkg, err := c.factory.FromObject(protocol.KindHashCheck, protocol.EncodeHashCheck(protocol.HashCheck{FileHash: fileHash}))
	if err != nil {
		return err
	}
	return c.send(pkg)
}

// CheckFile hashes path locally, then sends a HASH_CHECK request for
// that hash, per spec §4.8.
func (c *Client) CheckFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("client: read %s: %w", path, err)
	}
	return c.CheckHash(chainblock.HashBytes(data))
}

// GetFile requests the blocks of fileHash; they arrive as SEND_FILE
// replies and are reassembled into a local file by handleSendFile, or
// a single LOG_TEXT WARN arrives if the file is unknown.
func (c *Client) GetFile(fileHash string) error {
	pkg, err := c.factory.FromObject(protocol.KindGetFile, protocol.EncodeGetFile(protocol.GetFile{FileHash: fileHash}))
	if err != nil {
		return err
	}
	return c.send(pkg)
}

// FullCheck requests a full chain consistency check; the verdict
// arrives as LOG_TEXT.
func (c *Client) FullCheck() error {
	pkg, err := c.factory.FromObject(protocol.KindFullCheck, protocol.EncodeFullCheck(protocol.FullCheck{}))
	if err != nil {
		return err
	}
	return c.send(pkg)
}

func splitIntoBlocks(fileHash, filename string, data []byte) []chainblock.Block {
	total := (len(data) + chainblock.ChunkSize - 1) / chainblock.ChunkSize
	if total == 0 {
		total = 1
	}
	blocks := make([]chainblock.Block, 0, total)
	for i := 0; i < total; i++ {
		start := i * chainblock.ChunkSize
		end := start + chainblock.ChunkSize
		if end > len(data) {
			end = len(data)
		}
		blocks = append(blocks, chainblock.New(fileHash, uint32(total), uint32(i), filename, data[start:end]))
	}
	return blocks
}

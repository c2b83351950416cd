// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/luxfi/blockvault/chainblock"
	"github.com/luxfi/log"
)

var _ ChainStore = (*FileStore)(nil)

// DefaultRoot is the directory FileStore uses when none is given,
// matching the persistent state layout named in the wire/storage
// contract: "./.blockchain" relative to the process's working
// directory.
const DefaultRoot = ".blockchain"

// blockCacheSize bounds the number of recently touched blocks kept
// resident to avoid a disk round trip on the common "write then
// immediately read back" path (e.g. a client's own GetFile right
// after AddFile finishes).
const blockCacheSize = 256

// FileStore is a ChainStore persisting blocks under a content-addressed
// two-level directory tree: a block whose hash is "ab<rest>" is stored
// at "<root>/ab/<rest>" as gzip-compressed canonical bytes. The head
// pointer lives at "<root>/head" as exactly 64 lowercase hex bytes,
// with no trailing newline.
type FileStore struct {
	root string
	log  log.Logger

	headMu sync.Mutex

	cache *lru.Cache[string, chainblock.Block]
}

// NewFileStore creates (idempotently) the storage root and returns a
// FileStore rooted there. root defaults to DefaultRoot if empty.
func NewFileStore(root string, logger log.Logger) (*FileStore, error) {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = log.Root()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("store: create root %q: %w", root, err)
	}

	cache, err := lru.New[string, chainblock.Block](blockCacheSize)
	if err != nil {
		return nil, fmt.Errorf("store: build block cache: %w", err)
	}

	return &FileStore{root: root, log: logger, cache: cache}, nil
}

func (s *FileStore) blockPath(hash string) (string, error) {
	if len(hash) < 3 {
		return "", fmt.Errorf("store: hash %q too short for two-level layout", hash)
	}
	return filepath.Join(s.root, hash[:2], hash[2:]), nil
}

func (s *FileStore) headPath() string {
	return filepath.Join(s.root, "head")
}

func (s *FileStore) GetHead() (string, bool, error) {
	s.headMu.Lock()
	defer s.headMu.Unlock()

	raw, err := os.ReadFile(s.headPath())
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: read head: %w", err)
	}
	if len(raw) != 64 {
		return "", false, fmt.Errorf("store: head file has %d bytes, want 64", len(raw))
	}
	return string(raw), true, nil
}

func (s *FileStore) SetHead(hash string) error {
	if len(hash) != 64 {
		return fmt.Errorf("store: refusing to write head of length %d, want 64", len(hash))
	}

	s.headMu.Lock()
	defer s.headMu.Unlock()

	tmp := s.headPath() + ".tmp"
	if err := os.WriteFile(tmp, []byte(hash), 0o644); err != nil {
		return fmt.Errorf("store: write head: %w", err)
	}
	if err := os.Rename(tmp, s.headPath()); err != nil {
		return fmt.Errorf("store: commit head: %w", err)
	}
	return nil
}

func (s *FileStore) Get(hash string) (chainblock.Block, bool, error) {
	if b, ok := s.cache.Get(hash); ok {
		return b, true, nil
	}

	path, err := s.blockPath(hash)
	if err != nil {
		return chainblock.Block{}, false, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return chainblock.Block{}, false, nil
	}
	if err != nil {
		return chainblock.Block{}, false, fmt.Errorf("store: read block %s: %w", hash, err)
	}

	block, err := chainblock.DecompressFromStorage(raw)
	if err != nil {
		return chainblock.Block{}, false, fmt.Errorf("store: decode block %s: %w", hash, err)
	}

	s.cache.Add(hash, block)
	return block, true, nil
}

func (s *FileStore) Add(block chainblock.Block) (string, error) {
	hash := chainblock.HashBlock(block)

	path, err := s.blockPath(hash)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("store: create shard dir for %s: %w", hash, err)
	}

	compressed, err := chainblock.CompressForStorage(block)
	if err != nil {
		return "", fmt.Errorf("store: compress block %s: %w", hash, err)
	}
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return "", fmt.Errorf("store: write block %s: %w", hash, err)
	}

	s.cache.Add(hash, block)
	s.log.Debug("stored block", "hash", hash, "bytes", len(compressed))
	return hash, nil
}

// Path returns the on-disk path a block with the given hash is or
// would be stored at. It exists for administrative tooling (fsck-style
// inspection, tamper tests) that needs to reach the raw bytes FileStore
// itself would read.
func (s *FileStore) Path(hash string) (string, error) {
	return s.blockPath(hash)
}

// Evict drops hash from the read cache, forcing the next Get to go to
// disk. Administrative tooling uses this after replacing a block's
// bytes out of band.
func (s *FileStore) Evict(hash string) {
	s.cache.Remove(hash)
}

func (s *FileStore) Size() (int, error) {
	count := 0
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("store: list root: %w", err)
	}
	for _, shard := range entries {
		if !shard.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.root, shard.Name()))
		if err != nil {
			return 0, fmt.Errorf("store: list shard %s: %w", shard.Name(), err)
		}
		count += len(files)
	}
	return count, nil
}

// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"

	"github.com/luxfi/blockvault/chain"
	"github.com/luxfi/blockvault/protocol"
)

// registerHandlers installs the four server-bound handlers spec §4.7
// names. Each handler's errors are either propagated to the caller
// (decode failures, which close the connection per spec §7) or turned
// into a single client-visible LOG_TEXT reply (duplicate/conflicting
// blocks, absent files), which keeps the connection open.
func (s *Server) registerHandlers() {
	s.handler.Register(protocol.KindSendFile, s.handleSendFile)
	s.handler.Register(protocol.KindHashCheck, s.handleHashCheck)
	s.handler.Register(protocol.KindGetFile, s.handleGetFile)
	s.handler.Register(protocol.KindFullCheck, s.handleFullCheck)
}

func (s *Server) logText(level protocol.LogLevel, message string) (protocol.Package, error) {
	return s.factory.FromObject(protocol.KindLogText, protocol.EncodeLogText(protocol.LogText{Level: level, Message: message}))
}

func (s *Server) handleSendFile(payload []byte) ([]protocol.Package, error) {
	block, err := protocol.DecodeSendFile(payload)
	if err != nil {
		return nil, err
	}

	blockHash, err := s.chain.Add(block)
	if err != nil {
		if errors.Is(err, chain.ErrDuplicateBlock) || errors.Is(err, chain.ErrSectionInconsistent) {
			s.log.Warn("rejected block", "fileHash", block.FileHash, "ordinal", block.Ordinal, "err", err)
			s.metrics.duplicatesRejected.Add(1)
			reply, replyErr := s.logText(protocol.LevelWarn, err.Error())
			if replyErr != nil {
				return nil, replyErr
			}
			return []protocol.Package{reply}, nil
		}
		return nil, fmt.Errorf("server: add block: %w", err)
	}

	s.metrics.blocksAdded.Add(1)
	s.log.Info("added block", "fileHash", block.FileHash, "ordinal", block.Ordinal, "blockHash", blockHash)
	return nil, nil
}

func (s *Server) handleHashCheck(payload []byte) ([]protocol.Package, error) {
	req, err := protocol.DecodeHashCheck(payload)
	if err != nil {
		return nil, err
	}

	present, count, err := s.chain.CheckHash(req.FileHash)
	if err != nil {
		return nil, fmt.Errorf("server: check hash: %w", err)
	}

	if !present {
		reply, err := s.logText(protocol.LevelWarn, fmt.Sprintf("%s not stored", req.FileHash))
		if err != nil {
			return nil, err
		}
		return []protocol.Package{reply}, nil
	}

	reply, err := s.logText(protocol.LevelInfo, fmt.Sprintf("%s stored as %d Block(s)", req.FileHash, count))
	if err != nil {
		return nil, err
	}
	return []protocol.Package{reply}, nil
}

func (s *Server) handleGetFile(payload []byte) ([]protocol.Package, error) {
	req, err := protocol.DecodeGetFile(payload)
	if err != nil {
		return nil, err
	}

	blocks, err := s.chain.Get(req.FileHash)
	if err != nil {
		return nil, fmt.Errorf("server: get file: %w", err)
	}

	if len(blocks) == 0 {
		reply, err := s.logText(protocol.LevelWarn, fmt.Sprintf("%s not stored", req.FileHash))
		if err != nil {
			return nil, err
		}
		return []protocol.Package{reply}, nil
	}

	replies := make([]protocol.Package, 0, len(blocks))
	for _, b := range blocks {
		pkg, err := s.factory.FromObject(protocol.KindSendFile, protocol.EncodeSendFile(b))
		if err != nil {
			return nil, err
		}
		replies = append(replies, pkg)
	}
	return replies, nil
}

func (s *Server) handleFullCheck(payload []byte) ([]protocol.Package, error) {
	if _, err := protocol.DecodeFullCheck(payload); err != nil {
		return nil, err
	}

	valid, count, err := s.chain.CheckChain()
	if err != nil {
		reply, replyErr := s.logText(protocol.LevelError, fmt.Sprintf("chain check failed: %s", err))
		if replyErr != nil {
			return nil, replyErr
		}
		return []protocol.Package{reply}, nil
	}

	if !valid {
		reply, err := s.logText(protocol.LevelWarn, "chain failed consistency check")
		if err != nil {
			return nil, err
		}
		return []protocol.Package{reply}, nil
	}

	reply, err := s.logText(protocol.LevelInfo, fmt.Sprintf("chain valid, %d file(s)", count))
	if err != nil {
		return nil, err
	}
	return []protocol.Package{reply}, nil
}

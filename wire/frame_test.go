// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte{0xab}, 4096),
		bytes.Repeat([]byte{0x01}, MaxFrameSize),
	}
	for _, payload := range cases {
		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, payload))

		got, err := ReadFrame(&buf)
		require.NoError(t, err)
		require.Equal(t, payload, got)
	}
}

func TestWriteFrameRejectsOversize(t *testing.T) {
	var buf bytes.Buffer
	payload := bytes.Repeat([]byte{0x02}, 100000)

	err := WriteFrame(&buf, payload)
	require.Error(t, err)
	var overflow *OverflowError
	require.ErrorAs(t, err, &overflow)
	require.Zero(t, buf.Len(), "no bytes should be written on overflow")
}

func TestReadFrameCleanEOF(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadFrameTruncatedPrefixIsFatal(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x00}))
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestReadFrameTruncatedPayloadIsFatal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))
	truncated := buf.Bytes()[:len(buf.Bytes())-2]

	_, err := ReadFrame(bytes.NewReader(truncated))
	require.Error(t, err)
}

func TestMultipleFramesSequentially(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("first")))
	require.NoError(t, WriteFrame(&buf, []byte("second")))

	first, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), first)

	second, err := ReadFrame(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), second)
}

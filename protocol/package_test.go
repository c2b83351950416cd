// Copyright (C) 2019-2026, blockvault Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	cases := []Package{
		{Direction: ToServer, Kind: KindSendFile, Payload: []byte("x")},
		{Direction: ToClient, Kind: KindLogText, Payload: []byte("hello")},
		{Direction: ToServer, Kind: KindFullCheck, Payload: nil},
	}
	for _, want := range cases {
		got, err := FromBytes(want.Bytes())
		require.NoError(t, err)
		require.Equal(t, want.Direction, got.Direction)
		require.Equal(t, want.Kind, got.Kind)
		require.Equal(t, want.Payload, got.Payload)
	}
}

func TestFromBytesRejectsUnknownKind(t *testing.T) {
	_, err := FromBytes([]byte{0x7f})
	require.Error(t, err)
	var creationErr *PackageCreationError
	require.ErrorAs(t, err, &creationErr)
}

func TestFromBytesRejectsEmpty(t *testing.T) {
	_, err := FromBytes(nil)
	require.Error(t, err)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "SEND_FILE", KindSendFile.String())
	require.Contains(t, Kind(0x7e).String(), "Kind(")
}

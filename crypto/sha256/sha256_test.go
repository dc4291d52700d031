// Copyright 2024 The go-ergvanity Authors
// This file is part of the go-ergvanity library.
//
// The go-ergvanity library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ergvanity library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ergvanity library. If not, see <http://www.gnu.org/licenses/>.

package sha256

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumSingleBlockVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// FIPS 180-4 examples.
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, tt := range tests {
		got := SumSingleBlock([]byte(tt.in))
		require.Equal(t, tt.want, hex.EncodeToString(got[:]), "input %q", tt.in)
	}
}

func TestSumSingleBlockAgainstStdlib(t *testing.T) {
	for n := 0; n <= MaxSingleBlock; n++ {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i*7 + n)
		}
		got := SumSingleBlock(msg)
		want := stdsha256.Sum256(msg)
		require.Equal(t, want, got, "length %d", n)
	}
}

func TestSumSingleBlockOversizeReturnsZero(t *testing.T) {
	msg := make([]byte, MaxSingleBlock+1)
	got := SumSingleBlock(msg)
	require.Equal(t, [32]byte{}, got)
}

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

package sha512

import (
	stdsha512 "crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// FIPS 180-4 examples.
		{"abc",
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"",
			"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
				"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	}
	for _, tt := range tests {
		got := Sum([]byte(tt.in))
		require.Equal(t, tt.want, hex.EncodeToString(got[:]), "input %q", tt.in)
	}
}

func TestSumAgainstStdlib(t *testing.T) {
	for _, n := range []int{0, 1, 63, 111, 112, 127, 128, 129, 200, 255, 256, 300, 1024} {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i * 13)
		}
		got := Sum(msg)
		want := stdsha512.Sum512(msg)
		require.Equal(t, want, got, "length %d", n)
	}
}

func TestSumSingleBlock(t *testing.T) {
	msg := []byte("abc")
	got := SumSingleBlock(msg)
	want := stdsha512.Sum512(msg)
	require.Equal(t, want, got)

	// Precondition violation yields zeros.
	long := make([]byte, MaxSingleBlock+1)
	require.Equal(t, [64]byte{}, SumSingleBlock(long))
}

func TestSumTwoBlocks(t *testing.T) {
	// 200 'a' bytes: one full block plus a 72-byte tail.
	full := make([]byte, 200)
	for i := range full {
		full[i] = 'a'
	}
	var block1 [128]byte
	copy(block1[:], full[:128])

	got := SumTwoBlocks(&block1, full[128:])
	want := stdsha512.Sum512(full)
	require.Equal(t, want, got)

	// Tail over 111 bytes violates the precondition.
	require.Equal(t, [64]byte{}, SumTwoBlocks(&block1, make([]byte, 112)))
}

func TestStreamingMatchesOneShot(t *testing.T) {
	msg := make([]byte, 777)
	for i := range msg {
		msg[i] = byte(i)
	}

	var d Digest
	d.Init()
	rest := msg
	for len(rest) >= BlockSize {
		var block [128]byte
		copy(block[:], rest[:BlockSize])
		d.Compress(&block)
		rest = rest[BlockSize:]
	}
	var out [64]byte
	d.Final(rest, &out)

	want := stdsha512.Sum512(msg)
	require.Equal(t, want, out)
}

func TestResumeMidstate(t *testing.T) {
	msg := make([]byte, 300)
	for i := range msg {
		msg[i] = byte(255 - i)
	}

	// Capture the state after the first block, then resume from it.
	var d Digest
	d.Init()
	var block [128]byte
	copy(block[:], msg[:128])
	d.Compress(&block)
	h, count := d.State()
	require.Equal(t, uint64(BlockSize), count)

	var r Digest
	r.Resume(&h, count)
	copy(block[:], msg[128:256])
	r.Compress(&block)
	var out [64]byte
	r.Final(msg[256:], &out)

	want := stdsha512.Sum512(msg)
	require.Equal(t, want, out)
}

func TestBlockWordsMatchesBytes(t *testing.T) {
	// Feeding the same block through Compress and through Block with
	// manually packed words must agree.
	var block [128]byte
	for i := range block {
		block[i] = byte(i * 3)
	}

	var d Digest
	d.Init()
	d.Compress(&block)
	hBytes, _ := d.State()

	h := initH
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = beUint64(block[i*8:])
	}
	Block(&h, &m)
	require.Equal(t, hBytes, h)
}

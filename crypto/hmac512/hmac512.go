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

// Package hmac512 implements HMAC-SHA512 (RFC 2104) and the one-block
// PBKDF2-HMAC-SHA512 derivation (RFC 8018) on top of cached key midstates.
//
// Constructing a MAC compresses (key XOR ipad) and (key XOR opad) exactly
// once; every subsequent MAC call resumes from those midstates. The 2047
// inner PBKDF2 iterations go through SumWords, which passes the 64-byte
// message as eight 64-bit words rather than an addressable buffer — the
// shape the search pipeline depends on for throughput.
package hmac512

import "github.com/ergvanity/go-ergvanity/crypto/sha512"

const (
	// MaxKeyLen is the longest accepted key. Longer keys must be pre-hashed
	// by the caller; the BIP39 layer owns that rule.
	MaxKeyLen = 128
	// MaxSaltLen bounds the PBKDF2 salt.
	MaxSaltLen = 256
)

// MAC is an HMAC-SHA512 instance keyed once and reusable for any number of
// messages. The zero value is unusable; see New.
type MAC struct {
	inner [8]uint64
	outer [8]uint64
	valid bool
}

// New derives the inner and outer midstates for the given key. Keys longer
// than the block size violate the precondition: the returned MAC yields
// zeroed digests. (Callers wanting RFC semantics for long keys pre-hash
// with sha512.Sum.)
func New(key []byte) MAC {
	var m MAC
	if len(key) > MaxKeyLen {
		return m
	}

	var ipad, opad [128]byte
	for i := range ipad {
		ipad[i] = 0x36
		opad[i] = 0x5c
	}
	for i, b := range key {
		ipad[i] ^= b
		opad[i] ^= b
	}

	var d sha512.Digest
	d.Init()
	d.Compress(&ipad)
	m.inner, _ = d.State()

	d.Init()
	d.Compress(&opad)
	m.outer, _ = d.State()

	m.valid = true
	return m
}

// Sum computes HMAC(key, data) for arbitrary-length data, resuming from the
// cached midstates.
func (m *MAC) Sum(data []byte) [64]byte {
	var out [64]byte
	if !m.valid {
		return out
	}

	var d sha512.Digest
	d.Resume(&m.inner, sha512.BlockSize)
	for len(data) >= sha512.BlockSize {
		var block [128]byte
		copy(block[:], data[:sha512.BlockSize])
		d.Compress(&block)
		data = data[sha512.BlockSize:]
	}
	var innerDigest [64]byte
	d.Final(data, &innerDigest)

	d.Resume(&m.outer, sha512.BlockSize)
	d.Final(innerDigest[:], &out)
	return out
}

// SumWords computes HMAC(key, msg) for an exactly 64-byte message held in
// eight 64-bit words. Both compressions run over padded blocks assembled
// directly in word registers: msg || 0x80 || zeros || 192-byte bit length,
// then innerDigest || 0x80 || zeros || same length.
func (m *MAC) SumWords(msg *[8]uint64) [8]uint64 {
	var zero [8]uint64
	if !m.valid {
		return zero
	}

	// (128 key block + 64 message bytes) * 8 bits.
	const bitLen = (sha512.BlockSize + 64) * 8

	var block [16]uint64
	copy(block[:8], msg[:])
	block[8] = 0x8000000000000000
	block[15] = bitLen

	h := m.inner
	sha512.Block(&h, &block)

	copy(block[:8], h[:])
	block[8] = 0x8000000000000000
	for i := 9; i < 15; i++ {
		block[i] = 0
	}
	block[15] = bitLen

	h2 := m.outer
	sha512.Block(&h2, &block)
	return h2
}

// Pbkdf2 derives one 64-byte PBKDF2-HMAC-SHA512 block:
// U1 = HMAC(password, salt || 0x00000001), Ui = HMAC(password, Ui-1), and
// the XOR of all Ui. Preconditions: password <= 128 bytes, salt <= 256
// bytes, iterations >= 1; violations yield a zeroed output. The iteration
// state never leaves word registers after U1.
func Pbkdf2(password, salt []byte, iterations int, out *[64]byte) bool {
	*out = [64]byte{}
	if len(password) > MaxKeyLen || len(salt) > MaxSaltLen || iterations < 1 {
		return false
	}

	mac := New(password)

	var saltBlock [MaxSaltLen + 4]byte
	copy(saltBlock[:], salt)
	saltBlock[len(salt)+3] = 0x01 // big-endian block index 1
	u1 := mac.Sum(saltBlock[:len(salt)+4])

	var u, acc [8]uint64
	for i := 0; i < 8; i++ {
		u[i] = uint64(u1[i*8])<<56 | uint64(u1[i*8+1])<<48 | uint64(u1[i*8+2])<<40 |
			uint64(u1[i*8+3])<<32 | uint64(u1[i*8+4])<<24 | uint64(u1[i*8+5])<<16 |
			uint64(u1[i*8+6])<<8 | uint64(u1[i*8+7])
	}
	acc = u

	for i := 1; i < iterations; i++ {
		u = mac.SumWords(&u)
		for j := 0; j < 8; j++ {
			acc[j] ^= u[j]
		}
	}

	for i, w := range acc {
		out[i*8] = byte(w >> 56)
		out[i*8+1] = byte(w >> 48)
		out[i*8+2] = byte(w >> 40)
		out[i*8+3] = byte(w >> 32)
		out[i*8+4] = byte(w >> 24)
		out[i*8+5] = byte(w >> 16)
		out[i*8+6] = byte(w >> 8)
		out[i*8+7] = byte(w)
	}
	return true
}

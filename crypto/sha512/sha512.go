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

// Package sha512 implements FIPS 180-4 SHA-512 as an explicit streaming
// state machine. Unlike the stdlib hash.Hash it exposes the compression
// function over raw message words, which is what the HMAC midstate cache and
// the PBKDF2 register path are built on.
package sha512

import "math/bits"

// BlockSize is the SHA-512 block size in bytes.
const BlockSize = 128

// Size is the digest size in bytes.
const Size = 64

// MaxSingleBlock is the longest message whose padding still fits one block.
const MaxSingleBlock = 111

var initH = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var roundK = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// Digest is an explicit SHA-512 state: 8 chaining words plus the running
// byte count. Callers that pre-compress blocks through Compress keep the
// count consistent automatically; callers resuming from a cached midstate
// must supply the count the midstate was captured at.
type Digest struct {
	h     [8]uint64
	count uint64
}

// Init resets the state to the SHA-512 initialisation vector.
func (d *Digest) Init() {
	d.h = initH
	d.count = 0
}

// Resume loads a previously captured midstate and its byte count. Used by
// the HMAC layer to skip recompressing the padded key block.
func (d *Digest) Resume(h *[8]uint64, count uint64) {
	d.h = *h
	d.count = count
}

// State returns the current chaining words and byte count.
func (d *Digest) State() ([8]uint64, uint64) {
	return d.h, d.count
}

// Compress folds one full 128-byte block into the state and advances the
// running count.
func (d *Digest) Compress(block *[128]byte) {
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = beUint64(block[i*8:])
	}
	Block(&d.h, &m)
	d.count += BlockSize
}

// Final consumes a tail of 0..127 bytes, applies the 128-bit length padding
// and writes the digest. The state is consumed; reuse requires Init.
func (d *Digest) Final(tail []byte, out *[64]byte) {
	total := d.count + uint64(len(tail))

	var block [128]byte
	copy(block[:], tail)
	block[len(tail)] = 0x80

	if len(tail) > MaxSingleBlock {
		// Padding spills into a second block.
		var m [16]uint64
		for i := 0; i < 16; i++ {
			m[i] = beUint64(block[i*8:])
		}
		Block(&d.h, &m)
		block = [128]byte{}
	}

	bitLen := total * 8
	block[120] = byte(bitLen >> 56)
	block[121] = byte(bitLen >> 48)
	block[122] = byte(bitLen >> 40)
	block[123] = byte(bitLen >> 32)
	block[124] = byte(bitLen >> 24)
	block[125] = byte(bitLen >> 16)
	block[126] = byte(bitLen >> 8)
	block[127] = byte(bitLen)

	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = beUint64(block[i*8:])
	}
	Block(&d.h, &m)

	for i, w := range d.h {
		putBeUint64(out[i*8:], w)
	}
}

// Sum computes SHA-512 over an arbitrary-length message.
func Sum(msg []byte) [64]byte {
	var d Digest
	d.Init()
	for len(msg) >= BlockSize {
		var block [128]byte
		copy(block[:], msg[:BlockSize])
		d.Compress(&block)
		msg = msg[BlockSize:]
	}
	var out [64]byte
	d.Final(msg, &out)
	return out
}

// SumSingleBlock computes SHA-512 of a message of at most 111 bytes. Longer
// inputs violate the single-block precondition and return a zeroed digest.
func SumSingleBlock(msg []byte) [64]byte {
	var out [64]byte
	if len(msg) > MaxSingleBlock {
		return out
	}
	var d Digest
	d.Init()
	d.Final(msg, &out)
	return out
}

// SumTwoBlocks feeds exactly one full block followed by a tail of at most
// 111 bytes. A longer tail returns a zeroed digest.
func SumTwoBlocks(block1 *[128]byte, tail []byte) [64]byte {
	var out [64]byte
	if len(tail) > MaxSingleBlock {
		return out
	}
	var d Digest
	d.Init()
	d.Compress(block1)
	d.Final(tail, &out)
	return out
}

// Block applies the SHA-512 compression function to 16 message words in
// place over the chaining state h. This is the register-shaped entry point:
// no byte buffers, the message lives entirely in m.
func Block(h *[8]uint64, m *[16]uint64) {
	var w [80]uint64
	copy(w[:16], m[:])
	for i := 16; i < 80; i++ {
		s0 := bits.RotateLeft64(w[i-15], -1) ^ bits.RotateLeft64(w[i-15], -8) ^ w[i-15]>>7
		s1 := bits.RotateLeft64(w[i-2], -19) ^ bits.RotateLeft64(w[i-2], -61) ^ w[i-2]>>6
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for i := 0; i < 80; i++ {
		s1 := bits.RotateLeft64(e, -14) ^ bits.RotateLeft64(e, -18) ^ bits.RotateLeft64(e, -41)
		ch := e&f ^ ^e&g
		t1 := hh + s1 + ch + roundK[i] + w[i]
		s0 := bits.RotateLeft64(a, -28) ^ bits.RotateLeft64(a, -34) ^ bits.RotateLeft64(a, -39)
		maj := a&b ^ a&c ^ b&c
		t2 := s0 + maj

		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

func putBeUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

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

// Package bip39 implements the mnemonic and seed side of BIP39 for 256-bit
// entropy: entropy to 24 word indices, the streamed PBKDF2 password
// assembly the search pipeline uses, and mnemonic validation.
package bip39

import (
	"strings"

	"github.com/ergvanity/go-ergvanity/crypto/hmac512"
	"github.com/ergvanity/go-ergvanity/crypto/sha256"
	"github.com/ergvanity/go-ergvanity/crypto/sha512"
)

// seedSalt is the PBKDF2 salt: the literal bytes "mnemonic", no passphrase.
var seedSalt = []byte("mnemonic")

// pbkdf2Rounds is fixed by BIP39.
const pbkdf2Rounds = 2048

// directPasswordMax is the longest mnemonic fed to PBKDF2 verbatim. Longer
// serialisations are pre-hashed with SHA-512 to exactly 64 bytes first; the
// two branches are exclusive.
const directPasswordMax = 128

// Indices expands 32-byte entropy into the 24 wordlist indices: the 264-bit
// string entropy || SHA-256(entropy)[0] read as big-endian 11-bit fields.
func Indices(entropy *[32]byte) [24]uint16 {
	checksum := sha256.SumSingleBlock(entropy[:])

	var buf [34]byte // entropy, checksum byte, one pad byte for the 3-byte window
	copy(buf[:32], entropy[:])
	buf[32] = checksum[0]

	var idx [24]uint16
	for i := 0; i < 24; i++ {
		bitStart := i * 11
		j := bitStart / 8
		pack := uint32(buf[j])<<16 | uint32(buf[j+1])<<8 | uint32(buf[j+2])
		idx[i] = uint16(pack >> uint(24-11-bitStart%8) & 0x7FF)
	}
	return idx
}

// Mnemonic returns the canonical serialised mnemonic: 24 space-separated
// lowercase words, no trailing space.
func Mnemonic(entropy *[32]byte) string {
	idx := Indices(entropy)
	var sb strings.Builder
	sb.Grow(24 * (WordWidth + 1))
	for i, w := range idx {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(words[w])
	}
	return sb.String()
}

// Seed derives the 64-byte BIP39 seed for 32-byte entropy:
// PBKDF2-HMAC-SHA512(password, "mnemonic", 2048) over the streamed
// mnemonic. While streaming the words it fills a direct password buffer and
// a SHA-512 fallback in parallel; if the serialised mnemonic exceeds 128
// bytes the password is its 64-byte SHA-512 digest instead. (24 English
// words never exceed 215 bytes, so the stream is at most two blocks.)
func Seed(entropy *[32]byte) [64]byte {
	idx := Indices(entropy)

	var direct [directPasswordMax]byte
	var chunk [sha512.BlockSize]byte
	chunkLen := 0
	total := 0

	var fallback sha512.Digest
	fallback.Init()

	feed := func(b byte) {
		if total < directPasswordMax {
			direct[total] = b
		}
		chunk[chunkLen] = b
		chunkLen++
		if chunkLen == sha512.BlockSize {
			fallback.Compress(&chunk)
			chunkLen = 0
		}
		total++
	}

	for i, w := range idx {
		if i > 0 {
			feed(' ')
		}
		n := int(wordLens[w])
		for j := 0; j < n; j++ {
			feed(words8[w][j])
		}
	}

	var password []byte
	if total <= directPasswordMax {
		password = direct[:total]
	} else {
		var digest [64]byte
		fallback.Final(chunk[:chunkLen], &digest)
		password = digest[:]
	}

	var seed [64]byte
	hmac512.Pbkdf2(password, seedSalt, pbkdf2Rounds, &seed)
	return seed
}

// SeedFromMnemonic derives the seed from an already serialised mnemonic,
// applying the same direct-vs-prehash password rule. Used by the host
// verifier.
func SeedFromMnemonic(mnemonic string) [64]byte {
	password := []byte(mnemonic)
	if len(password) > directPasswordMax {
		digest := sha512.Sum(password)
		password = digest[:]
	}
	var seed [64]byte
	hmac512.Pbkdf2(password, seedSalt, pbkdf2Rounds, &seed)
	return seed
}

// ValidateMnemonic checks word membership and the checksum of a mnemonic of
// 12, 15, 18, 21 or 24 words.
func ValidateMnemonic(mnemonic string) bool {
	parts := strings.Fields(mnemonic)
	var entBytes int
	switch len(parts) {
	case 12:
		entBytes = 16
	case 15:
		entBytes = 20
	case 18:
		entBytes = 24
	case 21:
		entBytes = 28
	case 24:
		entBytes = 32
	default:
		return false
	}

	indices := make([]int, len(parts))
	for i, w := range parts {
		idx := WordIndex(w)
		if idx < 0 {
			return false
		}
		indices[i] = idx
	}

	// Repack the 11-bit fields into entropy plus checksum bits.
	totalBits := len(parts) * 11
	bits := make([]byte, totalBits)
	for i, idx := range indices {
		for b := 0; b < 11; b++ {
			bits[i*11+b] = byte(idx >> uint(10-b) & 1)
		}
	}

	entropy := make([]byte, entBytes)
	for i := range entropy {
		var v byte
		for b := 0; b < 8; b++ {
			v = v<<1 | bits[i*8+b]
		}
		entropy[i] = v
	}

	hash := sha256.SumSingleBlock(entropy)
	checksumBits := entBytes * 8 / 32
	for i := 0; i < checksumBits; i++ {
		want := hash[i/8] >> uint(7-i%8) & 1
		if bits[entBytes*8+i] != want {
			return false
		}
	}
	return true
}

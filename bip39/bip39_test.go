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

package bip39

import (
	stdsha512 "crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestWordlistShape(t *testing.T) {
	require.Equal(t, "abandon", Word(0))
	require.Equal(t, "ability", Word(1))
	require.Equal(t, "about", Word(3))
	require.Equal(t, "art", Word(102))
	require.Equal(t, "zoo", Word(2047))

	for i := 0; i < WordCount; i++ {
		packed, n := PackedWord(i)
		require.Equal(t, Word(i), string(packed[:n]))
		require.LessOrEqual(t, int(n), WordWidth)
		for j := int(n); j < WordWidth; j++ {
			require.Zero(t, packed[j], "padding must be zero at word %d", i)
		}
		require.Equal(t, i, WordIndex(Word(i)))
	}
	require.Equal(t, -1, WordIndex("notaword"))
}

func TestMnemonicAllZeros(t *testing.T) {
	var entropy [32]byte
	mnemonic := Mnemonic(&entropy)

	parts := strings.Split(mnemonic, " ")
	require.Len(t, parts, 24)
	for _, w := range parts[:23] {
		require.Equal(t, "abandon", w)
	}
	require.Equal(t, "art", parts[23])
	require.False(t, strings.HasSuffix(mnemonic, " "))
}

func TestIndicesBitPacking(t *testing.T) {
	// 0xFF entropy sets every index to 2047 except the last, which carries
	// the checksum byte in its low 8 bits.
	var entropy [32]byte
	for i := range entropy {
		entropy[i] = 0xFF
	}
	idx := Indices(&entropy)
	for _, v := range idx[:23] {
		require.EqualValues(t, 2047, v)
	}
}

func TestSeedKnownVector(t *testing.T) {
	// The 24-word all-zeros mnemonic, seed cross-checked against
	// x/crypto pbkdf2 below; the mnemonic itself is the fixed point of the
	// BIP39 vector set.
	var entropy [32]byte
	seed := Seed(&entropy)

	mnemonic := Mnemonic(&entropy)
	want := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 2048, 64, stdsha512.New)
	require.Equal(t, want, seed[:])
}

func TestSeedMatchesReferenceForVariedEntropy(t *testing.T) {
	patterns := [][32]byte{}
	var e1, e2, e3 [32]byte
	for i := range e2 {
		e2[i] = 0x11
	}
	for i := range e3 {
		e3[i] = 0xaa
	}
	patterns = append(patterns, e1, e2, e3)

	for _, entropy := range patterns {
		entropy := entropy
		mnemonic := Mnemonic(&entropy)
		require.True(t, ValidateMnemonic(mnemonic))

		seed := Seed(&entropy)
		want := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 2048, 64, stdsha512.New)
		require.Equal(t, want, seed[:], "entropy %s", hex.EncodeToString(entropy[:]))

		require.Equal(t, seed, SeedFromMnemonic(mnemonic))
	}
}

func TestSeedDirectVsPrehashBranch(t *testing.T) {
	// A short mnemonic stays on the direct branch; a mnemonic built from long
	// words exceeds 128 bytes and must take the SHA-512 pre-hash branch.
	// Both must agree with the reference rule.
	long := strings.Repeat("abstract ", 23) + "abstract" // 24*8 + 23 = 215 bytes
	require.Greater(t, len(long), 128)
	seed := SeedFromMnemonic(long)

	digest := stdsha512.Sum512([]byte(long))
	want := pbkdf2.Key(digest[:], []byte("mnemonic"), 2048, 64, stdsha512.New)
	require.Equal(t, want, seed[:])

	short := "abandon abandon about"
	wantShort := pbkdf2.Key([]byte(short), []byte("mnemonic"), 2048, 64, stdsha512.New)
	gotShort := SeedFromMnemonic(short)
	require.Equal(t, wantShort, gotShort[:])
}

func TestValidateMnemonic(t *testing.T) {
	valid := "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon about"
	require.True(t, ValidateMnemonic(valid))

	// Last word altered: checksum fails.
	require.False(t, ValidateMnemonic(strings.Replace(valid, "about", "abandon", 1)))

	// Unknown word.
	require.False(t, ValidateMnemonic(strings.Replace(valid, "about", "notaword", 1)))

	// Wrong word count.
	require.False(t, ValidateMnemonic("abandon abandon abandon"))
}

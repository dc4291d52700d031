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

package search

import (
	"crypto/hmac"
	stdsha256 "crypto/sha256"
	stdsha512 "crypto/sha512"
	"math/big"
	"strings"
	"testing"

	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"
	mrtron "github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
	xblake2b "golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"

	"github.com/ergvanity/go-ergvanity/address"
	"github.com/ergvanity/go-ergvanity/bip32"
	"github.com/ergvanity/go-ergvanity/bip39"
)

var refN, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// refMnemonic rebuilds the mnemonic with big.Int bit arithmetic, sharing
// only the wordlist data with the production path.
func refMnemonic(entropy *[32]byte) string {
	checksum := stdsha256.Sum256(entropy[:])
	v := new(big.Int).SetBytes(entropy[:])
	v.Lsh(v, 8)
	v.Or(v, big.NewInt(int64(checksum[0])))

	words := make([]string, 24)
	mask := big.NewInt(0x7FF)
	for i := 23; i >= 0; i-- {
		idx := new(big.Int).And(v, mask).Int64()
		words[i] = bip39.Word(int(idx))
		v.Rsh(v, 11)
	}
	return strings.Join(words, " ")
}

// refAddress derives the mainnet address for entropy and index through
// stdlib HMAC, x/crypto PBKDF2 and Blake2b, dcrd secp256k1 and mr-tron
// Base58 — fully independent of the production pipeline.
func refAddress(t *testing.T, entropy *[32]byte, index uint32) (string, string) {
	t.Helper()
	mnemonic := refMnemonic(entropy)
	seed := pbkdf2.Key([]byte(mnemonic), []byte("mnemonic"), 2048, 64, stdsha512.New)

	mac := hmac.New(stdsha512.New, []byte("Bitcoin seed"))
	mac.Write(seed)
	sum := mac.Sum(nil)
	key := new(big.Int).SetBytes(sum[:32])
	chain := sum[32:]

	hardened := uint32(0x80000000)
	path := []uint32{hardened | 44, hardened | 429, hardened | 0, 0, index}
	for _, idx := range path {
		var data []byte
		if idx >= hardened {
			keyBytes := make([]byte, 32)
			key.FillBytes(keyBytes)
			data = append([]byte{0x00}, keyBytes...)
		} else {
			keyBytes := make([]byte, 32)
			key.FillBytes(keyBytes)
			priv := dcrec.PrivKeyFromBytes(keyBytes)
			data = priv.PubKey().SerializeCompressed()
		}
		data = append(data, byte(idx>>24), byte(idx>>16), byte(idx>>8), byte(idx))

		m := hmac.New(stdsha512.New, chain)
		m.Write(data)
		out := m.Sum(nil)
		il := new(big.Int).SetBytes(out[:32])
		require.True(t, il.Sign() != 0 && il.Cmp(refN) < 0)
		key.Add(key, il)
		key.Mod(key, refN)
		require.True(t, key.Sign() != 0)
		chain = out[32:]
	}

	keyBytes := make([]byte, 32)
	key.FillBytes(keyBytes)
	pub := dcrec.PrivKeyFromBytes(keyBytes).PubKey().SerializeCompressed()

	payload := append([]byte{0x01}, pub...)
	checksum := xblake2b.Sum256(payload)
	payload = append(payload, checksum[:4]...)
	return mrtron.Encode(payload), mnemonic
}

// pipelineAddress runs the production path for one entropy and index.
func pipelineAddress(t *testing.T, entropy *[32]byte, index uint32) string {
	t.Helper()
	seed := bip39.Seed(entropy)
	master, err := bip32.Master(seed[:])
	require.NoError(t, err)
	ext, err := master.ErgoExternal()
	require.NoError(t, err)
	child, err := ext.Child(index)
	require.NoError(t, err)
	pub, err := child.PublicKey()
	require.NoError(t, err)
	return address.EncodeP2PK(&pub, address.Mainnet)
}

func TestPipelineMatchesIndependentReference(t *testing.T) {
	var zero, ones, alt [32]byte
	for i := range ones {
		ones[i] = 0x11
	}
	for i := range alt {
		alt[i] = 0xaa
	}

	for _, entropy := range [][32]byte{zero, ones, alt} {
		entropy := entropy
		for _, index := range []uint32{0, 1, 7} {
			want, wantMnemonic := refAddress(t, &entropy, index)
			got := pipelineAddress(t, &entropy, index)
			require.Equal(t, want, got, "entropy %x index %d", entropy[:4], index)
			require.Equal(t, wantMnemonic, bip39.Mnemonic(&entropy))
		}
	}
}

func TestZeroEntropyKnownAddress(t *testing.T) {
	var entropy [32]byte
	mnemonic := bip39.Mnemonic(&entropy)
	require.True(t, strings.HasPrefix(mnemonic, "abandon abandon"))
	require.True(t, strings.HasSuffix(mnemonic, " art"))

	addr := pipelineAddress(t, &entropy, 0)
	require.Equal(t, "9ecbd6yTXYZKjV76A7Dya4cFQX86pWAg6v3arcEikePo6oKnUkH", addr)

	// The independent reference must agree byte for byte.
	want, _ := refAddress(t, &entropy, 0)
	require.Equal(t, want, addr)
}

func TestDeriveEntropyLayout(t *testing.T) {
	var salt [32]byte
	for i := range salt {
		salt[i] = byte(i)
	}

	// The 44-byte message is salt || LE64(counter) || LE32(gid).
	e1 := deriveEntropy(&salt, 0x0102030405060708, 0x0a0b0c0d)
	msg := make([]byte, 44)
	copy(msg, salt[:])
	copy(msg[32:], []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01})
	copy(msg[40:], []byte{0x0d, 0x0c, 0x0b, 0x0a})
	want := xblake2b.Sum256(msg)
	require.Equal(t, want, e1)

	// Distinct counters and gids give distinct entropy.
	e2 := deriveEntropy(&salt, 0x0102030405060708, 0x0a0b0c0e)
	e3 := deriveEntropy(&salt, 0x0102030405060709, 0x0a0b0c0d)
	require.NotEqual(t, e1, e2)
	require.NotEqual(t, e1, e3)
}

// workItemAddress computes the address a work item sees for gid at index j.
func workItemAddress(t *testing.T, salt *[32]byte, counterStart uint64, gid, j uint32) string {
	t.Helper()
	entropy := deriveEntropy(salt, counterStart+uint64(gid), gid)
	return pipelineAddress(t, &entropy, j)
}

func TestWorkItemFirstMatchWinsPatternOrder(t *testing.T) {
	var salt [32]byte
	salt[5] = 0x42
	addr := workItemAddress(t, &salt, 0, 3, 0)

	// Both patterns match at address index 0; the earlier pattern in list
	// order must be recorded.
	ps, err := NewPatternSet([]string{addr[:4], "9"}, false)
	require.NoError(t, err)

	var buf hitBuffer
	args := kernelArgs{
		salt:       salt,
		patterns:   ps,
		numIndices: 1,
		maxHits:    MaxHits,
		hits:       &buf,
	}
	runWorkItem(&args, 3)

	require.EqualValues(t, 1, buf.raw())
	hit := buf.hits[0]
	require.EqualValues(t, 3, hit.WorkItemID)
	require.EqualValues(t, 0, hit.AddressIndex)
	require.EqualValues(t, 0, hit.PatternIndex)

	entropy := deriveEntropy(&salt, 3, 3)
	require.Equal(t, entropy, hit.Entropy())
	require.Equal(t, [5]uint32{}, hit.Reserved)
}

func TestWorkItemEarlierIndexWins(t *testing.T) {
	var salt [32]byte
	salt[9] = 0x77

	// Pattern 0 targets the address at index 2, pattern 1 ("9") matches
	// everything; the hit must still be (index 0, pattern 1) because the
	// lower address index is scanned first.
	addr2 := workItemAddress(t, &salt, 0, 5, 2)
	ps, err := NewPatternSet([]string{addr2[:6], "9"}, false)
	require.NoError(t, err)

	var buf hitBuffer
	args := kernelArgs{
		salt:       salt,
		patterns:   ps,
		numIndices: 3,
		maxHits:    MaxHits,
		hits:       &buf,
	}
	runWorkItem(&args, 5)

	require.EqualValues(t, 1, buf.raw(), "a work item emits at most one hit")
	hit := buf.hits[0]
	require.EqualValues(t, 0, hit.AddressIndex)
	require.EqualValues(t, 1, hit.PatternIndex)
}

func TestWorkItemNoMatchEmitsNothing(t *testing.T) {
	var salt [32]byte
	ps, err := NewPatternSet([]string{"9ezzzzzzzz"}, false)
	require.NoError(t, err)

	var buf hitBuffer
	args := kernelArgs{
		salt:       salt,
		patterns:   ps,
		numIndices: 1,
		maxHits:    MaxHits,
		hits:       &buf,
	}
	runWorkItem(&args, 0)
	require.Zero(t, buf.raw())
}

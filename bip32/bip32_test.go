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

package bip32

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ergvanity/go-ergvanity/bip39"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestMasterVector1(t *testing.T) {
	// BIP32 test vector 1.
	master, err := Master(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	key := master.KeyBytes()
	chain := master.ChainCode()
	require.Equal(t,
		"e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35",
		hex.EncodeToString(key[:]))
	require.Equal(t,
		"873dff81c02f525623fd1fe5167eac3a55a049de3d314bb42ee227ffed37d508",
		hex.EncodeToString(chain[:]))
}

func TestHardenedChildVector1(t *testing.T) {
	// Vector 1, m/0'.
	master, err := Master(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	child, err := master.Child(Hardened | 0)
	require.NoError(t, err)

	key := child.KeyBytes()
	chain := child.ChainCode()
	require.Equal(t,
		"edb2e14f9ee77d26dd93b4ecede8d16ed408ce149b6cd80b0715a2d911a0afea",
		hex.EncodeToString(key[:]))
	require.Equal(t,
		"47fdacbd0f1097043b78c63c20c34ef4ed9a111d980047ad16282c7ae6236141",
		hex.EncodeToString(chain[:]))
}

func TestNormalChildVector1(t *testing.T) {
	// Vector 1, m/0'/1.
	master, err := Master(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	child, err := master.Derive([]uint32{Hardened | 0, 1})
	require.NoError(t, err)

	key := child.KeyBytes()
	chain := child.ChainCode()
	require.Equal(t,
		"3c6cb8d0f6a264c91ea8b5030fadaa8e538b020f0a387421a12de9319dc93368",
		hex.EncodeToString(key[:]))
	require.Equal(t,
		"2a7857631386ba23dacac34180dd1983734e444fdbf774041578e9b6adb37c19",
		hex.EncodeToString(chain[:]))
}

func TestDeepPathVector1(t *testing.T) {
	// Vector 1, m/0'/1/2'.
	master, err := Master(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	require.NoError(t, err)

	derived, err := master.Derive([]uint32{Hardened | 0, 1, Hardened | 2})
	require.NoError(t, err)

	key := derived.KeyBytes()
	require.Equal(t,
		"cbce0d719ecf7431d88e6a89fa1483e02e35092af60c042b1df2ff59fa424dca",
		hex.EncodeToString(key[:]))
}

func TestSeedLengthRejected(t *testing.T) {
	_, err := Master(make([]byte, 8))
	require.ErrorIs(t, err, ErrSeedLength)
	_, err = Master(make([]byte, 65))
	require.ErrorIs(t, err, ErrSeedLength)
}

func TestErgoExternalChain(t *testing.T) {
	var entropy [32]byte
	seed := bip39.Seed(&entropy)

	master, err := Master(seed[:])
	require.NoError(t, err)

	ext, err := master.ErgoExternal()
	require.NoError(t, err)

	// Address keys iterate cheaply from the external node, and the chain
	// is deterministic.
	k0a, err := ext.Child(0)
	require.NoError(t, err)
	k0b, err := master.Derive(append(append([]uint32{}, ErgoExternalPath...), 0))
	require.NoError(t, err)
	require.Equal(t, k0a.KeyBytes(), k0b.KeyBytes())

	k1, err := ext.Child(1)
	require.NoError(t, err)
	require.NotEqual(t, k0a.KeyBytes(), k1.KeyBytes())

	_, err = ext.PublicKey()
	require.NoError(t, err)
}

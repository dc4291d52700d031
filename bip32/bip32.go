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

// Package bip32 implements hierarchical deterministic key derivation
// (BIP32) over the in-tree secp256k1 arithmetic, including the fixed Ergo
// external chain of BIP44.
package bip32

import (
	"github.com/pkg/errors"

	"github.com/ergvanity/go-ergvanity/crypto/hmac512"
	"github.com/ergvanity/go-ergvanity/crypto/secp256k1"
)

// Hardened is the high-bit flag marking hardened child indices.
const Hardened uint32 = 0x80000000

// BIP44 constants for the Ergo external chain m/44'/429'/0'/0.
const (
	Purpose      = 44
	ErgoCoinType = 429
)

// ErgoExternalPath is the fixed derivation prefix; address keys are normal
// children of this node.
var ErgoExternalPath = []uint32{
	Hardened | Purpose,
	Hardened | ErgoCoinType,
	Hardened | 0,
	0,
}

// Derivation rejections. All are probabilistically negligible (~2^-127);
// the search pipeline skips the affected index and moves on.
var (
	ErrInvalidChildKey = errors.New("bip32: IL is zero or not below the curve order")
	ErrZeroKey         = errors.New("bip32: derived key is zero")
	ErrSeedLength      = errors.New("bip32: seed must be 16..64 bytes")
)

// ExtendedKey is a BIP32 derivation node: a private key scalar and a chain
// code.
type ExtendedKey struct {
	key   secp256k1.Scalar
	chain [32]byte
}

// masterHMACKey is fixed by BIP32.
var masterHMACKey = []byte("Bitcoin seed")

// Master derives the root node from a BIP39 seed:
// HMAC-SHA512("Bitcoin seed", seed) split into IL (key) and IR (chain
// code). IL of zero or >= n is rejected.
func Master(seed []byte) (*ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, ErrSeedLength
	}
	mac := hmac512.New(masterHMACKey)
	sum := mac.Sum(seed)
	return nodeFromHMAC(&sum)
}

func nodeFromHMAC(sum *[64]byte) (*ExtendedKey, error) {
	var il [32]byte
	copy(il[:], sum[:32])

	var k ExtendedKey
	if !k.key.SetBytes(&il) {
		return nil, ErrInvalidChildKey
	}
	if k.key.IsZero() {
		return nil, ErrZeroKey
	}
	copy(k.chain[:], sum[32:])
	return &k, nil
}

// Child derives the child node at index. Hardened indices (high bit set)
// MAC over 0x00 || parent_key || index; normal indices MAC over the
// parent's compressed public key || index. The child key is
// (IL + parent) mod n; IL >= n, IL = 0 and a zero result are rejected.
func (k *ExtendedKey) Child(index uint32) (*ExtendedKey, error) {
	var data [37]byte
	if index >= Hardened {
		keyBytes := k.key.Bytes()
		copy(data[1:33], keyBytes[:])
	} else {
		var pub [secp256k1.PubKeyLen]byte
		if !secp256k1.CompressedPubKey(&k.key, &pub) {
			return nil, ErrZeroKey
		}
		copy(data[:33], pub[:])
	}
	data[33] = byte(index >> 24)
	data[34] = byte(index >> 16)
	data[35] = byte(index >> 8)
	data[36] = byte(index)

	mac := hmac512.New(k.chain[:])
	sum := mac.Sum(data[:])

	var il [32]byte
	copy(il[:], sum[:32])
	var child ExtendedKey
	if !child.key.SetBytes(&il) {
		return nil, ErrInvalidChildKey
	}
	if child.key.IsZero() {
		return nil, ErrInvalidChildKey
	}
	child.key.Add(&k.key)
	if child.key.IsZero() {
		return nil, ErrZeroKey
	}
	copy(child.chain[:], sum[32:])
	return &child, nil
}

// Derive walks a path of child indices from k.
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	node := k
	for _, index := range path {
		next, err := node.Child(index)
		if err != nil {
			return nil, errors.Wrapf(err, "at index %#x", index)
		}
		node = next
	}
	return node, nil
}

// ErgoExternal derives the external chain node m/44'/429'/0'/0. Address
// keys for indices 0..N are normal children of the returned node, so the
// three hardened steps are paid once per seed.
func (k *ExtendedKey) ErgoExternal() (*ExtendedKey, error) {
	return k.Derive(ErgoExternalPath)
}

// Key returns the private key scalar.
func (k *ExtendedKey) Key() *secp256k1.Scalar {
	return &k.key
}

// KeyBytes returns the private key as 32 big-endian bytes.
func (k *ExtendedKey) KeyBytes() [32]byte {
	return k.key.Bytes()
}

// ChainCode returns the 32-byte chain code.
func (k *ExtendedKey) ChainCode() [32]byte {
	return k.chain
}

// PublicKey returns the compressed public key of the node.
func (k *ExtendedKey) PublicKey() ([secp256k1.PubKeyLen]byte, error) {
	var pub [secp256k1.PubKeyLen]byte
	if !secp256k1.CompressedPubKey(&k.key, &pub) {
		return pub, ErrZeroKey
	}
	return pub, nil
}

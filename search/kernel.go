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
	"github.com/ergvanity/go-ergvanity/address"
	"github.com/ergvanity/go-ergvanity/bip32"
	"github.com/ergvanity/go-ergvanity/bip39"
	"github.com/ergvanity/go-ergvanity/crypto/base58"
	"github.com/ergvanity/go-ergvanity/crypto/blake2b"
)

// kernelArgs is the uniform argument block of one launch, shared read-only
// by every work item of the batch. The hit buffer and its counter are the
// only shared mutable state.
type kernelArgs struct {
	salt         [32]byte
	counterStart uint64
	patterns     *PatternSet
	numIndices   uint32
	maxHits      uint32
	hits         *hitBuffer
}

// deriveEntropy computes the work item's entropy:
// Blake2b-256(salt || LE64(counter) || LE32(gid)), a 44-byte message.
func deriveEntropy(salt *[32]byte, counter uint64, gid uint32) [32]byte {
	var msg [44]byte
	copy(msg[:32], salt[:])
	for i := 0; i < 8; i++ {
		msg[32+i] = byte(counter >> uint(8*i))
	}
	for i := 0; i < 4; i++ {
		msg[40+i] = byte(gid >> uint(8*i))
	}
	return blake2b.Sum256(msg[:])
}

// runWorkItem executes one full sweep: entropy, mnemonic seed, external
// chain, then per address index the child key, public key, payload and
// pattern scan. The item returns after its first successful match, so it
// emits at most one hit, with deterministic (address index ascending,
// pattern list order) priority. Derivation rejections silently skip the
// affected index.
func runWorkItem(args *kernelArgs, gid uint32) {
	counter := args.counterStart + uint64(gid)
	entropy := deriveEntropy(&args.salt, counter, gid)
	seed := bip39.Seed(&entropy)

	master, err := bip32.Master(seed[:])
	if err != nil {
		return
	}
	ext, err := master.ErgoExternal()
	if err != nil {
		return
	}

	ignoreCase := args.patterns.IgnoreCase()
	for j := uint32(0); j < args.numIndices; j++ {
		child, err := ext.Child(j)
		if err != nil {
			continue
		}
		pub, err := child.PublicKey()
		if err != nil {
			continue
		}

		var payload [address.PayloadLen]byte
		address.P2PKPayload(&pub, address.Mainnet, &payload)

		for p := 0; p < args.patterns.Len(); p++ {
			if !base58.MatchPrefix(&payload, args.patterns.pattern(p), ignoreCase) {
				continue
			}
			idx := args.hits.claim()
			if uint32(idx) < args.maxHits {
				slot := &args.hits.hits[idx]
				slot.EntropyWords = entropyWords(&entropy)
				slot.WorkItemID = gid
				slot.AddressIndex = j
				slot.PatternIndex = uint32(p)
				slot.Reserved = [5]uint32{}
			}
			return
		}
	}
}

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

import "sync/atomic"

// MaxHits is the shared hit buffer capacity per batch. Counter values
// beyond it mean dropped hits; the controller reports them and continues.
const MaxHits = 1024

// Hit is the 64-byte record a work item emits on its first match: entropy
// as 8 little-endian 32-bit words, the work item id, the address index, the
// pattern index and zeroed reserved words.
type Hit struct {
	EntropyWords [8]uint32
	WorkItemID   uint32
	AddressIndex uint32
	PatternIndex uint32
	Reserved     [5]uint32
}

// Entropy reassembles the 32 entropy bytes from the little-endian words.
func (h *Hit) Entropy() [32]byte {
	var out [32]byte
	for i, w := range h.EntropyWords {
		out[i*4] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}

// entropyWords packs entropy bytes into the hit record's word layout.
func entropyWords(e *[32]byte) [8]uint32 {
	var out [8]uint32
	for i := range out {
		out[i] = uint32(e[i*4]) | uint32(e[i*4+1])<<8 |
			uint32(e[i*4+2])<<16 | uint32(e[i*4+3])<<24
	}
	return out
}

// hitBuffer is the per-launch shared hit area: an atomically incremented
// counter and MaxHits slots. A slot is owned by exactly the work item whose
// fetch-and-add claimed its index, so slot writes after the claim are
// race-free. The raw counter keeps counting past capacity so overflow is
// detectable rather than silently swallowed.
type hitBuffer struct {
	count int32
	hits  [MaxHits]Hit
}

func (b *hitBuffer) reset() {
	atomic.StoreInt32(&b.count, 0)
}

// claim allocates the next slot index; indices at or beyond the launch's
// max_hits argument mean the record is dropped.
func (b *hitBuffer) claim() int32 {
	return atomic.AddInt32(&b.count, 1) - 1
}

// raw returns the total number of claims, including dropped ones.
func (b *hitBuffer) raw() int32 {
	return atomic.LoadInt32(&b.count)
}

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

// Package secp256k1 implements the secp256k1 elliptic curve from scratch on
// fixed-width 8x32-bit limb arithmetic. Every operation works on fixed-size
// private buffers so that the same shape runs unchanged inside a search
// work item.
package secp256k1

// Field prime p = 2^256 - 2^32 - 977, as 8 little-endian 32-bit limbs
// (limb 0 is least significant).
var fieldP = [8]uint32{
	0xFFFFFC2F, 0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF,
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
}

// p - 2, the Fermat inversion exponent.
var fieldPMinus2 = [8]uint32{
	0xFFFFFC2D, 0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF,
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
}

// Reduction constant: 2^256 = 2^32 + 977 (mod p).
const fieldFold = 977

// Overflow flag bits reported by the checked arithmetic variants. The
// unchecked operations never overflow on normalised inputs; the flags exist
// for self-tests only.
const (
	FlagMulOverflow uint32 = 1 << iota
	FlagReduceOverflow
)

// FieldElement is an element of GF(p) stored as 8 little-endian 32-bit
// limbs. Normalised representatives lie in [0, p); every exported operation
// returns a normalised result.
type FieldElement struct {
	n [8]uint32
}

// SetLimbs loads the element from raw little-endian limbs without reduction.
func (f *FieldElement) SetLimbs(limbs *[8]uint32) *FieldElement {
	f.n = *limbs
	return f
}

// SetInt loads a small integer.
func (f *FieldElement) SetInt(v uint32) *FieldElement {
	f.n = [8]uint32{v}
	return f
}

// Set copies a into f.
func (f *FieldElement) Set(a *FieldElement) *FieldElement {
	f.n = a.n
	return f
}

// SetBytes interprets b as a 256-bit big-endian integer. It reports whether
// the value was already a normalised representative (< p); values >= p are
// loaded as-is and the caller must reject them.
func (f *FieldElement) SetBytes(b *[32]byte) bool {
	for i := 0; i < 8; i++ {
		j := 32 - 4*(i+1)
		f.n[i] = uint32(b[j])<<24 | uint32(b[j+1])<<16 | uint32(b[j+2])<<8 | uint32(b[j+3])
	}
	return !f.gteP()
}

// PutBytes writes the element as 32 big-endian bytes.
func (f *FieldElement) PutBytes(b *[32]byte) {
	for i := 0; i < 8; i++ {
		j := 32 - 4*(i+1)
		b[j] = byte(f.n[i] >> 24)
		b[j+1] = byte(f.n[i] >> 16)
		b[j+2] = byte(f.n[i] >> 8)
		b[j+3] = byte(f.n[i])
	}
}

// Bytes returns the element as 32 big-endian bytes.
func (f *FieldElement) Bytes() [32]byte {
	var b [32]byte
	f.PutBytes(&b)
	return b
}

// IsZero reports whether f == 0.
func (f *FieldElement) IsZero() bool {
	return f.n[0]|f.n[1]|f.n[2]|f.n[3]|f.n[4]|f.n[5]|f.n[6]|f.n[7] == 0
}

// IsOdd reports whether the least significant bit is set.
func (f *FieldElement) IsOdd() bool {
	return f.n[0]&1 == 1
}

// Equals reports whether f and a hold the same normalised value.
func (f *FieldElement) Equals(a *FieldElement) bool {
	return f.n == a.n
}

// gteP reports whether f >= p.
func (f *FieldElement) gteP() bool {
	for i := 7; i >= 0; i-- {
		if f.n[i] > fieldP[i] {
			return true
		}
		if f.n[i] < fieldP[i] {
			return false
		}
	}
	return true
}

// subP subtracts p in place. The caller guarantees f >= p.
func (f *FieldElement) subP() {
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(f.n[i]) - uint64(fieldP[i]) - borrow
		f.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
}

// addP adds p in place, ignoring the final carry.
func (f *FieldElement) addP() {
	var carry uint64
	for i := 0; i < 8; i++ {
		carry += uint64(f.n[i]) + uint64(fieldP[i])
		f.n[i] = uint32(carry)
		carry >>= 32
	}
}

// Add sets f = f + a (mod p).
func (f *FieldElement) Add(a *FieldElement) *FieldElement {
	var carry uint64
	for i := 0; i < 8; i++ {
		carry += uint64(f.n[i]) + uint64(a.n[i])
		f.n[i] = uint32(carry)
		carry >>= 32
	}
	// A carry out of limb 7 folds back as 2^256 = 2^32 + 977 (mod p). The
	// fold cannot carry out again: the pre-fold value is < 2p - 2^256.
	if carry != 0 {
		c := uint64(f.n[0]) + fieldFold
		f.n[0] = uint32(c)
		c >>= 32
		c += uint64(f.n[1]) + 1
		f.n[1] = uint32(c)
		c >>= 32
		for i := 2; i < 8 && c != 0; i++ {
			c += uint64(f.n[i])
			f.n[i] = uint32(c)
			c >>= 32
		}
	}
	if f.gteP() {
		f.subP()
	}
	if f.gteP() {
		f.subP()
	}
	return f
}

// Sub sets f = f - a (mod p).
func (f *FieldElement) Sub(a *FieldElement) *FieldElement {
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(f.n[i]) - uint64(a.n[i]) - borrow
		f.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
	if borrow != 0 {
		f.addP()
	}
	return f
}

// Negate sets f = -f (mod p). Zero stays zero.
func (f *FieldElement) Negate() *FieldElement {
	if f.IsZero() {
		return f
	}
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(fieldP[i]) - uint64(f.n[i]) - borrow
		f.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
	return f
}

// Mul sets f = f * a (mod p) using 8x8 schoolbook multiplication into 16
// limbs followed by the 2^256 = 2^32 + 977 folding reduction.
func (f *FieldElement) Mul(a *FieldElement) *FieldElement {
	var wide [16]uint32
	mulWide(&f.n, &a.n, &wide)
	fieldReduce(&wide, &f.n)
	return f
}

// MulCheck is the checked variant of Mul for self-tests: it accumulates
// overflow flag bits into flags instead of assuming well-formed inputs.
func (f *FieldElement) MulCheck(a *FieldElement, flags *uint32) *FieldElement {
	var wide [16]uint32
	mulWide(&f.n, &a.n, &wide)
	// mulWide accumulates row by row and every step is bounded by
	// (2^32-1)^2 + 2*(2^32-1) < 2^64, so the product itself cannot overflow;
	// the flag is set only if the stabilisation passes fail to clear the
	// overflow window.
	if !fieldReduce(&wide, &f.n) {
		*flags |= FlagReduceOverflow
	}
	return f
}

// Square sets f = f^2 (mod p).
func (f *FieldElement) Square() *FieldElement {
	return f.Mul(f)
}

// Inverse sets f = f^-1 (mod p) via Fermat's little theorem, scanning the
// exponent p-2 left to right. Zero inverts to zero by convention; callers
// must not rely on that for nonzero preconditions.
func (f *FieldElement) Inverse() *FieldElement {
	var result FieldElement
	result.SetInt(1)
	base := *f
	for i := 7; i >= 0; i-- {
		for bit := 31; bit >= 0; bit-- {
			result.Square()
			if fieldPMinus2[i]>>uint(bit)&1 == 1 {
				result.Mul(&base)
			}
		}
	}
	f.n = result.n
	return f
}

// mulWide computes the full 512-bit product a*b into 16 little-endian limbs.
// Every partial step fits a 64-bit accumulator: (2^32-1)^2 + 2*(2^32-1) < 2^64.
func mulWide(a, b *[8]uint32, out *[16]uint32) {
	*out = [16]uint32{}
	for i := 0; i < 8; i++ {
		var carry uint64
		for j := 0; j < 8; j++ {
			v := uint64(a[i])*uint64(b[j]) + uint64(out[i+j]) + carry
			out[i+j] = uint32(v)
			carry = v >> 32
		}
		out[i+8] = uint32(carry)
	}
}

// fieldReduce folds a 512-bit value into [0, p) using
// 2^256 = 2^32 + 977 (mod p). The first pass folds the high 8 limbs into a
// 10-limb window; stabilisation passes fold the residual overflow until the
// window is clear, then at most two subtractions of p canonicalise. Returns
// false only if stabilisation fails to converge (impossible for inputs
// produced by mulWide; kept for the checked variant).
func fieldReduce(wide *[16]uint32, out *[8]uint32) bool {
	var acc [10]uint64
	for i := 0; i < 8; i++ {
		acc[i] = uint64(wide[i]) + uint64(wide[8+i])*fieldFold
	}
	for i := 0; i < 8; i++ {
		acc[i+1] += uint64(wide[8+i]) // the 2^32 component
	}
	var carry uint64
	for i := 0; i < 10; i++ {
		carry += acc[i]
		acc[i] = carry & 0xFFFFFFFF
		carry >>= 32
	}

	// Fold the overflow window (limbs 8..9, < 2^43) until clear. Two passes
	// always suffice; the loop is bounded defensively for the checked path.
	for pass := 0; acc[8]|acc[9] != 0; pass++ {
		if pass == 4 {
			return false
		}
		ov := acc[8] | acc[9]<<32
		acc[8], acc[9] = 0, 0
		lo := ov * fieldFold
		c := acc[0] + lo&0xFFFFFFFF
		acc[0] = c & 0xFFFFFFFF
		c >>= 32
		c += acc[1] + lo>>32 + ov&0xFFFFFFFF
		acc[1] = c & 0xFFFFFFFF
		c >>= 32
		c += acc[2] + ov>>32
		acc[2] = c & 0xFFFFFFFF
		c >>= 32
		for i := 3; i < 8; i++ {
			c += acc[i]
			acc[i] = c & 0xFFFFFFFF
			c >>= 32
		}
		acc[8] = c
	}

	for i := 0; i < 8; i++ {
		out[i] = uint32(acc[i])
	}
	var tmp FieldElement
	tmp.n = *out
	if tmp.gteP() {
		tmp.subP()
	}
	if tmp.gteP() {
		tmp.subP()
	}
	*out = tmp.n
	return true
}

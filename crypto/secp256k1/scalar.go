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

package secp256k1

// Curve order n, as 8 little-endian 32-bit limbs.
var scalarN = [8]uint32{
	0xD0364141, 0xBFD25E8C, 0xAF48A03B, 0xBAAEDCE6,
	0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
}

// K = 2^256 - n, added on carry-out to fold an addition back below 2^256.
var scalarK = [8]uint32{
	0x2FC9BEBF, 0x402DA173, 0x50B75FC4, 0x45512319,
	0x00000001, 0x00000000, 0x00000000, 0x00000000,
}

// Scalar is an element of Z/nZ where n is the curve order, stored as 8
// little-endian 32-bit limbs. A scalar is valid as a private key iff it is
// non-zero and < n.
type Scalar struct {
	n [8]uint32
}

// Set copies a into s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.n = a.n
	return s
}

// SetInt loads a small integer.
func (s *Scalar) SetInt(v uint32) *Scalar {
	s.n = [8]uint32{v}
	return s
}

// SetBytes interprets b as a 256-bit big-endian integer and reports whether
// it is a canonical scalar (< n). Values >= n are loaded as-is; derivation
// steps must reject them.
func (s *Scalar) SetBytes(b *[32]byte) bool {
	for i := 0; i < 8; i++ {
		j := 32 - 4*(i+1)
		s.n[i] = uint32(b[j])<<24 | uint32(b[j+1])<<16 | uint32(b[j+2])<<8 | uint32(b[j+3])
	}
	return !s.gteN()
}

// PutBytes writes the scalar as 32 big-endian bytes.
func (s *Scalar) PutBytes(b *[32]byte) {
	for i := 0; i < 8; i++ {
		j := 32 - 4*(i+1)
		b[j] = byte(s.n[i] >> 24)
		b[j+1] = byte(s.n[i] >> 16)
		b[j+2] = byte(s.n[i] >> 8)
		b[j+3] = byte(s.n[i])
	}
}

// Bytes returns the scalar as 32 big-endian bytes.
func (s *Scalar) Bytes() [32]byte {
	var b [32]byte
	s.PutBytes(&b)
	return b
}

// IsZero reports whether s == 0.
func (s *Scalar) IsZero() bool {
	return s.n[0]|s.n[1]|s.n[2]|s.n[3]|s.n[4]|s.n[5]|s.n[6]|s.n[7] == 0
}

// Equals reports whether s and a hold the same value.
func (s *Scalar) Equals(a *Scalar) bool {
	return s.n == a.n
}

func (s *Scalar) gteN() bool {
	for i := 7; i >= 0; i-- {
		if s.n[i] > scalarN[i] {
			return true
		}
		if s.n[i] < scalarN[i] {
			return false
		}
	}
	return true
}

func (s *Scalar) subN() {
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(s.n[i]) - uint64(scalarN[i]) - borrow
		s.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
}

func (s *Scalar) addN() {
	var carry uint64
	for i := 0; i < 8; i++ {
		carry += uint64(s.n[i]) + uint64(scalarN[i])
		s.n[i] = uint32(carry)
		carry >>= 32
	}
}

// Add sets s = s + a (mod n). On carry-out of limb 7 the sum folds by adding
// K = 2^256 - n; the fold cannot carry out again because the pre-fold value
// is below 2n - 2^256. One conditional subtraction canonicalises.
func (s *Scalar) Add(a *Scalar) *Scalar {
	var carry uint64
	for i := 0; i < 8; i++ {
		carry += uint64(s.n[i]) + uint64(a.n[i])
		s.n[i] = uint32(carry)
		carry >>= 32
	}
	if carry != 0 {
		var c uint64
		for i := 0; i < 8; i++ {
			c += uint64(s.n[i]) + uint64(scalarK[i])
			s.n[i] = uint32(c)
			c >>= 32
		}
	}
	if s.gteN() {
		s.subN()
	}
	return s
}

// Sub sets s = s - a (mod n).
func (s *Scalar) Sub(a *Scalar) *Scalar {
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(s.n[i]) - uint64(a.n[i]) - borrow
		s.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
	if borrow != 0 {
		s.addN()
	}
	return s
}

// Negate sets s = -s (mod n). Zero stays zero.
func (s *Scalar) Negate() *Scalar {
	if s.IsZero() {
		return s
	}
	var borrow uint64
	for i := 0; i < 8; i++ {
		v := uint64(scalarN[i]) - uint64(s.n[i]) - borrow
		s.n[i] = uint32(v)
		borrow = (v >> 32) & 1
	}
	return s
}

// Mul sets s = s * a (mod n). The 512-bit product is reduced bit by bit:
// 512 steps of doubling the running remainder mod n and conditionally adding
// one. This is a deliberately slow reference path; nothing on the vanity hot
// path multiplies scalars (BIP32 only ever adds).
func (s *Scalar) Mul(a *Scalar) *Scalar {
	var wide [16]uint32
	mulWide(&s.n, &a.n, &wide)

	var rem, one Scalar
	one.SetInt(1)
	for limb := 15; limb >= 0; limb-- {
		for bit := 31; bit >= 0; bit-- {
			rem.Add(&rem)
			if wide[limb]>>uint(bit)&1 == 1 {
				rem.Add(&one)
			}
		}
	}
	s.n = rem.n
	return s
}

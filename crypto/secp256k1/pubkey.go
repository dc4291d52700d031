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

// PubKeyLen is the length of a compressed SEC1 public key.
const PubKeyLen = 33

// CompressedPubKey computes the 33-byte compressed public key k*G:
// 0x02 or 0x03 (parity of y) followed by the 32-byte big-endian x
// coordinate. It reports false when k is zero or the multiplication lands
// on the point at infinity.
func CompressedPubKey(k *Scalar, out *[PubKeyLen]byte) bool {
	if k.IsZero() {
		return false
	}
	var p Point
	p.ScalarBaseMult(k)

	var x, y FieldElement
	if !p.Affine(&x, &y) {
		return false
	}

	out[0] = 0x02
	if y.IsOdd() {
		out[0] = 0x03
	}
	var xb [32]byte
	x.PutBytes(&xb)
	copy(out[1:], xb[:])
	return true
}

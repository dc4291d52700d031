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

// Generator x-coordinate, 8 little-endian 32-bit limbs.
var genX = [8]uint32{
	0x16F81798, 0x59F2815B, 0x2DCE28D9, 0x029BFCDB,
	0xCE870B07, 0x55A06295, 0xF9DCBBAC, 0x79BE667E,
}

// Generator y-coordinate.
var genY = [8]uint32{
	0xFB10D4B8, 0x9C47D08F, 0xA6855419, 0xFD17B448,
	0x0E1108A8, 0x5DA4FBFC, 0x26A3C465, 0x483ADA77,
}

// Point is a curve point in Jacobian coordinates: (X, Y, Z) represents the
// affine point (X/Z^2, Y/Z^3). Z = 0 encodes the point at infinity.
type Point struct {
	x, y, z FieldElement
}

// SetInfinity sets p to the identity element.
func (p *Point) SetInfinity() *Point {
	p.x.SetInt(1)
	p.y.SetInt(1)
	p.z.SetInt(0)
	return p
}

// SetGenerator loads the curve generator G with Z = 1.
func (p *Point) SetGenerator() *Point {
	p.x.SetLimbs(&genX)
	p.y.SetLimbs(&genY)
	p.z.SetInt(1)
	return p
}

// Set copies a into p.
func (p *Point) Set(a *Point) *Point {
	p.x = a.x
	p.y = a.y
	p.z = a.z
	return p
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.z.IsZero()
}

// Affine reduces p to affine coordinates. It reports false for the point at
// infinity, leaving x and y untouched.
func (p *Point) Affine(x, y *FieldElement) bool {
	if p.IsInfinity() {
		return false
	}
	var zinv, zinv2, zinv3 FieldElement
	zinv.Set(&p.z).Inverse()
	zinv2.Set(&zinv).Square()
	zinv3.Set(&zinv2).Mul(&zinv)
	x.Set(&p.x).Mul(&zinv2)
	y.Set(&p.y).Mul(&zinv3)
	return true
}

// Double sets p = 2p using the a = 0 Jacobian doubling formulas:
// S = 4XY^2, M = 3X^2, X3 = M^2 - 2S, Y3 = M(S - X3) - 8Y^4, Z3 = 2YZ.
func (p *Point) Double() *Point {
	if p.IsInfinity() || p.y.IsZero() {
		return p.SetInfinity()
	}

	var y2, s, m, t, x3, y4, y3, z3 FieldElement

	y2.Set(&p.y).Square()
	s.Set(&p.x).Mul(&y2)
	s.Add(&s)
	s.Add(&s) // S = 4XY^2

	m.Set(&p.x).Square()
	t.Set(&m)
	m.Add(&m)
	m.Add(&t) // M = 3X^2

	x3.Set(&m).Square().Sub(&s).Sub(&s)

	y4.Set(&y2).Square()
	y4.Add(&y4)
	y4.Add(&y4)
	y4.Add(&y4) // 8Y^4

	y3.Set(&s).Sub(&x3).Mul(&m).Sub(&y4)

	z3.Set(&p.y).Mul(&p.z)
	z3.Add(&z3) // Z3 = 2YZ

	p.x = x3
	p.y = y3
	p.z = z3
	return p
}

// Add sets p = p + q using the standard mixed Jacobian addition in terms of
// U1 = X1*Z2^2, U2 = X2*Z1^2, S1 = Y1*Z2^3, S2 = Y2*Z1^3, H = U2-U1,
// R = S2-S1. H = 0 with R = 0 falls through to doubling; H = 0 with R != 0
// returns infinity.
func (p *Point) Add(q *Point) *Point {
	if p.IsInfinity() {
		return p.Set(q)
	}
	if q.IsInfinity() {
		return p
	}

	var z1z1, z2z2, z1z1z1, z2z2z2, u1, u2, s1, s2, h, r FieldElement

	z1z1.Set(&p.z).Square()
	z2z2.Set(&q.z).Square()
	z1z1z1.Set(&z1z1).Mul(&p.z)
	z2z2z2.Set(&z2z2).Mul(&q.z)

	u1.Set(&p.x).Mul(&z2z2)
	u2.Set(&q.x).Mul(&z1z1)
	s1.Set(&p.y).Mul(&z2z2z2)
	s2.Set(&q.y).Mul(&z1z1z1)

	h.Set(&u2).Sub(&u1)
	r.Set(&s2).Sub(&s1)

	if h.IsZero() {
		if r.IsZero() {
			return p.Double()
		}
		return p.SetInfinity()
	}

	var h2, h3, u1h2, x3, y3, z3, t FieldElement
	h2.Set(&h).Square()
	h3.Set(&h2).Mul(&h)
	u1h2.Set(&u1).Mul(&h2)

	x3.Set(&r).Square().Sub(&h3).Sub(&u1h2).Sub(&u1h2)

	y3.Set(&u1h2).Sub(&x3).Mul(&r)
	t.Set(&s1).Mul(&h3)
	y3.Sub(&t)

	z3.Set(&h).Mul(&p.z).Mul(&q.z)

	p.x = x3
	p.y = y3
	p.z = z3
	return p
}

// ScalarMult sets p = k * a by plain double-and-add over all 256 bits,
// scanning the scalar bytes LSB first (byte 31 down to 0, bit 0 to 7). The
// loop is not constant-time; the threat model here is a vanity search over
// caller-owned entropy, so do not repurpose this for signing.
func (p *Point) ScalarMult(a *Point, k *Scalar) *Point {
	if k.IsZero() || a.IsInfinity() {
		return p.SetInfinity()
	}

	kb := k.Bytes()
	var result, base Point
	result.SetInfinity()
	base.Set(a)

	for i := 31; i >= 0; i-- {
		b := kb[i]
		for bit := 0; bit < 8; bit++ {
			if b>>uint(bit)&1 == 1 {
				result.Add(&base)
			}
			base.Double()
		}
	}
	return p.Set(&result)
}

// ScalarBaseMult sets p = k * G.
func (p *Point) ScalarBaseMult(k *Scalar) *Point {
	var g Point
	g.SetGenerator()
	return p.ScalarMult(&g, k)
}

// Equals reports whether p and q are the same point, comparing through the
// cross-multiplied affine identities X1*Z2^2 = X2*Z1^2 and Y1*Z2^3 = Y2*Z1^3.
func (p *Point) Equals(q *Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	var z1z1, z2z2, z1z1z1, z2z2z2, lx, rx, ly, ry FieldElement
	z1z1.Set(&p.z).Square()
	z2z2.Set(&q.z).Square()
	z1z1z1.Set(&z1z1).Mul(&p.z)
	z2z2z2.Set(&z2z2).Mul(&q.z)
	lx.Set(&p.x).Mul(&z2z2)
	rx.Set(&q.x).Mul(&z1z1)
	ly.Set(&p.y).Mul(&z2z2z2)
	ry.Set(&q.y).Mul(&z1z1z1)
	return lx.Equals(&rx) && ly.Equals(&ry)
}

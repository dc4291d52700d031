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

import (
	"encoding/hex"
	"testing"

	dcrec "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func TestGeneratorOnCurve(t *testing.T) {
	var g Point
	g.SetGenerator()

	var x, y FieldElement
	require.True(t, g.Affine(&x, &y))

	// y^2 == x^3 + 7
	var y2, x3, seven FieldElement
	y2.Set(&y).Square()
	x3.Set(&x).Square().Mul(&x)
	seven.SetInt(7)
	x3.Add(&seven)
	require.True(t, y2.Equals(&x3), "generator not on curve")
}

func TestInfinityIdentity(t *testing.T) {
	var g, inf, r Point
	g.SetGenerator()
	inf.SetInfinity()

	// G + O == G
	r.Set(&g).Add(&inf)
	require.True(t, r.Equals(&g))

	// O + G == G
	r.SetInfinity()
	r.Add(&g)
	require.True(t, r.Equals(&g))

	// O + O == O
	r.SetInfinity()
	r.Add(&inf)
	require.True(t, r.IsInfinity())
}

func TestAddMatchesDouble(t *testing.T) {
	var g, sum, dbl Point
	g.SetGenerator()

	// G + G through the H = 0, R = 0 fall-through must equal 2G.
	sum.Set(&g).Add(&g)
	dbl.Set(&g).Double()
	require.True(t, sum.Equals(&dbl))
}

func TestAddInverseIsInfinity(t *testing.T) {
	var g, neg Point
	g.SetGenerator()
	neg.Set(&g)
	neg.y.Negate()

	// G + (-G) hits H = 0, R != 0 and must return infinity.
	var r Point
	r.Set(&g).Add(&neg)
	require.True(t, r.IsInfinity())
}

func TestScalarMultEdge(t *testing.T) {
	var g, r Point
	g.SetGenerator()

	var zero, one Scalar
	one.SetInt(1)

	// 0*G == O
	r.ScalarMult(&g, &zero)
	require.True(t, r.IsInfinity())

	// 1*G == G
	r.ScalarMult(&g, &one)
	require.True(t, r.Equals(&g))
}

func TestScalarMultThree(t *testing.T) {
	var three Scalar
	three.SetInt(3)

	var r Point
	r.ScalarBaseMult(&three)

	var x, y FieldElement
	require.True(t, r.Affine(&x, &y))
	xb := x.Bytes()
	require.Equal(t,
		"f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9",
		hex.EncodeToString(xb[:]))
}

func TestCompressedPubKeyKnown(t *testing.T) {
	// k = 1 gives G itself; G's y is even so the prefix is 0x02.
	var one Scalar
	one.SetInt(1)
	var pub [PubKeyLen]byte
	require.True(t, CompressedPubKey(&one, &pub))
	require.Equal(t, byte(0x02), pub[0])
	require.Equal(t,
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(pub[1:]))

	var zero Scalar
	require.False(t, CompressedPubKey(&zero, &pub))
}

func TestCompressedPubKeyAgainstDcrd(t *testing.T) {
	keys := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"0000000000000000000000000000000000000000000000000000000000000003",
		"deadbeefcafebabedeadbeefcafebabedeadbeefcafebabedeadbeefcafebabe",
		"1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", // n-1
	}
	for _, k := range keys {
		sc := scFromHex(t, k)
		var pub [PubKeyLen]byte
		require.True(t, CompressedPubKey(&sc, &pub))

		raw, _ := hex.DecodeString(k)
		priv := dcrec.PrivKeyFromBytes(raw)
		want := priv.PubKey().SerializeCompressed()
		require.Equal(t, want, pub[:], "pubkey mismatch for k=%s", k)
	}
}

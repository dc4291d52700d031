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

package base58

// PayloadLen is the serialised P2PK address length: prefix byte, 33-byte
// compressed pubkey, 4-byte checksum.
const PayloadLen = 38

// limbBase is 58^4; grouping four digits per limb turns the per-byte long
// division of a full encode into at most 13 limb operations.
const limbBase = 11316496

// maxLimbs covers 38 payload bytes: 304 bits / log2(58^4) < 13.
const maxLimbs = 13

// MatchPrefix reports whether the Base58 encoding of payload starts with
// prefix, computing only the leading digits the prefix needs instead of the
// full ~52-digit encoding. Under ignoreCase the prefix must already be
// lowercased by the caller; a prefix character then matches a digit if
// either its lowercase or uppercase form decodes to it. Bytes outside the
// alphabet never match.
func MatchPrefix(payload *[PayloadLen]byte, prefix []byte, ignoreCase bool) bool {
	if len(prefix) == 0 {
		return true
	}

	// Leading zero bytes of the payload encode as leading '1' characters.
	zeros := 0
	for zeros < PayloadLen && payload[zeros] == 0 {
		zeros++
	}
	ones := 0
	for ones < len(prefix) && prefix[ones] == '1' {
		ones++
	}
	if ones > zeros {
		return false
	}
	if ones == len(prefix) {
		return true
	}
	// The first non-'1' prefix character lines up with the first digit of
	// the big-integer part only when the '1' runs agree exactly.
	if ones != zeros {
		return false
	}
	rest := prefix[ones:]

	// Convert the non-zero tail into little-endian base-58^4 limbs: one
	// unrolled x256+carry sweep per source byte.
	var limbs [maxLimbs]uint32
	nl := 0
	for _, b := range payload[zeros:] {
		carry := uint64(b)
		for i := 0; i < nl; i++ {
			v := uint64(limbs[i])*256 + carry
			limbs[i] = uint32(v % limbBase)
			carry = v / limbBase
		}
		if carry != 0 {
			limbs[nl] = uint32(carry)
			nl++
		}
	}
	if nl == 0 {
		// Payload tail was empty; nothing beyond the '1' run to match.
		return false
	}

	// Digit budget: four per full limb plus one to four for the top limb.
	top := limbs[nl-1]
	topDigits := 4
	switch {
	case top < 58:
		topDigits = 1
	case top < 58*58:
		topDigits = 2
	case top < 58*58*58:
		topDigits = 3
	}
	if topDigits+4*(nl-1) < len(rest) {
		return false
	}

	// Walk from the most significant limb down, peeling digits MSD-first by
	// quotient-remainder against {58^3, 58^2, 58, 1}, skipping the top
	// limb's leading zero digits.
	divisors := [4]uint32{58 * 58 * 58, 58 * 58, 58, 1}
	pi := 0
	for li := nl - 1; li >= 0 && pi < len(rest); li-- {
		v := limbs[li]
		start := 0
		if li == nl-1 {
			start = 4 - topDigits
		}
		for d := start; d < 4 && pi < len(rest); d++ {
			digit := int8(v / divisors[d])
			v %= divisors[d]
			if !digitMatches(rest[pi], digit, ignoreCase) {
				return false
			}
			pi++
		}
	}
	return true
}

// MatchPrefixGeneric is the slow reference matcher: fully encode, then
// compare character by character under the same digit-matching rule. Kept
// for correctness testing against MatchPrefix.
func MatchPrefixGeneric(payload *[PayloadLen]byte, prefix []byte, ignoreCase bool) bool {
	encoded := Encode(payload[:])
	if len(prefix) > len(encoded) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		digit := DecodeDigit(encoded[i])
		if !digitMatches(prefix[i], digit, ignoreCase) {
			return false
		}
	}
	return true
}

func digitMatches(c byte, digit int8, ignoreCase bool) bool {
	if digit < 0 {
		return false
	}
	if !ignoreCase {
		return DecodeDigit(c) == digit
	}
	lower, upper := c, c
	if c >= 'A' && c <= 'Z' {
		lower = c + 'a' - 'A'
	}
	if c >= 'a' && c <= 'z' {
		upper = c - ('a' - 'A')
	}
	return DecodeDigit(lower) == digit || DecodeDigit(upper) == digit
}

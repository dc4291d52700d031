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

// Package base58 implements Bitcoin-alphabet Base58 encoding and the
// grouped-limb prefix matcher used by the search pipeline.
package base58

// Alphabet is the Bitcoin/Ergo Base58 alphabet (0, O, I, l excluded).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// decodeTable maps an ASCII byte to its Base58 digit, or -1.
var decodeTable [128]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		decodeTable[Alphabet[i]] = int8(i)
	}
}

// DecodeDigit returns the Base58 digit for an ASCII byte, or -1 if the byte
// is not in the alphabet.
func DecodeDigit(c byte) int8 {
	if c >= 128 {
		return -1
	}
	return decodeTable[c]
}

// IsAlphabetByte reports whether c is a valid Base58 character.
func IsAlphabetByte(c byte) bool {
	return DecodeDigit(c) >= 0
}

// Encode encodes data with the Bitcoin alphabet. Leading zero bytes become
// leading '1' characters; the remaining big integer is divided by 58 with
// digits emitted least significant first, then reversed into place.
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	// ceil(len * log 256 / log 58) upper bound.
	size := len(data)*138/100 + 1
	buf := make([]byte, size)

	for _, b := range data {
		carry := uint32(b)
		for i := size - 1; i >= 0; i-- {
			carry += uint32(buf[i]) * 256
			buf[i] = byte(carry % 58)
			carry /= 58
		}
	}

	first := 0
	for first < size && buf[first] == 0 {
		first++
	}

	out := make([]byte, 0, zeros+size-first)
	for i := 0; i < zeros; i++ {
		out = append(out, '1')
	}
	for _, d := range buf[first:] {
		out = append(out, Alphabet[d])
	}
	return string(out)
}

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

// Package address builds Ergo P2PK addresses: a network/type prefix byte,
// the compressed public key and a truncated Blake2b-256 checksum, Base58
// encoded.
package address

import (
	"github.com/ergvanity/go-ergvanity/crypto/base58"
	"github.com/ergvanity/go-ergvanity/crypto/blake2b"
)

// Network selects the address prefix nibble.
type Network byte

const (
	// Mainnet has network prefix 0x00.
	Mainnet Network = 0x00
	// Testnet has network prefix 0x10. The vanity search is mainnet-only,
	// but the encoder is shared with the verifier and tests.
	Testnet Network = 0x10
)

// P2PKType is the P2PK address type byte, OR-ed with the network prefix.
const P2PKType byte = 0x01

// PayloadLen is the serialised address length before Base58:
// 1 prefix + 33 pubkey + 4 checksum.
const PayloadLen = base58.PayloadLen

// ChecksumLen is the number of Blake2b-256 bytes appended.
const ChecksumLen = 4

// PrefixByte combines network and address type.
func PrefixByte(net Network) byte {
	return byte(net) | P2PKType
}

// P2PKPayload assembles the 38-byte address payload for a compressed public
// key: prefix || pubkey || Blake2b-256(prefix || pubkey)[0:4].
func P2PKPayload(pub *[33]byte, net Network, out *[PayloadLen]byte) {
	out[0] = PrefixByte(net)
	copy(out[1:34], pub[:])

	checksum := blake2b.Sum256(out[:34])
	copy(out[34:], checksum[:ChecksumLen])
}

// EncodeP2PK returns the Base58 address for a compressed public key on the
// given network. Mainnet P2PK addresses always start with '9'.
func EncodeP2PK(pub *[33]byte, net Network) string {
	var payload [PayloadLen]byte
	P2PKPayload(pub, net, &payload)
	return base58.Encode(payload[:])
}

// VerifyPayload recomputes the checksum of a serialised payload. The host
// verifier runs this before trusting a reported hit.
func VerifyPayload(payload *[PayloadLen]byte) bool {
	checksum := blake2b.Sum256(payload[:34])
	for i := 0; i < ChecksumLen; i++ {
		if payload[34+i] != checksum[i] {
			return false
		}
	}
	return true
}

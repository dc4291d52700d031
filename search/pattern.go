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
	"strings"

	"github.com/pkg/errors"

	"github.com/ergvanity/go-ergvanity/crypto/base58"
)

// Pattern set limits. The concatenated table layout mirrors the kernel
// argument surface: offsets and lengths index into one flat byte buffer.
const (
	MaxPatternLen  = 32
	MaxPatterns    = 64
	MaxPatternData = 1024
)

// ErrInvalidPattern tags every pattern validation failure; no search work
// starts after one.
var ErrInvalidPattern = errors.New("search: invalid pattern")

// validSecondChars are the only second characters a mainnet P2PK address
// can have: the 0x02/0x03 pubkey prefix pins the second Base58 digit.
const validSecondChars = "efghi"

// PatternSet is a validated, kernel-ready set of address prefixes. Under
// case-insensitive matching the stored patterns are lowercased; the
// originals are kept for display.
type PatternSet struct {
	originals  []string
	normalized []string

	data    []byte
	offsets []uint32
	lens    []uint32

	ignoreCase bool
}

// NewPatternSet validates and compiles prefixes. Rules: 1..32 ASCII Base58
// bytes each, at most 64 patterns and 1024 total bytes, first byte '9',
// second byte (if any) in {e,f,g,h,i} (after lowercasing when ignoreCase).
func NewPatternSet(patterns []string, ignoreCase bool) (*PatternSet, error) {
	if len(patterns) == 0 {
		return nil, errors.Wrap(ErrInvalidPattern, "at least one pattern required")
	}
	if len(patterns) > MaxPatterns {
		return nil, errors.Wrapf(ErrInvalidPattern, "%d patterns exceed the %d limit", len(patterns), MaxPatterns)
	}

	ps := &PatternSet{ignoreCase: ignoreCase}
	total := 0
	for _, p := range patterns {
		if err := validatePattern(p, ignoreCase); err != nil {
			return nil, err
		}
		normalized := p
		if ignoreCase {
			normalized = strings.ToLower(p)
		}
		total += len(normalized)
		if total > MaxPatternData {
			return nil, errors.Wrapf(ErrInvalidPattern, "total pattern data exceeds %d bytes", MaxPatternData)
		}
		ps.originals = append(ps.originals, p)
		ps.normalized = append(ps.normalized, normalized)
		ps.offsets = append(ps.offsets, uint32(len(ps.data)))
		ps.lens = append(ps.lens, uint32(len(normalized)))
		ps.data = append(ps.data, normalized...)
	}
	return ps, nil
}

func validatePattern(p string, ignoreCase bool) error {
	if p == "" {
		return errors.Wrap(ErrInvalidPattern, "pattern must not be empty")
	}
	if len(p) > MaxPatternLen {
		return errors.Wrapf(ErrInvalidPattern, "pattern %q longer than %d bytes", p, MaxPatternLen)
	}
	for i := 0; i < len(p); i++ {
		if p[i] >= 0x80 {
			return errors.Wrapf(ErrInvalidPattern, "pattern %q contains non-ASCII bytes", p)
		}
		if !base58.IsAlphabetByte(p[i]) {
			return errors.Wrapf(ErrInvalidPattern,
				"pattern %q contains %q; valid characters are %s", p, p[i], base58.Alphabet)
		}
	}
	if p[0] != '9' {
		return errors.Wrapf(ErrInvalidPattern,
			"pattern %q: mainnet P2PK addresses start with 9e/9f/9g/9h/9i (or just '9')", p)
	}
	if len(p) >= 2 {
		second := p[1]
		if ignoreCase && second >= 'A' && second <= 'Z' {
			second += 'a' - 'A'
		}
		if !strings.ContainsRune(validSecondChars, rune(second)) {
			if !ignoreCase && second >= 'A' && second <= 'Z' &&
				strings.ContainsRune(validSecondChars, rune(second+'a'-'A')) {
				return errors.Wrapf(ErrInvalidPattern,
					"pattern %q: second character %q is uppercase; use --ignore-case or lowercase it", p, p[1])
			}
			return errors.Wrapf(ErrInvalidPattern,
				"pattern %q: mainnet P2PK addresses start with 9e/9f/9g/9h/9i (or just '9')", p)
		}
	}
	return nil
}

// Len returns the number of patterns.
func (ps *PatternSet) Len() int {
	return len(ps.normalized)
}

// Original returns the pattern as the user supplied it.
func (ps *PatternSet) Original(i int) string {
	return ps.originals[i]
}

// Normalized returns the kernel-side pattern (lowercased when ignoreCase).
func (ps *PatternSet) Normalized(i int) string {
	return ps.normalized[i]
}

// IgnoreCase reports the matching mode.
func (ps *PatternSet) IgnoreCase() bool {
	return ps.ignoreCase
}

// pattern returns the i-th normalized pattern as a slice into the flat
// buffer, the form the match loop consumes.
func (ps *PatternSet) pattern(i int) []byte {
	off := ps.offsets[i]
	return ps.data[off : off+ps.lens[i]]
}

// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package lcmask masks low-complexity stretches of FASTQ reads.
//
// A read is masked by sliding a fixed-width window across it, scoring each
// window's complexity from the k-mers it contains, and replacing every base
// of a low-complexity window with 'N' (and its quality with '#'). Ids and
// read length are always preserved.
package lcmask

import "errors"

// ErrKRange means k is outside [1, MaxK].
var ErrKRange = errors.New("lcmask: k out of range")

// MaxK is the largest k-mer size supported by the 2-bit/uint32 encoding.
const MaxK = 15

// EncodeBase maps a single base to its 2-bit code. Only A/C/G/T (either
// case) are valid; anything else (N, IUPAC ambiguity codes, non-DNA bytes)
// reports ok=false. There is no approximation: an ambiguous base is not
// silently mapped to one of its possibilities, it simply invalidates
// whatever k-mer it participates in (spec: invalid bases are elided, never
// guessed at).
func EncodeBase(b byte) (code uint32, ok bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	default:
		return 0, false
	}
}

// bit2base maps a 2-bit code back to its upper-case base.
var bit2base = [4]byte{'A', 'C', 'G', 'T'}

// EncodeKmer packs a k-mer (k = len(kmer) <= MaxK) into a uint32, 2 bits per
// base, most-significant base first. It returns ok=false if any base is
// invalid or if the k-mer is longer than MaxK.
func EncodeKmer(kmer []byte) (code uint32, ok bool) {
	k := len(kmer)
	if k == 0 || k > MaxK {
		return 0, false
	}
	var c uint32
	for _, b := range kmer {
		bits, good := EncodeBase(b)
		if !good {
			return 0, false
		}
		c = (c << 2) | bits
	}
	return c, true
}

// DecodeKmer is the inverse of EncodeKmer for a given k.
func DecodeKmer(code uint32, k int) []byte {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = bit2base[code&3]
		code >>= 2
	}
	return out
}

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

package lcmask

import (
	"errors"
	"math"
)

// ErrWindowTooSmall means a tracker was asked for a non-positive window.
var ErrWindowTooSmall = errors.New("lcmask: windowKmers must be >= 1")

// Backend selects which EntropyTracker count storage to use.
type Backend int

// Backend values.
const (
	BackendAuto Backend = iota
	BackendDense
	BackendSparse
)

func (b Backend) String() string {
	switch b {
	case BackendDense:
		return "dense"
	case BackendSparse:
		return "sparse"
	default:
		return "auto"
	}
}

// countStore is the only thing that differs between the dense and sparse
// backends; all histogram/esum bookkeeping in EntropyTracker is shared.
type countStore interface {
	get(code uint32) int
	set(code uint32, v int)
	clear()
}

type denseStore struct {
	counts []uint16
}

func newDenseStore(k int) *denseStore {
	return &denseStore{counts: make([]uint16, 1<<uint(2*k))}
}

func (s *denseStore) get(code uint32) int { return int(s.counts[code]) }
func (s *denseStore) set(code uint32, v int) {
	s.counts[code] = uint16(v)
}
func (s *denseStore) clear() {
	for i := range s.counts {
		s.counts[i] = 0
	}
}

type sparseStore struct {
	counts map[uint32]uint16
}

func newSparseStore() *sparseStore {
	return &sparseStore{counts: make(map[uint32]uint16, 64)}
}

func (s *sparseStore) get(code uint32) int {
	return int(s.counts[code])
}
func (s *sparseStore) set(code uint32, v int) {
	if v <= 0 {
		delete(s.counts, code)
		return
	}
	s.counts[code] = uint16(v)
}
func (s *sparseStore) clear() {
	for k := range s.counts {
		delete(s.counts, k)
	}
}

// EntropyTracker maintains, in O(1) per add/remove, the normalized Shannon
// entropy of a multiset of k-mer codes, using a count-of-counts histogram so
// each mutation touches exactly one count and two histogram buckets, and
// moves esum by plogp[new] - plogp[old] with no log call.
type EntropyTracker struct {
	k           int
	windowKmers int // W - k + 1, the multiset's target size when full

	store countStore

	histogram []int32   // histogram[j] = #codes currently with count j
	plogp     []float64 // plogp[j] = (j/N)*log2(j/N), precomputed
	normFactor float64  // -1/log2(N), or 0 when N<2 (degenerate)

	esum   float64
	unique int
}

// NewEntropyTracker builds a tracker for k-mers of size k over a window
// holding windowKmers k-mer occurrences, using the given backend.
// backend must already be resolved (use AutoDispatcher to turn
// BackendAuto into BackendDense/BackendSparse).
func NewEntropyTracker(k, windowKmers int, backend Backend) (*EntropyTracker, error) {
	if k < 1 || k > MaxK {
		return nil, ErrKRange
	}
	if windowKmers < 1 {
		return nil, ErrWindowTooSmall
	}

	t := &EntropyTracker{
		k:           k,
		windowKmers: windowKmers,
		histogram:   make([]int32, windowKmers+2),
		plogp:       make([]float64, windowKmers+2),
	}

	n := float64(windowKmers)
	for j := 1; j <= windowKmers+1; j++ {
		p := float64(j) / n
		t.plogp[j] = p * math.Log2(p)
	}
	if n >= 2 {
		t.normFactor = -1 / math.Log2(n)
	}

	switch backend {
	case BackendSparse:
		t.store = newSparseStore()
	default:
		t.store = newDenseStore(k)
	}
	t.Clear()
	return t, nil
}

// Clear resets the tracker to an empty multiset, ready for reuse.
func (t *EntropyTracker) Clear() {
	t.store.clear()
	for i := range t.histogram {
		t.histogram[i] = 0
	}
	t.histogram[0] = int32(t.windowKmers)
	t.esum = 0
	t.unique = 0
}

// Add records one more occurrence of code.
func (t *EntropyTracker) Add(code uint32) {
	old := t.store.get(code)
	newCount := old + 1
	if old == 0 {
		t.unique++
	}
	t.histogram[old]--
	t.histogram[newCount]++
	t.store.set(code, newCount)
	t.esum += t.plogp[newCount] - t.plogp[old]
}

// Remove removes one occurrence of code. It is idempotent: removing a code
// with a current count of 0 is a no-op, which is what lets the masker treat
// invalid/elided k-mers symmetrically on both sides of the sliding window.
func (t *EntropyTracker) Remove(code uint32) {
	old := t.store.get(code)
	if old == 0 {
		return
	}
	newCount := old - 1
	if newCount == 0 {
		t.unique--
	}
	t.histogram[old]--
	t.histogram[newCount]++
	t.store.set(code, newCount)
	t.esum += t.plogp[newCount] - t.plogp[old]
}

// Entropy returns the current normalized Shannon entropy in [0, 1]. The
// max-0 clamp is applied after normalization, matching the reference: raw
// esum can be a hair positive from floating point rounding and would
// otherwise yield a small negative normalized entropy.
func (t *EntropyTracker) Entropy() float64 {
	e := t.esum * t.normFactor
	if e < 0 {
		return 0
	}
	return e
}

// Unique returns the number of distinct k-mer codes currently counted.
func (t *EntropyTracker) Unique() int { return t.unique }

// entropyFromCounts computes normalized Shannon entropy directly from a
// multiset, with no incremental state. Used for the short-read fallback
// (spec: "compute entropy of the entire read as one window") and as the
// ground truth in tests that check the incremental tracker against a
// from-scratch computation.
func entropyFromCounts(counts map[uint32]int, total int) float64 {
	if total == 0 {
		return 0
	}
	var entropy float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	maxEntropy := math.Log2(float64(total))
	if maxEntropy > 0 {
		return entropy / maxEntropy
	}
	return entropy
}

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

import "sync"

// Stats accumulates per-input masking counters. Zero value is ready to use;
// Add merges one shard's counters into another.
type Stats struct {
	Reads       int64
	Bases       int64
	MaskedBases int64
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Reads += other.Reads
	s.Bases += other.Bases
	s.MaskedBases += other.MaskedBases
}

// countMasked reports how many bytes of seq differ from outSeq. A base that
// was already 'N' in the input is not counted even when a painted window
// covers it.
func countMasked(seq, outSeq []byte) int64 {
	var n int64
	for i := range outSeq {
		if outSeq[i] != seq[i] {
			n++
		}
	}
	return n
}

// PoolMask partitions reads into contiguous shards across workers goroutines,
// each shard driven by its own ReadMasker so no state is shared between
// goroutines, and writes outputs back by absolute index so result order
// always matches input order (no channel-based reassembly needed).
//
// Grounded on the token-channel + sync.WaitGroup idiom the teacher uses to
// bound its own worker fan-out, generalized from "one goroutine per input
// file" to "one goroutine per contiguous read shard".
func PoolMask(reads []Read, cfg MaskConfig, workers int) ([]MaskedRead, Stats, error) {
	if workers < 1 {
		workers = 1
	}
	n := len(reads)
	out := make([]MaskedRead, n)
	shardStats := make([]Stats, workers)
	shardErrs := make([]error, workers)

	shardSize := (n + workers - 1) / workers
	if shardSize < 1 {
		shardSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * shardSize
		if start >= n {
			break
		}
		end := start + shardSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(shard int, start, end int) {
			defer wg.Done()

			masker, err := NewReadMasker(cfg)
			if err != nil {
				shardErrs[shard] = err
				return
			}
			var st Stats
			for i := start; i < end; i++ {
				r := reads[i]
				outSeq, outQual, err := masker.Mask(r.Seq, r.Qual)
				if err != nil {
					shardErrs[shard] = err
					return
				}
				out[i] = MaskedRead{ID: r.ID, Seq: outSeq, Qual: outQual}
				st.Reads++
				st.Bases += int64(len(r.Seq))
				st.MaskedBases += countMasked(r.Seq, outSeq)
			}
			shardStats[shard] = st
		}(w, start, end)
	}
	wg.Wait()

	var total Stats
	for i, err := range shardErrs {
		if err != nil {
			return nil, Stats{}, err
		}
		total.Add(shardStats[i])
	}
	return out, total, nil
}

// PoolMaskDust is PoolMask's DUST-path counterpart; it has no per-worker
// mutable tracker to own (DustMask is already stateless per call), so the
// sharding exists purely to parallelize the scoring work itself.
func PoolMaskDust(reads []Read, cfg DustConfig, workers int) ([]MaskedRead, Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if workers < 1 {
		workers = 1
	}
	n := len(reads)
	out := make([]MaskedRead, n)
	shardStats := make([]Stats, workers)
	shardErrs := make([]error, workers)

	shardSize := (n + workers - 1) / workers
	if shardSize < 1 {
		shardSize = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * shardSize
		if start >= n {
			break
		}
		end := start + shardSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(shard int, start, end int) {
			defer wg.Done()
			var st Stats
			for i := start; i < end; i++ {
				r := reads[i]
				outSeq, outQual, err := MaskDust(r.Seq, r.Qual, cfg)
				if err != nil {
					shardErrs[shard] = err
					return
				}
				out[i] = MaskedRead{ID: r.ID, Seq: outSeq, Qual: outQual}
				st.Reads++
				st.Bases += int64(len(r.Seq))
				st.MaskedBases += countMasked(r.Seq, outSeq)
			}
			shardStats[shard] = st
		}(w, start, end)
	}
	wg.Wait()

	var total Stats
	for i, err := range shardErrs {
		if err != nil {
			return nil, Stats{}, err
		}
		total.Add(shardStats[i])
	}
	return out, total, nil
}

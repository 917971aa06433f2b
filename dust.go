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

// tripletBuckets is 4^3: DustScorer always operates on 3-mers regardless of
// the entropy path's k.
const tripletBuckets = 64

// DustScorer computes the SDUST-style complexity score over a sliding
// window of triplet (3-mer) positions: score = sum_c c*(c-1)/2 over the
// triplet count histogram. A window is flagged low-complexity iff
// 10*score > threshold*windowSize.
type DustScorer struct {
	windowSize int
	threshold  int
	counts     [tripletBuckets]int
	score      int
}

// NewDustScorer builds a scorer for windowSize consecutive triplet
// positions, flagging a window when 10*score > threshold*windowSize.
func NewDustScorer(windowSize, threshold int) *DustScorer {
	return &DustScorer{windowSize: windowSize, threshold: threshold}
}

// add records one more occurrence of a triplet code (0..63).
func (d *DustScorer) add(triplet uint32) {
	c := d.counts[triplet]
	d.score += c
	d.counts[triplet] = c + 1
}

// remove removes one occurrence of a triplet code. Idempotent at zero.
func (d *DustScorer) remove(triplet uint32) {
	c := d.counts[triplet]
	if c == 0 {
		return
	}
	newCount := c - 1
	d.score -= newCount
	d.counts[triplet] = newCount
}

// flagged reports whether the current window exceeds the complexity
// threshold.
func (d *DustScorer) flagged() bool {
	return 10*d.score > d.threshold*d.windowSize
}

// reset clears the scorer back to an empty window, for reuse across the
// maximal valid-base runs a read is split into on 'N'.
func (d *DustScorer) reset() {
	for i := range d.counts {
		d.counts[i] = 0
	}
	d.score = 0
}

// MaskRegion is a half-open [Start, End) span over read coordinates,
// produced by DustScorer and consumed immediately by the painter.
type MaskRegion struct {
	Start, End int
}

// dustRegions runs the sliding DUST window over one maximal run of valid
// bases (run is a slice of the read, runStart its offset in the full read)
// and returns merged MaskRegions in full-read coordinates.
func dustRegions(run []byte, runStart, windowSize, threshold int) []MaskRegion {
	n := len(run)
	if n < 3 {
		return nil
	}

	roller, err := NewKmerRoller(3)
	if err != nil {
		panic(err) // k=3 is always in range
	}
	scorer := NewDustScorer(windowSize, threshold)

	type ringEntry struct {
		code uint32
		ok   bool
	}
	ring := make([]ringEntry, 0, windowSize)
	ringHead := 0

	var regions []MaskRegion
	var open bool
	var openStart, openEnd int

	pushRegion := func(start, end int) {
		if open && openEnd >= start {
			if end > openEnd {
				openEnd = end
			}
			return
		}
		if open {
			regions = append(regions, MaskRegion{openStart + runStart, openEnd + runStart})
		}
		open = true
		openStart, openEnd = start, end
	}

	for i := 0; i < n; i++ {
		code, ok := roller.Push(run[i])

		if len(ring) == windowSize {
			old := ring[ringHead]
			ring[ringHead] = ringEntry{code, ok}
			ringHead = (ringHead + 1) % windowSize
			if old.ok {
				scorer.remove(old.code)
			}
		} else {
			ring = append(ring, ringEntry{code, ok})
		}
		if ok {
			scorer.add(code)
		}

		// i is the index of the base just pushed; the triplet it completes
		// starts at i-2. A full window of windowSize triplets is in place
		// once we have processed windowSize+2 bases (triplet width 3).
		we := i + 1
		if we >= windowSize+2 {
			if scorer.flagged() {
				pushRegion(we-windowSize-2, we)
			}
		}
	}
	if open {
		regions = append(regions, MaskRegion{openStart + runStart, openEnd + runStart})
	}
	return regions
}

// DustMask applies the DUST scorer across seq, splitting on invalid bases
// (each maximal run of valid bases is scored independently, per spec:
// "existing regions are emitted, then scanning restarts after the invalid
// base"), merging overlapping/adjacent flagged regions, and destructively
// masking seq/qual over every flagged region. It returns freshly allocated
// buffers; seq and qual are not modified.
func DustMask(seq, qual []byte, windowSize, threshold int) (outSeq, outQual []byte) {
	outSeq = append([]byte(nil), seq...)
	outQual = append([]byte(nil), qual...)

	var regions []MaskRegion
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		regions = append(regions, dustRegions(seq[runStart:end], runStart, windowSize, threshold)...)
		runStart = -1
	}
	for i, b := range seq {
		if _, ok := EncodeBase(b); ok {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
	}
	flush(len(seq))

	for _, r := range regions {
		paintRange(outSeq, outQual, r.Start, r.End)
	}
	return outSeq, outQual
}

// paintRange destructively masks seq[start:end] to 'N' and, when qual is
// long enough to cover the same range, qual[start:end] to '#'.
func paintRange(seq, qual []byte, start, end int) {
	for i := start; i < end; i++ {
		seq[i] = 'N'
		if i < len(qual) {
			qual[i] = '#'
		}
	}
}

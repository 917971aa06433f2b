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

import "errors"

var (
	// ErrThreshold means a MaskConfig/DustConfig threshold is out of range.
	ErrThreshold = errors.New("lcmask: threshold out of range")
	// ErrWindowK means W <= k, which MaskConfig.Validate rejects; it rules
	// out the priming-step edge case of W == k. DustConfig.Validate also
	// returns it for a DUST window below 1.
	ErrWindowK = errors.New("lcmask: window must be strictly greater than k")
	// ErrSeqQualLen means seq and qual have different lengths.
	ErrSeqQualLen = errors.New("lcmask: seq/qual length mismatch")
)

// MaskConfig holds the entropy-path knobs for one ReadMasker. It is
// immutable once validated and cheap to copy into each worker.
type MaskConfig struct {
	Window    int
	K         int
	Threshold float64
	Backend   Backend
}

// Validate checks the configuration invariants spec'd for the core: k in
// range, W strictly greater than k, threshold in [0,1].
func (c MaskConfig) Validate() error {
	if c.K < 1 || c.K > MaxK {
		return ErrKRange
	}
	if c.Window <= c.K {
		return ErrWindowK
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return ErrThreshold
	}
	return nil
}

// DustConfig holds the DUST-path knobs used by MaskDust and PoolMaskDust.
type DustConfig struct {
	Window    int
	Threshold int
}

// Validate checks that the DUST window/threshold are usable.
func (c DustConfig) Validate() error {
	if c.Window < 1 {
		return ErrWindowK
	}
	if c.Threshold < 0 {
		return ErrThreshold
	}
	return nil
}

// Read is one FASTQ record as the core sees it: immutable input, consumed
// read-only.
type Read struct {
	ID   []byte
	Seq  []byte
	Qual []byte
}

// MaskedRead is the output of masking one Read: freshly allocated buffers,
// same id, same length.
type MaskedRead struct {
	ID   []byte
	Seq  []byte
	Qual []byte
}

// ringSlot is one entry of ReadMasker's sliding-window ring buffer: the
// k-mer code ending at some base, and whether that code was valid.
type ringSlot struct {
	code uint32
	ok   bool
}

// ReadMasker slides a window across one read at a time, driving the
// EntropyTracker+KmerRoller pair, and painting whole low-complexity windows
// to 'N'/'#'. The DUST path does not go through ReadMasker; it is the
// stateless MaskDust function below. One ReadMasker is not safe for
// concurrent use across goroutines; each worker owns its own (see pool.go).
type ReadMasker struct {
	cfg     MaskConfig
	roller  *KmerRoller
	tracker *EntropyTracker
	ring    []ringSlot
	ringPos int
	ringLen int
}

// NewReadMasker builds a masker for the entropy path. cfg must already be
// Validate()'d; backend should be resolved via SelectBackend first (auto is
// accepted here too, for convenience, and resolved internally).
func NewReadMasker(cfg MaskConfig) (*ReadMasker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	roller, err := NewKmerRoller(cfg.K)
	if err != nil {
		return nil, err
	}
	windowKmers := cfg.Window - cfg.K + 1
	backend := SelectBackend(cfg.Backend, cfg.K)
	tracker, err := NewEntropyTracker(cfg.K, windowKmers, backend)
	if err != nil {
		return nil, err
	}
	return &ReadMasker{
		cfg:     cfg,
		roller:  roller,
		tracker: tracker,
		ring:    make([]ringSlot, windowKmers),
	}, nil
}

// reset clears per-read state so the masker can be reused across reads
// without reallocating its buffers.
func (m *ReadMasker) reset() {
	m.roller.Reset()
	m.tracker.Clear()
	m.ringPos = 0
	m.ringLen = 0
}

// Mask masks one read's low-complexity windows in place of freshly
// allocated output buffers. seq and qual must have equal length (qual may
// be empty, per the "missing quality" design note: an empty qual is
// preserved as empty, only seq is masked).
func (m *ReadMasker) Mask(seq, qual []byte) (outSeq, outQual []byte, err error) {
	if len(qual) != 0 && len(qual) != len(seq) {
		return nil, nil, ErrSeqQualLen
	}
	outSeq = append([]byte(nil), seq...)
	if len(qual) != 0 {
		outQual = append([]byte(nil), qual...)
	}

	l := len(seq)
	w := m.cfg.Window

	if l < w {
		if entropyOfWhole(seq, m.cfg.K) < m.cfg.Threshold {
			paintRange(outSeq, outQual, 0, l)
		}
		return outSeq, outQual, nil
	}

	m.reset()
	windowKmers := w - m.cfg.K + 1

	for i := 0; i < l; i++ {
		code, ok := m.roller.Push(seq[i])

		if m.ringLen == windowKmers {
			old := m.ring[m.ringPos]
			m.ring[m.ringPos] = ringSlot{code, ok}
			m.ringPos = (m.ringPos + 1) % windowKmers
			if old.ok {
				m.tracker.Remove(old.code)
			}
		} else {
			m.ring[m.ringPos] = ringSlot{code, ok}
			m.ringPos = (m.ringPos + 1) % windowKmers
			m.ringLen++
		}
		if ok {
			m.tracker.Add(code)
		}

		we := i + 1
		if we >= w {
			if m.tracker.Entropy() < m.cfg.Threshold {
				paintRange(outSeq, outQual, we-w, we)
			}
		}
	}
	return outSeq, outQual, nil
}

// entropyOfWhole computes entropy of seq as a single window, for the
// short-read fallback: no incremental tracker, just a from-scratch count.
func entropyOfWhole(seq []byte, k int) float64 {
	roller, err := NewKmerRoller(k)
	if err != nil {
		return 0
	}
	counts := make(map[uint32]int)
	total := 0
	for _, b := range seq {
		code, ok := roller.Push(b)
		if !ok {
			continue
		}
		counts[code]++
		total++
	}
	return entropyFromCounts(counts, total)
}

// MaskDust masks one read's low-complexity windows via the DUST path. It
// does not mutate seq/qual.
func MaskDust(seq, qual []byte, cfg DustConfig) (outSeq, outQual []byte, err error) {
	if len(qual) != 0 && len(qual) != len(seq) {
		return nil, nil, ErrSeqQualLen
	}
	outSeq, outQual = DustMask(seq, qual, cfg.Window, cfg.Threshold)
	return outSeq, outQual, nil
}

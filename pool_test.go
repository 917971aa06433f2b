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
	"bytes"
	"fmt"
	"testing"
)

func buildReads(n int) []Read {
	reads := make([]Read, n)
	for i := 0; i < n; i++ {
		var seq string
		if i%2 == 0 {
			seq = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
		} else {
			seq = "ACGTACGTAGCTAGCTACGATCGATGCATG"
		}
		reads[i] = Read{
			ID:   []byte(fmt.Sprintf("read%d", i)),
			Seq:  []byte(seq),
			Qual: bytes.Repeat([]byte("I"), len(seq)),
		}
	}
	return reads
}

// TestPoolMaskOrderPreserved is the ordering guarantee from the
// concurrency model: output order matches input order regardless of how
// many workers process it.
func TestPoolMaskOrderPreserved(t *testing.T) {
	reads := buildReads(37)
	cfg := MaskConfig{Window: 10, K: 3, Threshold: 0.55}

	serial, _, err := PoolMask(reads, cfg, 1)
	if err != nil {
		t.Fatalf("PoolMask workers=1: %v", err)
	}
	parallel, stats, err := PoolMask(reads, cfg, 8)
	if err != nil {
		t.Fatalf("PoolMask workers=8: %v", err)
	}
	for i := range reads {
		if !bytes.Equal(serial[i].Seq, parallel[i].Seq) {
			t.Errorf("read %d: serial=%s parallel=%s, sharding changed output", i, serial[i].Seq, parallel[i].Seq)
		}
		if !bytes.Equal(parallel[i].ID, reads[i].ID) {
			t.Errorf("read %d: id not preserved, got %s", i, parallel[i].ID)
		}
	}
	if stats.Reads != int64(len(reads)) {
		t.Errorf("stats.Reads = %d, want %d", stats.Reads, len(reads))
	}
}

func TestPoolMaskStatsAccumulate(t *testing.T) {
	reads := buildReads(4)
	cfg := MaskConfig{Window: 10, K: 3, Threshold: 0.55}
	_, stats, err := PoolMask(reads, cfg, 2)
	if err != nil {
		t.Fatalf("PoolMask: %v", err)
	}
	var wantBases int64
	for _, r := range reads {
		wantBases += int64(len(r.Seq))
	}
	if stats.Bases != wantBases {
		t.Errorf("stats.Bases = %d, want %d", stats.Bases, wantBases)
	}
	if stats.MaskedBases == 0 {
		t.Errorf("expected some masked bases among homopolymer reads")
	}
}

func TestPoolMaskInvalidConfig(t *testing.T) {
	reads := buildReads(2)
	_, _, err := PoolMask(reads, MaskConfig{Window: 3, K: 5, Threshold: 0.55}, 2)
	if err == nil {
		t.Errorf("expected an error for W <= k")
	}
}

func TestPoolMaskDustOrderPreserved(t *testing.T) {
	reads := buildReads(11)
	cfg := DustConfig{Window: 10, Threshold: 20}
	out, stats, err := PoolMaskDust(reads, cfg, 4)
	if err != nil {
		t.Fatalf("PoolMaskDust: %v", err)
	}
	for i := range reads {
		if !bytes.Equal(out[i].ID, reads[i].ID) {
			t.Errorf("read %d: id not preserved", i)
		}
	}
	if stats.Reads != int64(len(reads)) {
		t.Errorf("stats.Reads = %d, want %d", stats.Reads, len(reads))
	}
}

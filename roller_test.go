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

import "testing"

// TestRollerMatchesReencode checks that the rolling code at every position
// equals re-encoding the trailing k bases from scratch.
func TestRollerMatchesReencode(t *testing.T) {
	seq := []byte("ACGTACGTNNNACGTACGGTACNGTCA")
	k := 4
	roller, err := NewKmerRoller(k)
	if err != nil {
		t.Fatalf("NewKmerRoller: %v", err)
	}
	for i := range seq {
		code, ok := roller.Push(seq[i])
		if i+1 < k {
			if ok {
				t.Errorf("position %d: expected warm-up, got ok=true", i)
			}
			continue
		}
		want, wantOk := EncodeKmer(seq[i+1-k : i+1])
		if ok != wantOk {
			t.Errorf("position %d: ok=%v, want %v", i, ok, wantOk)
			continue
		}
		if ok && code != want {
			t.Errorf("position %d: code=%d, want %d", i, code, want)
		}
	}
}

func TestRollerWarmupAfterInvalid(t *testing.T) {
	roller, err := NewKmerRoller(3)
	if err != nil {
		t.Fatalf("NewKmerRoller: %v", err)
	}
	seq := "AAANAA"
	var oks []bool
	for i := 0; i < len(seq); i++ {
		_, ok := roller.Push(seq[i])
		oks = append(oks, ok)
	}
	want := []bool{false, false, true, false, false, false}
	for i := range want {
		if oks[i] != want[i] {
			t.Errorf("position %d: ok=%v, want %v", i, oks[i], want[i])
		}
	}
}

func TestRollerReset(t *testing.T) {
	roller, err := NewKmerRoller(2)
	if err != nil {
		t.Fatalf("NewKmerRoller: %v", err)
	}
	roller.Push('A')
	roller.Push('C')
	code1, ok1 := roller.Push('G')
	roller.Reset()
	roller.Push('A')
	roller.Push('C')
	code2, ok2 := roller.Push('G')
	if ok1 != ok2 || code1 != code2 {
		t.Errorf("Reset did not restore a clean rolling state")
	}
}

func TestNewKmerRollerRange(t *testing.T) {
	if _, err := NewKmerRoller(0); err == nil {
		t.Errorf("expected error for k=0")
	}
	if _, err := NewKmerRoller(MaxK + 1); err == nil {
		t.Errorf("expected error for k=MaxK+1")
	}
}

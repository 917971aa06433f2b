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

// KmerRoller produces, one base at a time, the code of the k-mer ending at
// the most recently pushed base. It never re-slices or re-encodes: the
// running code is updated by shifting out the oldest 2 bits and shifting in
// the new base's 2 bits, which is what makes each Push O(1) regardless of k.
//
// An invalid base resets the running code and a warm-up counter; the next k
// consecutive valid bases are needed before Push reports a code again. This
// is the "cooldown" distance-since-last-invalid-base from the design notes.
type KmerRoller struct {
	k    int
	mask uint32
	code uint32
	warm int
}

// NewKmerRoller returns a roller for k-mers of size k (1 <= k <= MaxK).
func NewKmerRoller(k int) (*KmerRoller, error) {
	if k < 1 || k > MaxK {
		return nil, ErrKRange
	}
	return &KmerRoller{
		k:    k,
		mask: (uint32(1) << uint(2*k)) - 1,
	}, nil
}

// Reset clears the roller's running code and warm-up state, as if no bases
// had ever been pushed. It does not change k.
func (r *KmerRoller) Reset() {
	r.code = 0
	r.warm = 0
}

// Push rolls one more base into the window. It returns the code of the
// k-mer ending at this base and ok=true once k consecutive valid bases have
// been seen since the last invalid one; otherwise ok=false and code is 0.
func (r *KmerRoller) Push(b byte) (code uint32, ok bool) {
	bits, valid := EncodeBase(b)
	if !valid {
		r.code = 0
		r.warm = 0
		return 0, false
	}
	r.code = ((r.code << 2) | bits) & r.mask
	if r.warm < r.k {
		r.warm++
	}
	if r.warm < r.k {
		return 0, false
	}
	return r.code, true
}

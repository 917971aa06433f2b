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

// KDenseMax is the largest k for which the dense (array) backend is chosen
// by AutoDispatcher. 4^8 entries of uint16 is 128KiB, comfortably within a
// per-worker memory budget; k=3..7 is the typical range for low-complexity
// masking anyway.
const KDenseMax = 8

// SelectBackend resolves BackendAuto to a concrete backend for the given k.
// BackendDense/BackendSparse pass through unchanged, so callers can always
// override the heuristic. This is a pure function with no hidden state, by
// design: nothing else in this package depends on which backend is chosen,
// only EntropyTracker's constructor does.
func SelectBackend(preferred Backend, k int) Backend {
	if preferred != BackendAuto {
		return preferred
	}
	if k <= KDenseMax {
		return BackendDense
	}
	return BackendSparse
}

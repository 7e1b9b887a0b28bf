// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

// Transfer helpers move a batch between the caller's slice and the ring
// over a wrapping index range. They never fail and never block: the
// caller's reservation already proves the range valid and exclusively
// owned, so there is nothing left to check here.
//
// Two interchangeable strategies exist. Masked indexing ands every index
// with the mask (branch-free, the default); wrap-check indexing compares
// the index against the ring size and resets it at the boundary. A third
// strategy that coalesced each call into one or two copies split at the
// wrap boundary was prototyped and dropped: its split-point arithmetic
// has to be derived from the claiming side's own cursors and is too easy
// to get wrong, and bulk sizes here are too small to amortize the extra
// branches anyway.

// storeMasked writes elems into [head, head+len(elems)) with per-element
// mask arithmetic.
func (q *Queue[T]) storeMasked(head uint64, elems []T) {
	for i, elem := range elems {
		q.buffer[(head+uint64(i))&q.mask] = elem
	}
}

// storeWrap writes elems into [head, head+len(elems)) resetting the index
// at the ring boundary. Semantically identical to storeMasked.
func (q *Queue[T]) storeWrap(head uint64, elems []T) {
	idx := head & q.mask
	for _, elem := range elems {
		q.buffer[idx] = elem
		idx++
		if idx == uint64(len(q.buffer)) {
			idx = 0
		}
	}
}

// loadMasked moves [head, head+len(out)) into out and zeroes the vacated
// slots so the ring does not pin dequeued references for the GC.
func (q *Queue[T]) loadMasked(head uint64, out []T) {
	var zero T
	for i := range out {
		idx := (head + uint64(i)) & q.mask
		out[i] = q.buffer[idx]
		q.buffer[idx] = zero
	}
}

// loadWrap is loadMasked with wrap-check indexing.
func (q *Queue[T]) loadWrap(head uint64, out []T) {
	var zero T
	idx := head & q.mask
	for i := range out {
		out[i] = q.buffer[idx]
		q.buffer[idx] = zero
		idx++
		if idx == uint64(len(q.buffer)) {
			idx = 0
		}
	}
}

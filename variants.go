// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

import "unsafe"

// Indirect is a queue of uintptr values: pool indices, handles, or any
// other pointer-sized token. Useful for free lists over pre-allocated
// object pools, where transferring an index is cheaper and safer than
// transferring a pointer.
//
// The ring guards slots by reservation disjointness rather than per-slot
// atomics, so uintptr values need no reserved bits: any value, including
// zero, can be enqueued.
//
// Example (buffer pool free list):
//
//	pool := make([][]byte, 1024)
//	free, _ := alfq.NewIndirect(1024)
//
//	idxs := make([]uintptr, len(pool))
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    idxs[i] = uintptr(i)
//	}
//	free.Enqueue(idxs)
//
//	// Allocate a batch of up to 8 buffers
//	got := free.Dequeue(idxs[:8])
//	for _, idx := range idxs[:got] {
//	    use(pool[idx])
//	}
//
//	// Release them
//	free.Enqueue(idxs[:got])
type Indirect = Queue[uintptr]

// Ptr is a queue of unsafe.Pointer values for zero-copy object passing.
//
// Ownership semantics: enqueueing transfers the object to whichever
// consumer dequeues it; the producer must not touch the object after a
// successful Enqueue. The queue itself never dereferences the pointers
// and drops its own slot reference as part of dequeue.
type Ptr = Queue[unsafe.Pointer]

// NewIndirect creates a queue of uintptr values.
// Capacity behaves as in [NewQueue].
func NewIndirect(capacity int) (*Indirect, error) {
	return NewQueue[uintptr](capacity)
}

// NewPtr creates a queue of unsafe.Pointer values.
// Capacity behaves as in [NewQueue].
func NewPtr(capacity int) (*Ptr, error) {
	return NewQueue[unsafe.Pointer](capacity)
}

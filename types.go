// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

// FIFO is the combined producer-consumer interface for a bulk queue.
//
// All operations are non-blocking in the scheduler sense: nothing ever
// parks a goroutine or takes a lock. Enqueue reports ErrCapacityExceeded
// instead of waiting for space; Dequeue returns a short (possibly zero)
// count instead of waiting for data.
//
// The interface exposes Len and Available, but both are advisory
// snapshots: exact counts in a lock-free structure would require
// cross-core synchronization the hot path cannot afford. Never use them
// to coordinate correctness.
type FIFO[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the usable capacity.
	Cap() int
	// Empty reports whether the queue looked empty at snapshot time.
	Empty() bool
	// Len returns an advisory snapshot of the element count.
	Len() int
	// Available returns an advisory snapshot of the remaining space.
	Available() int
}

// Producer is the enqueueing half of a queue.
//
// Any number of goroutines may produce concurrently. Batches from
// concurrent producers interleave at batch granularity: each batch's
// internal order is preserved, and batches become consumable in exactly
// the order their reservations were granted.
type Producer[T any] interface {
	// Enqueue appends the whole batch or nothing. On success it returns
	// len(elems); on insufficient space it returns 0 and
	// ErrCapacityExceeded with the queue unchanged.
	Enqueue(elems []T) (int, error)
}

// Consumer is the dequeueing half of a queue.
//
// Any number of goroutines may consume concurrently. A dequeue takes as
// many elements as are published, up to len(out), and returns 0
// immediately on an empty queue.
type Consumer[T any] interface {
	// Dequeue fills out from the front of the queue and returns the
	// number of elements moved, in [0, len(out)]. It never fails.
	Dequeue(out []T) int
}

var _ FIFO[int] = (*Queue[int])(nil)

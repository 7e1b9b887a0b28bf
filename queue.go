// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// actor is one side's cursor pair. head is the reservation frontier: the
// position up to which in-flight calls on this side have claimed slots.
// tail is the publication frontier: the position up to which this side's
// work is complete and visible to the opposite side. head may lead tail
// while calls are in flight; the region [tail, head) belongs exclusively
// to those calls.
//
// Both cursors are free-running counters interpreted modulo the ring size
// through the mask. The pair shares one cache line; the trailing padding
// keeps the producer pair and the consumer pair on separate lines so
// producer-side CAS traffic does not evict the consumer-side line.
type actor struct {
	head atomix.Uint64
	tail atomix.Uint64
	_    padActor
}

// Queue is a bounded multi-producer multi-consumer FIFO with bulk
// enqueue and dequeue.
//
// The ring is a plain array guarded purely by cursor arithmetic: a call
// claims a contiguous index range with a single compare-and-swap on its
// side's head, transfers the batch without further synchronization, then
// publishes the range by advancing its side's tail once every earlier
// reservation on the same side has published. Ranges claimed by distinct
// calls never overlap, so no slot is ever accessed by two calls at once.
//
// One slot is sacrificed so the empty state (tails equal) stays
// distinguishable from the full state; a ring of size n holds n-1
// elements.
//
// Elements are opaque to the queue: it never inspects, dereferences, or
// retains them beyond their stay in the ring (dequeue zeroes the vacated
// slots so the GC is not held back by stale references).
//
// Memory: n slots, plus two cache lines of cursors
type Queue[T any] struct {
	_        pad
	producer actor
	consumer actor
	buffer   []T
	mask     uint64
	wrap     bool // wrap-check transfer strategy instead of masked
}

// NewQueue creates a queue with the requested capacity rounded up to the
// next power of two. The usable capacity is the rounded size minus one.
//
// Returns ErrInvalidCapacity if capacity is not positive, or
// ErrAllocationFailure if the rounded ring would exceed the addressable
// bound.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	return newQueue[T](capacity, false)
}

func newQueue[T any](capacity int, wrap bool) (*Queue[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if capacity > maxCapacity {
		return nil, ErrAllocationFailure
	}

	n := uint64(roundToPow2(capacity))
	return &Queue[T]{
		buffer: make([]T, n),
		mask:   n - 1,
		wrap:   wrap,
	}, nil
}

// Enqueue appends the whole batch to the queue. All-or-nothing: either
// every element of elems is stored, in order, and len(elems) is returned,
// or nothing is stored and the call returns 0 with ErrCapacityExceeded,
// leaving the queue untouched. Partial acceptance would force callers to
// track split batches, so it is deliberately not offered.
//
// Safe for any number of concurrent producers. The reservation loop is
// lock-free but not wait-free: a producer that loses the CAS race simply
// retries, and after winning it must wait for every earlier-reserving
// producer to publish before publishing itself. A producer that stalls
// mid-call (for example, preempted between reservation and publication)
// therefore stalls the publication of every later producer on this side.
func (q *Queue[T]) Enqueue(elems []T) (int, error) {
	n := uint64(len(elems))
	if n == 0 {
		return 0, nil
	}

	// Reserve [pHead, pHead+n) by advancing producer.head. The consumer
	// tail is loaded with acquire so slots freed by a consumer are not
	// rewritten before that consumer's loads have completed.
	var pHead uint64
	sw := spin.Wait{}
	for {
		pHead = q.producer.head.LoadRelaxed()
		cTail := q.consumer.tail.LoadAcquire()

		space := (cTail - pHead - 1) & q.mask
		if n > space {
			return 0, ErrCapacityExceeded
		}
		if q.producer.head.CompareAndSwapAcqRel(pHead, pHead+n) {
			break
		}
		sw.Once()
	}

	// The successful CAS proved the range disjoint from every other
	// producer's reservation, so the stores need no bounds or ownership
	// checks of their own.
	if q.wrap {
		q.storeWrap(pHead, elems)
	} else {
		q.storeMasked(pHead, elems)
	}

	// Publish in reservation order: wait until every earlier producer has
	// advanced the tail to our reservation start, then release-store past
	// our range. The release makes the slot stores above (and, through the
	// acquire in the wait, our predecessors') visible before consumers can
	// observe the new tail, so the consumable region is always contiguous
	// and fully written.
	for q.producer.tail.LoadAcquire() != pHead {
		sw.Once()
	}
	q.producer.tail.StoreRelease(pHead + n)

	return int(n), nil
}

// Dequeue moves up to len(out) elements into out and returns how many
// were moved, preserving FIFO order. It returns 0 immediately when
// nothing is published; dequeue never fails and never waits for data to
// arrive.
//
// Safe for any number of concurrent consumers, with the same
// publish-in-reservation-order rule as Enqueue on the consumer side.
func (q *Queue[T]) Dequeue(out []T) int {
	n := uint64(len(out))
	if n == 0 {
		return 0
	}

	// Reserve [cHead, cHead+elems) by advancing consumer.head, bounded by
	// the producers' publication frontier.
	var cHead, elems uint64
	sw := spin.Wait{}
	for {
		cHead = q.consumer.head.LoadRelaxed()
		pTail := q.producer.tail.LoadAcquire()

		avail := (pTail - cHead) & q.mask
		if avail == 0 {
			return 0
		}
		elems = min(avail, n)
		if q.consumer.head.CompareAndSwapAcqRel(cHead, cHead+elems) {
			break
		}
		sw.Once()
	}

	// No extra read barrier between the CAS and the loads: the acquire on
	// producer.tail above pairs with the producers' release publish, and
	// the CAS itself is a full synchronization point for the reservation.
	if q.wrap {
		q.loadWrap(cHead, out[:elems])
	} else {
		q.loadMasked(cHead, out[:elems])
	}

	for q.consumer.tail.LoadAcquire() != cHead {
		sw.Once()
	}
	q.consumer.tail.StoreRelease(cHead + elems)

	return int(elems)
}

// Empty reports whether the published frontiers of both sides coincide.
// Advisory: the answer may be stale by the time the call returns. Use it
// for diagnostics or heuristics, never to coordinate access.
func (q *Queue[T]) Empty() bool {
	cTail := q.consumer.tail.LoadRelaxed()
	pTail := q.producer.tail.LoadRelaxed()
	return cTail == pTail
}

// Len returns a snapshot of the number of published, not-yet-claimed
// elements. Advisory, like Empty.
func (q *Queue[T]) Len() int {
	cHead := q.consumer.head.LoadRelaxed()
	pTail := q.producer.tail.LoadRelaxed()
	return int((pTail - cHead) & q.mask)
}

// Available returns a snapshot of the space left for producers to claim.
// Advisory, like Empty. Len and Available always sum to Cap in a
// quiescent queue.
func (q *Queue[T]) Available() int {
	pHead := q.producer.head.LoadRelaxed()
	cTail := q.consumer.tail.LoadRelaxed()
	return int((cTail - pHead - 1) & q.mask)
}

// Cap returns the usable capacity: the ring size minus the one slot
// sacrificed to keep the empty and full states distinguishable.
func (q *Queue[T]) Cap() int {
	return int(q.mask)
}

// Close releases the ring. The caller must guarantee that no Enqueue or
// Dequeue is in flight and that none will follow; this is a precondition,
// not a checked invariant, and concurrent use past Close is undefined
// behavior.
func (q *Queue[T]) Close() {
	clear(q.buffer)
	q.buffer = nil
}

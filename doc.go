// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package alfq provides a bounded, array-backed, lock-free FIFO queue
// with bulk enqueue and dequeue for any number of concurrent producers
// and consumers.
//
// alfq is a low-level primitive meant to be embedded where producers and
// consumers must never block on a mutex: distributing work items across
// CPUs, recycling buffers through a free list, fanning events into a
// worker pool. Elements are opaque to the queue; it never inspects,
// dereferences, or manages the lifetime of what it carries.
//
// # Quick Start
//
//	q, err := alfq.NewQueue[*Request](4096)
//	if err != nil {
//	    return err
//	}
//
//	// Bulk enqueue: all-or-nothing
//	if _, err := q.Enqueue(batch); err != nil {
//	    // ErrCapacityExceeded - queue unchanged, retry or shrink the batch
//	}
//
//	// Bulk dequeue: partial results allowed
//	out := make([]*Request, 64)
//	n := q.Dequeue(out)
//	for _, r := range out[:n] {
//	    handle(r)
//	}
//
// # Algorithm
//
// The queue is a power-of-two ring addressed through a bit mask, with one
// cursor pair per side. Each side's head is its reservation frontier and
// its tail its publication frontier:
//
//	enqueue: CAS producer.head forward by n  → write the n slots
//	         → wait for earlier producers    → release producer.tail
//	dequeue: CAS consumer.head forward by n  → read the n slots
//	         → wait for earlier consumers    → release consumer.tail
//
// A single compare-and-swap claims a contiguous range of slots for
// exactly one call; ranges never overlap, so the slot transfers run on
// plain memory with no per-slot synchronization. Publication happens in
// reservation order, which keeps the consumable region contiguous: a
// consumer never observes a later batch before an earlier one.
//
// Enqueue is all-or-nothing (a batch that does not fit fails with
// [ErrCapacityExceeded] and changes nothing); dequeue is partial (it
// returns whatever is available, up to the output length, and 0 on an
// empty queue, immediately and without error).
//
// One ring slot is sacrificed to tell the full state from the empty
// state, so a queue built with capacity 4 holds 3 elements.
//
// # Liveness
//
// Operations are lock-free but not wait-free. A call that loses the
// reservation CAS retries; a call that wins must wait for every earlier
// reservation on its side to publish before publishing its own, spinning
// on the processor with [code.hybscloud.com/spin] and never yielding to
// the scheduler. A producer or consumer preempted between
// reservation and publication therefore stalls every later call on the
// same side until it resumes. Size rings and batch counts so that
// reservations are short-lived, and prefer pinned or low-preemption
// execution for heavily contended queues.
//
// # Value Flavors
//
//	NewQueue[T]  - generic, type-safe
//	NewIndirect  - uintptr values (pool indices, handles)
//	NewPtr       - unsafe.Pointer values (zero-copy object passing)
//
// All three flavors run the identical algorithm; [Indirect] and [Ptr] are
// aliases of the generic queue.
//
// # Transfer Strategy
//
// The builder selects how slot transfers index the ring:
//
//	q, err := alfq.Build[Event](alfq.New(1024))             // masked (default)
//	q, err := alfq.Build[Event](alfq.New(1024).WrapCheck()) // wrap-check
//
// Masked indexing ands every index with the mask; wrap-check compares
// against the size and resets at the boundary. They are semantically
// identical; the choice only matters for tuning on a given
// microarchitecture.
//
// # Introspection
//
// Empty, Len, and Available are advisory snapshots assembled from
// independently read cursors. They may be stale the moment they return
// and must never be used to coordinate correctness; use them only for
// diagnostics, metrics, or heuristics such as choosing a batch size.
//
// # Error Handling
//
// Construction fails with [ErrInvalidCapacity] or [ErrAllocationFailure].
// Enqueue fails only with [ErrCapacityExceeded], which wraps
// [code.hybscloud.com/iox.ErrWouldBlock]; treat it as backpressure:
//
//	backoff := iox.Backoff{}
//	for {
//	    if _, err := q.Enqueue(batch); err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    backoff.Wait()
//	}
//
// Dequeue never errors; insufficient availability degrades to a shorter
// (possibly zero) result.
//
// Close releases the ring. It is the caller's job to quiesce all
// producers and consumers first; this precondition is not checked, and
// use after Close is undefined behavior.
//
// # Race Detection
//
// The slot array is plain memory protected by acquire/release publication
// across separate atomic variables. Go's race detector cannot observe
// that happens-before edge and reports false positives on concurrent use,
// so concurrent tests are skipped under -race (see RaceEnabled). Verify
// the algorithm with stress tests without the detector, or with memory
// model analysis.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions, and [code.hybscloud.com/iox] for semantic errors.
package alfq

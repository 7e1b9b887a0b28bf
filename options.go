// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

import "unsafe"

// Options configures queue creation.
type Options struct {
	// Transfer strategy hint
	wrapCheck bool

	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Default masked transfer strategy
//	q, err := alfq.Build[Task](alfq.New(4096))
//
//	// Wrap-check strategy, uintptr flavor
//	q, err := alfq.New(1024).WrapCheck().BuildIndirect()
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2 at build time, and the usable
// capacity is one less than the rounded size. For example, capacity=4
// builds a ring of 4 slots holding at most 3 elements.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// WrapCheck selects the wrap-check transfer strategy: ring indices are
// compared against the size and reset at the boundary, instead of being
// masked per element. The two strategies are semantically identical and
// interchangeable; masked is the default.
func (b *Builder) WrapCheck() *Builder {
	b.opts.wrapCheck = true
	return b
}

// Build creates a Queue[T] from the builder configuration.
// Returns ErrInvalidCapacity or ErrAllocationFailure like [NewQueue].
func Build[T any](b *Builder) (*Queue[T], error) {
	return newQueue[T](b.opts.capacity, b.opts.wrapCheck)
}

// BuildIndirect creates a queue of uintptr values (pool indices, handles).
func (b *Builder) BuildIndirect() (*Indirect, error) {
	return Build[uintptr](b)
}

// BuildPtr creates a queue of unsafe.Pointer values for zero-copy
// pointer passing.
func (b *Builder) BuildPtr() (*Ptr, error) {
	return Build[unsafe.Pointer](b)
}

// maxCapacity bounds requested capacities so the rounded ring stays
// addressable on 32-bit targets and cursor arithmetic stays far from
// counter wraparound.
const maxCapacity = 1 << 30

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padActor fills the rest of a cache line after a cursor pair.
type padActor [64 - 16]byte

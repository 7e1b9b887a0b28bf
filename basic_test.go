// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq_test

import (
	"errors"
	"testing"
	"unsafe"

	"code.hybscloud.com/alfq"
	"code.hybscloud.com/iox"
)

// =============================================================================
// Construction
// =============================================================================

// TestCapacityRounding verifies requested capacities round up to the next
// power of two, with usable capacity one below the rounded size.
func TestCapacityRounding(t *testing.T) {
	tests := []struct {
		requested int
		wantCap   int
	}{
		{1, 1}, // rounds to 2, holds 1
		{2, 1}, // rounds to 2, holds 1
		{3, 3}, // rounds to 4, holds 3
		{4, 3}, // rounds to 4, holds 3
		{5, 7}, // rounds to 8, holds 7
		{1000, 1023},
		{1024, 1023},
	}
	for _, tt := range tests {
		q, err := alfq.NewQueue[int](tt.requested)
		if err != nil {
			t.Fatalf("NewQueue(%d): %v", tt.requested, err)
		}
		if q.Cap() != tt.wantCap {
			t.Errorf("NewQueue(%d).Cap(): got %d, want %d", tt.requested, q.Cap(), tt.wantCap)
		}
	}
}

// TestInvalidCapacity verifies construction error taxonomy.
func TestInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1024} {
		if _, err := alfq.NewQueue[int](capacity); !errors.Is(err, alfq.ErrInvalidCapacity) {
			t.Errorf("NewQueue(%d): got %v, want ErrInvalidCapacity", capacity, err)
		}
	}

	if _, err := alfq.NewQueue[byte](1<<30 + 1); !errors.Is(err, alfq.ErrAllocationFailure) {
		t.Errorf("NewQueue(1<<30+1): got %v, want ErrAllocationFailure", err)
	}

	// Builder surfaces the same errors at build time.
	if _, err := alfq.Build[int](alfq.New(0)); !errors.Is(err, alfq.ErrInvalidCapacity) {
		t.Errorf("Build(New(0)): got %v, want ErrInvalidCapacity", err)
	}
}

// TestBuilder verifies strategy and flavor selection.
func TestBuilder(t *testing.T) {
	q, err := alfq.Build[string](alfq.New(16))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.Cap() != 15 {
		t.Fatalf("Cap: got %d, want 15", q.Cap())
	}

	wq, err := alfq.Build[string](alfq.New(16).WrapCheck())
	if err != nil {
		t.Fatalf("Build(WrapCheck): %v", err)
	}
	if wq.Cap() != 15 {
		t.Fatalf("WrapCheck Cap: got %d, want 15", wq.Cap())
	}

	iq, err := alfq.New(8).BuildIndirect()
	if err != nil {
		t.Fatalf("BuildIndirect: %v", err)
	}
	if _, err := iq.Enqueue([]uintptr{1, 2, 3}); err != nil {
		t.Fatalf("Indirect Enqueue: %v", err)
	}

	pq, err := alfq.New(8).BuildPtr()
	if err != nil {
		t.Fatalf("BuildPtr: %v", err)
	}
	v := 42
	if _, err := pq.Enqueue([]unsafe.Pointer{unsafe.Pointer(&v)}); err != nil {
		t.Fatalf("Ptr Enqueue: %v", err)
	}
	out := make([]unsafe.Pointer, 1)
	if n := pq.Dequeue(out); n != 1 || *(*int)(out[0]) != 42 {
		t.Fatalf("Ptr Dequeue: got n=%d", n)
	}
}

// =============================================================================
// Enqueue / Dequeue Semantics
// =============================================================================

// TestRoundTrip enqueues one batch and dequeues it in batches of 2,
// verifying FIFO order across the batch boundaries.
func TestRoundTrip(t *testing.T) {
	q, err := alfq.NewQueue[string](8)
	if err != nil {
		t.Fatal(err)
	}

	in := []string{"a", "b", "c", "d", "e"}
	if n, err := q.Enqueue(in); err != nil || n != 5 {
		t.Fatalf("Enqueue: got (%d, %v), want (5, nil)", n, err)
	}

	out := make([]string, 2)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	for i, batch := range want {
		n := q.Dequeue(out)
		if n != len(batch) {
			t.Fatalf("Dequeue #%d: got %d elements, want %d", i, n, len(batch))
		}
		for j := range batch {
			if out[j] != batch[j] {
				t.Fatalf("Dequeue #%d[%d]: got %q, want %q", i, j, out[j], batch[j])
			}
		}
	}
	if !q.Empty() {
		t.Fatal("queue not empty after full drain")
	}
}

// TestAllOrNothing verifies a batch that does not fit fails without
// disturbing the queue state.
func TestAllOrNothing(t *testing.T) {
	q, err := alfq.NewQueue[int](4) // holds 3
	if err != nil {
		t.Fatal(err)
	}

	if _, err := q.Enqueue([]int{1, 2}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	lenBefore, availBefore := q.Len(), q.Available()
	n, err := q.Enqueue([]int{3, 4}) // needs 2, only 1 slot left
	if n != 0 || !errors.Is(err, alfq.ErrCapacityExceeded) {
		t.Fatalf("oversized Enqueue: got (%d, %v), want (0, ErrCapacityExceeded)", n, err)
	}
	if q.Len() != lenBefore || q.Available() != availBefore {
		t.Fatalf("state changed on failed enqueue: Len %d→%d, Available %d→%d",
			lenBefore, q.Len(), availBefore, q.Available())
	}

	// The single remaining slot is still usable.
	if _, err := q.Enqueue([]int{3}); err != nil {
		t.Fatalf("Enqueue after failure: %v", err)
	}

	out := make([]int, 3)
	if n := q.Dequeue(out); n != 3 || out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("Dequeue: got %v (n=%d)", out[:n], n)
	}
}

// TestPartialDequeue verifies dequeue returns what is available, up to the
// request, and zero from an empty queue with no error and no delay.
func TestPartialDequeue(t *testing.T) {
	q, err := alfq.NewQueue[int](8)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := q.Enqueue([]int{10, 20, 30}); err != nil {
		t.Fatal(err)
	}

	out := make([]int, 10)
	if n := q.Dequeue(out); n != 3 {
		t.Fatalf("Dequeue: got %d, want 3", n)
	}
	for i, want := range []int{10, 20, 30} {
		if out[i] != want {
			t.Fatalf("Dequeue[%d]: got %d, want %d", i, out[i], want)
		}
	}

	if n := q.Dequeue(out); n != 0 {
		t.Fatalf("Dequeue on empty: got %d, want 0", n)
	}
	if !q.Empty() {
		t.Fatal("Empty: got false, want true")
	}
}

// TestCapacityBoundary verifies a ring of size 4 accepts exactly 3
// elements before reporting ErrCapacityExceeded.
func TestCapacityBoundary(t *testing.T) {
	q, err := alfq.NewQueue[int](4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 3 {
		if _, err := q.Enqueue([]int{i}); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if _, err := q.Enqueue([]int{3}); !errors.Is(err, alfq.ErrCapacityExceeded) {
		t.Fatalf("4th Enqueue: got %v, want ErrCapacityExceeded", err)
	}

	// A batch larger than the whole usable capacity can never fit.
	empty, _ := alfq.NewQueue[int](4)
	if _, err := empty.Enqueue([]int{0, 1, 2, 3}); !errors.Is(err, alfq.ErrCapacityExceeded) {
		t.Fatalf("oversized batch: got %v, want ErrCapacityExceeded", err)
	}
}

// TestZeroLengthBatches verifies empty inputs are no-ops.
func TestZeroLengthBatches(t *testing.T) {
	q, err := alfq.NewQueue[int](4)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := q.Enqueue(nil); n != 0 || err != nil {
		t.Fatalf("Enqueue(nil): got (%d, %v), want (0, nil)", n, err)
	}
	if n := q.Dequeue(nil); n != 0 {
		t.Fatalf("Dequeue(nil): got %d, want 0", n)
	}
}

// TestWraparound cycles a small ring many times so every slot is reused,
// under both transfer strategies.
func TestWraparound(t *testing.T) {
	for _, tt := range []struct {
		name    string
		builder *alfq.Builder
	}{
		{"masked", alfq.New(8)},
		{"wrapcheck", alfq.New(8).WrapCheck()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			q, err := alfq.Build[int](tt.builder)
			if err != nil {
				t.Fatal(err)
			}

			next := 0
			out := make([]int, 3)
			for range 1000 {
				in := []int{next, next + 1, next + 2}
				if _, err := q.Enqueue(in); err != nil {
					t.Fatalf("Enqueue at %d: %v", next, err)
				}
				if n := q.Dequeue(out); n != 3 {
					t.Fatalf("Dequeue at %d: got %d, want 3", next, n)
				}
				for i := range out {
					if out[i] != next+i {
						t.Fatalf("value at %d[%d]: got %d, want %d", next, i, out[i], next+i)
					}
				}
				next += 3
			}
		})
	}
}

// =============================================================================
// Introspection
// =============================================================================

// TestIntrospectionInvariant verifies Len + Available == Cap in every
// quiescent state as the queue fills and drains.
func TestIntrospectionInvariant(t *testing.T) {
	q, err := alfq.NewQueue[int](16) // holds 15
	if err != nil {
		t.Fatal(err)
	}

	check := func(wantLen int) {
		t.Helper()
		if q.Len() != wantLen {
			t.Fatalf("Len: got %d, want %d", q.Len(), wantLen)
		}
		if q.Len()+q.Available() != q.Cap() {
			t.Fatalf("Len(%d) + Available(%d) != Cap(%d)", q.Len(), q.Available(), q.Cap())
		}
		if q.Empty() != (wantLen == 0) {
			t.Fatalf("Empty: got %v at Len %d", q.Empty(), wantLen)
		}
	}

	check(0)
	batch := []int{1, 2, 3}
	out := make([]int, 2)
	for i := 1; i <= 5; i++ {
		if _, err := q.Enqueue(batch); err != nil {
			t.Fatalf("Enqueue #%d: %v", i, err)
		}
		check(i * 3)
	}
	for remaining := 15; remaining > 0; {
		n := q.Dequeue(out)
		remaining -= n
		check(remaining)
	}
}

// =============================================================================
// Errors & Lifecycle
// =============================================================================

// TestErrorClassification verifies the iox delegation chain.
func TestErrorClassification(t *testing.T) {
	if !errors.Is(alfq.ErrCapacityExceeded, iox.ErrWouldBlock) {
		t.Error("ErrCapacityExceeded should wrap iox.ErrWouldBlock")
	}
	if !alfq.IsWouldBlock(alfq.ErrCapacityExceeded) {
		t.Error("IsWouldBlock(ErrCapacityExceeded): got false")
	}
	if !alfq.IsNonFailure(nil) {
		t.Error("IsNonFailure(nil): got false")
	}
	if !alfq.IsNonFailure(alfq.ErrCapacityExceeded) {
		t.Error("IsNonFailure(ErrCapacityExceeded): got false")
	}
	if alfq.IsWouldBlock(alfq.ErrInvalidCapacity) {
		t.Error("IsWouldBlock(ErrInvalidCapacity): got true")
	}
	if alfq.IsWouldBlock(alfq.ErrAllocationFailure) {
		t.Error("IsWouldBlock(ErrAllocationFailure): got true")
	}

	q, err := alfq.NewQueue[int](2) // holds 1
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Enqueue([]int{1}); err != nil {
		t.Fatal(err)
	}
	_, err = q.Enqueue([]int{2})
	if !errors.Is(err, alfq.ErrCapacityExceeded) {
		t.Fatalf("full Enqueue: got %v", err)
	}
	if !alfq.IsWouldBlock(err) {
		t.Fatalf("IsWouldBlock on full Enqueue error: got false")
	}
}

// TestClose verifies Close on an idle queue does not panic, including on
// a partially filled ring.
func TestClose(t *testing.T) {
	q, err := alfq.NewQueue[*int](8)
	if err != nil {
		t.Fatal(err)
	}
	v := 7
	if _, err := q.Enqueue([]*int{&v, &v}); err != nil {
		t.Fatal(err)
	}
	q.Close()

	empty, _ := alfq.NewQueue[int](8)
	empty.Close()
}

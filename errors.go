// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alfq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrCapacityExceeded reports that an enqueue batch did not fit in the
// space available at check time. The queue is left bit-for-bit unchanged;
// the caller may retry later or resubmit a smaller batch.
//
// ErrCapacityExceeded is backpressure, not a failure. It wraps
// [iox.ErrWouldBlock] for ecosystem consistency, so both
// errors.Is(err, iox.ErrWouldBlock) and [IsWouldBlock] recognize it.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    if _, err := q.Enqueue(batch); err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    backoff.Wait() // consumers need to drain first
//	}
var ErrCapacityExceeded = fmt.Errorf("alfq: capacity exceeded: %w", iox.ErrWouldBlock)

// ErrInvalidCapacity reports a requested capacity that is zero or
// negative. Fatal to construction; there is no queue to retry against.
var ErrInvalidCapacity = errors.New("alfq: invalid capacity")

// ErrAllocationFailure reports that the backing ring could not be
// obtained because the rounded size exceeds the addressable bound.
// Fatal to construction.
var ErrAllocationFailure = errors.New("alfq: allocation failure")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil and ErrCapacityExceeded; false for the
// construction errors. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"time"

	"code.hybscloud.com/alfq"
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// runScenario spawns the scenario's producers and consumers against one
// queue, lets them run for the configured duration, then stops production
// and drains. Returns totals and the measured wall time.
func runScenario(sc Scenario) (produced, consumed int64, elapsed time.Duration, err error) {
	builder := alfq.New(sc.Capacity)
	if sc.WrapCheck {
		builder.WrapCheck()
	}
	q, err := builder.BuildIndirect()
	if err != nil {
		return 0, 0, 0, err
	}
	defer q.Close()

	var totalProduced, totalConsumed atomix.Int64
	var productionDone, draining atomix.Bool

	start := time.Now()

	var prodWg sync.WaitGroup
	for range sc.Producers {
		prodWg.Add(1)
		go func() {
			defer prodWg.Done()
			batch := make([]uintptr, sc.Batch)
			backoff := iox.Backoff{}
			for !productionDone.LoadAcquire() {
				seq := uintptr(totalProduced.Load())
				for i := range batch {
					batch[i] = seq + uintptr(i)
				}
				if n, err := q.Enqueue(batch); err == nil {
					totalProduced.Add(int64(n))
					backoff.Reset()
				} else {
					backoff.Wait()
				}
			}
		}()
	}

	var consWg sync.WaitGroup
	for range sc.Consumers {
		consWg.Add(1)
		go func() {
			defer consWg.Done()
			out := make([]uintptr, sc.Batch)
			backoff := iox.Backoff{}
			for {
				n := q.Dequeue(out)
				if n > 0 {
					totalConsumed.Add(int64(n))
					backoff.Reset()
					continue
				}
				// Producers gone and queue drained: done. The draining
				// flag is only set after every producer has returned, so
				// no publication can follow a true Empty here.
				if draining.LoadAcquire() && q.Empty() {
					return
				}
				backoff.Wait()
			}
		}()
	}

	time.Sleep(sc.duration)
	productionDone.StoreRelease(true)
	prodWg.Wait()
	draining.StoreRelease(true)
	consWg.Wait()

	return totalProduced.Load(), totalConsumed.Load(), time.Since(start), nil
}

// Package parallel splits index ranges across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// Chunks divides [0, items) into at most workers contiguous, non-empty
// ranges of near-equal size (ceiling division). workers <= 0 means
// runtime.NumCPU().
func Chunks(items, workers int) [][2]int {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	size := (items + workers - 1) / workers
	chunks := make([][2]int, 0, workers)
	for start := 0; start < items; start += size {
		end := start + size
		if end > items {
			end = items
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// Run calls fn once per chunk of [0, items), concurrently, and waits for all
// of them. When items <= threshold fn(0, items) runs on the calling goroutine.
// fn must only touch state owned by its own range.
//
// A panic in any chunk is re-raised on the calling goroutine after every
// chunk has returned, so a deferred recover in the caller sees it.
func Run(items, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		panicked bool
		value    interface{}
	)
	for _, c := range Chunks(items, 0) {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() {
						panicked = true
						value = r
					})
				}
			}()
			fn(s, e)
		}(c[0], c[1])
	}
	wg.Wait()

	if panicked {
		panic(value)
	}
}

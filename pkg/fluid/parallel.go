package fluid

import (
	"runtime"
	"sync"
)

// parallelRange executes fn for each i in [start,end), splitting the range
// among available CPUs. Stages call it with sweeps that read only current
// buffers and write only next buffers, so rows never contend; the final
// wait is the stage barrier required before any buffer swap.
func parallelRange(start, end int, fn func(i int)) {
	total := end - start
	if total <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	chunk := (total + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := start; lo < end; lo += chunk {
		hi := lo + chunk
		if hi > end {
			hi = end
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

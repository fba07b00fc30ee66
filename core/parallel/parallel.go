// Package parallel provides the bounded worker pool used to fan out
// independent tasks such as per-fold evaluations.
package parallel

import (
	"runtime"
	"sync"
)

// Run executes n tasks with at most degree of them in flight at once.
// degree 1 runs the tasks synchronously on the calling goroutine; the two
// paths share the same task closures and the same error collection, so a
// sequential run is numerically identical to a parallel one. degree <= 0
// means one worker per CPU core.
//
// Every task is started and joined before Run returns; the first non-nil
// error in submission order is returned. Tasks share no state through the
// pool itself.
func Run(n, degree int, task func(i int) error) error {
	if n == 0 {
		return nil
	}
	if degree <= 0 {
		degree = runtime.NumCPU()
	}
	if degree > n {
		degree = n
	}

	errs := make([]error, n)

	if degree == 1 {
		for i := 0; i < n; i++ {
			errs[i] = task(i)
		}
	} else {
		sem := make(chan struct{}, degree)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				errs[i] = task(i)
			}(i)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

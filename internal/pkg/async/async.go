package async

import "sync"

// Errable runs fn in its own goroutine and exposes its result as a channel
// that yields exactly once.
func Errable(fn func() error) <-chan error {
	ch := make(chan error)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}

// WaitAll waits for all the given errables to finish, and returns the last
// error occurred in all errables, if any.
func WaitAll(chans ...<-chan error) error {
	var wg sync.WaitGroup
	wg.Add(len(chans))

	var mu sync.Mutex
	var lastErr error
	for _, ch := range chans {
		go func(ch <-chan error) {
			defer wg.Done()
			if err, open := <-ch; open && err != nil {
				mu.Lock()
				lastErr = err
				mu.Unlock()
			}
		}(ch)
	}

	wg.Wait()
	return lastErr
}

package timerq

import "sync"

// DoneChan is closed exactly once to signal that some background activity
// has finished.
type DoneChan chan struct{}

// WrapWaitGroup returns a DoneChan closed once wg.Wait returns. The
// supervisor uses this to wait for a set of concurrently-terminated
// worker processes without blocking on them one at a time.
func WrapWaitGroup(wg *sync.WaitGroup) DoneChan {
	ret := make(DoneChan)
	go func() {
		wg.Wait()
		close(ret)
	}()
	return ret
}

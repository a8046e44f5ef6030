package state

import "sync"

// optimistic runs a store mutation with snapshot-revert semantics: capture
// the pre-state and apply the local change under the lock, run the network
// call unlocked, and restore the snapshot verbatim when the backend rejects
// the call. The error is returned unchanged for the caller to display.
func optimistic[S any](mu *sync.Mutex, snapshot func() S, apply func(), call func() error, restore func(S)) error {
	mu.Lock()
	before := snapshot()
	apply()
	mu.Unlock()

	if err := call(); err != nil {
		mu.Lock()
		restore(before)
		mu.Unlock()
		return err
	}
	return nil
}

package services

import "sync"

// workerLocks hands out one mutex per worker so state changes for the same
// worker run one at a time while different workers proceed in parallel.
type workerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newWorkerLocks() *workerLocks {
	return &workerLocks{locks: make(map[string]*sync.Mutex)}
}

// lock blocks until workerID's mutex is held and returns its release func.
func (w *workerLocks) lock(workerID string) func() {
	w.mu.Lock()
	m, ok := w.locks[workerID]
	if !ok {
		m = &sync.Mutex{}
		w.locks[workerID] = m
	}
	w.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package usecase

import "sync"

// tripleLock hands out one mutex per key. Entries are reference counted and
// dropped once nobody holds or waits on them.
type tripleLock struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newTripleLock() *tripleLock {
	return &tripleLock{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns the function that releases it
func (l *tripleLock) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &refMutex{}
		l.locks[key] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *tripleLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

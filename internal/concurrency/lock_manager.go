package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key, so each farm session has a single writer
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the mutex for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// Forget drops the mutex for a key that will never be used again.
// Callers must not hold the lock.
func (lm *LockManager) Forget(key string) {
	lm.locks.Delete(key)
}

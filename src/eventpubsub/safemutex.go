package eventpubsub

import (
	"sync"
)

// SafeMutex serializes the event callbacks and the refresh cycle that share
// a worker's state, and exposes whether it is currently held.
type SafeMutex struct {
	m      sync.Mutex
	locked bool
}

func (sm *SafeMutex) Lock() {
	sm.m.Lock()
	sm.locked = true
}

func (sm *SafeMutex) Unlock() {
	sm.locked = false
	sm.m.Unlock()
}

func (sm *SafeMutex) IsLocked() bool {
	return sm.locked
}

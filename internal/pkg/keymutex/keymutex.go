// Package keymutex provides per-key mutual exclusion.
//
// The tracker mutates one character's counters per event with a
// read-modify-write against the store. Locking per character makes the
// at-most-one-concurrent-mutation-per-character property explicit while
// letting events for different characters interleave freely.
package keymutex

import "sync"

// KeyMutex serializes operations per string key.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use. Locks are
// never garbage-collected; the key space (tracked characters) is small.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for key. Unlock of a never-locked key panics,
// same as sync.Mutex.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		panic("keymutex: unlock of unknown key " + key)
	}
	m.Unlock()
}

// Package kmutex provides per-key mutual exclusion so operations on
// different entities proceed concurrently while operations on the same
// entity are serialized.
package kmutex

import (
	"sort"
	"sync"
)

// KeyedMutex hands out one mutex per key. Mutexes are created lazily
// and retained for the process lifetime; the key space here (players,
// empires, cells) is small enough that reclamation is not worth it.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key and returns its unlock function
func (k *KeyedMutex) Lock(key string) func() {
	m := k.get(key)
	m.Lock()
	return m.Unlock
}

// LockPair acquires the mutexes for two keys in lexicographic order,
// so concurrent cross-entity operations touching the same pair cannot
// deadlock. Locking the same key twice would self-deadlock, so equal
// keys take a single lock.
func (k *KeyedMutex) LockPair(a, b string) func() {
	return k.LockAll(a, b)
}

// LockAll acquires the mutexes for every key in lexicographic order,
// deduplicating first. Used by operations spanning more than two
// entities, like empire dissolution touching each ally.
func (k *KeyedMutex) LockAll(keys ...string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if !seen[key] {
			seen[key] = true
			unique = append(unique, key)
		}
	}
	sort.Strings(unique)

	locked := make([]*sync.Mutex, 0, len(unique))
	for _, key := range unique {
		m := k.get(key)
		m.Lock()
		locked = append(locked, m)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

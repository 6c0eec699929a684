// Package blackboard provides the shared key/value state read and written by
// leaves of a behavior tree.
package blackboard

import (
	"maps"
	"slices"
	"sync"
)

// Blackboard is a goroutine-safe key/value store.
//
// The zero value is ready to use; the internal map is allocated on the first
// write. Tree nodes are ticked from a single goroutine, but the blackboard is
// typically also read by whatever is observing the tree (a driver callback,
// a UI), hence the locking.
type Blackboard struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns a blackboard pre-populated with initial, which is copied.
func New(initial map[string]any) *Blackboard {
	b := new(Blackboard)
	if len(initial) != 0 {
		b.data = maps.Clone(initial)
	}
	return b
}

// Get returns the value for key, or nil.
func (b *Blackboard) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data[key]
}

// Lookup returns the value for key and whether it was present.
func (b *Blackboard) Lookup(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok
}

// Set stores value under key.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = value
}

// Update atomically replaces the value for key with fn(old, present).
func (b *Blackboard) Update(key string, fn func(old any, present bool) any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		b.data = make(map[string]any)
	}
	old, ok := b.data[key]
	b.data[key] = fn(old, ok)
}

// Has reports whether key is present.
func (b *Blackboard) Has(key string) bool {
	_, ok := b.Lookup(key)
	return ok
}

// Delete removes key.
func (b *Blackboard) Delete(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
}

// Keys returns all keys, sorted.
func (b *Blackboard) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Sorted(maps.Keys(b.data))
}

// Len returns the number of keys.
func (b *Blackboard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Clear removes all keys.
func (b *Blackboard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.data)
}

// Snapshot returns a shallow copy of the contents. It is never nil.
//
// Values are not copied, so mutable values (slices, maps, pointers) are
// shared with the blackboard.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]any, len(b.data))
	maps.Copy(out, b.data)
	return out
}

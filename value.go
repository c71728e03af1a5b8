package gesture

import "sync"

type watcher[T any] struct {
	id uint32
	fn func(T)
}

// Value is a read-only live value. Readers call Get or Watch; only the
// package that owns it can write. Watchers run synchronously on the writing
// goroutine, after the new value is visible to Get.
type Value[T comparable] struct {
	mu       sync.RWMutex
	v        T
	watchers []watcher[T]
	nextID   uint32
}

// WatchHandle allows removing a watcher registered with Value.Watch.
type WatchHandle struct {
	remove func()
}

// Remove stops further notifications. Safe to call more than once.
func (h WatchHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Watch registers fn to be called with every new value. Writes that leave
// the value unchanged do not notify.
func (v *Value[T]) Watch(fn func(T)) WatchHandle {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.watchers = append(v.watchers, watcher[T]{id: id, fn: fn})
	return WatchHandle{remove: func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i := range v.watchers {
			if v.watchers[i].id == id {
				v.watchers = append(v.watchers[:i], v.watchers[i+1:]...)
				return
			}
		}
	}}
}

// set stores x and notifies watchers when it differs from the old value.
func (v *Value[T]) set(x T) {
	v.mu.Lock()
	if v.v == x {
		v.mu.Unlock()
		return
	}
	v.v = x
	snapshot := make([]watcher[T], len(v.watchers))
	copy(snapshot, v.watchers)
	v.mu.Unlock()

	for _, w := range snapshot {
		w.fn(x)
	}
}

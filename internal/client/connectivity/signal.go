// Package connectivity tracks whether the remote is reachable.
package connectivity

import "sync"

// Listener is called with the new state after every transition
type Listener func(online bool)

// Signal is a boolean online/offline state with change notification.
// Listeners run synchronously in the goroutine that caused the transition and
// only when the state actually changes.
type Signal struct {
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
	mu        sync.RWMutex
	online    bool
}

// NewSignal creates a signal in the given initial state
func NewSignal(online bool) *Signal {
	return &Signal{
		online:    online,
		listeners: make(map[uint64]Listener),
	}
}

// IsOnline returns the current state
func (s *Signal) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.online
}

// Set updates the state and notifies listeners if it changed. Returns whether
// a transition happened.
func (s *Signal) Set(online bool) bool {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return false
	}
	s.online = online

	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(online)
	}
	return true
}

// Subscribe registers a listener and returns a function removing it
func (s *Signal) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

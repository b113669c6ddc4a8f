package arghelper

import "sync"

// Store caches default argument lists per function name. A cached list is
// processed before the caller's explicit arguments, so explicit arguments
// override it. The zero Store is not usable; create one with NewStore and
// inject it with the Defaults option.
type Store struct {
	mu      sync.RWMutex
	fundefs map[string][]any
}

func NewStore() *Store {
	return &Store{fundefs: make(map[string][]any)}
}

// Set replaces the default argument list for the named function.
func (s *Store) Set(fn string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fundefs[fn] = append([]any(nil), args...)
}

// Get returns a copy of the default argument list for the named function,
// or nil when none was set.
func (s *Store) Get(fn string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]any(nil), s.fundefs[fn]...)
}

// All returns a copy of every stored default list, keyed by function name.
func (s *Store) All() map[string][]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make(map[string][]any, len(s.fundefs))
	for fn, args := range s.fundefs {
		all[fn] = append([]any(nil), args...)
	}
	return all
}

// Clear drops every stored default list.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fundefs = make(map[string][]any)
}

package config

import (
	"maps"
	"slices"
)

// HeaderStore maps dotted paths to header text. The empty path holds the
// document header. It is independent of the value tree: a header may exist
// for a path that has no value, and it is kept until removed.
type HeaderStore struct {
	headers map[string]string
}

// NewHeaderStore creates an empty store.
func NewHeaderStore() *HeaderStore {
	return &HeaderStore{headers: make(map[string]string)}
}

// Set stores text for path. Empty text removes the header.
func (s *HeaderStore) Set(path, text string) {
	if text == "" {
		delete(s.headers, path)
		return
	}
	s.headers[path] = text
}

// Get returns the header stored for path.
func (s *HeaderStore) Get(path string) (string, bool) {
	text, ok := s.headers[path]
	return text, ok
}

// Add appends one line to the header of path.
func (s *HeaderStore) Add(path, line string) {
	if existing, ok := s.headers[path]; ok {
		s.headers[path] = existing + "\n" + line
		return
	}
	s.Set(path, line)
}

// Remove deletes the header of path.
func (s *HeaderStore) Remove(path string) {
	delete(s.headers, path)
}

// Paths returns every path with a header, sorted.
func (s *HeaderStore) Paths() []string {
	return slices.Sorted(maps.Keys(s.headers))
}

// Len returns the number of stored headers.
func (s *HeaderStore) Len() int {
	return len(s.headers)
}

// Clear removes every header.
func (s *HeaderStore) Clear() {
	clear(s.headers)
}

// Clone returns an independent copy.
func (s *HeaderStore) Clone() *HeaderStore {
	return &HeaderStore{headers: maps.Clone(s.headers)}
}

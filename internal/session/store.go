// Package session supplies the authenticated identity and owns bearer
// credential storage. The rest of the client treats it as an injected
// collaborator; nothing else reads or writes the token.
package session

import (
	"errors"
	"sync"
)

// ErrNoToken indicates no credential is stored.
var ErrNoToken = errors.New("no credential stored")

// Store holds the bearer credential with explicit get/set/clear and change
// notification, instead of ambient global state.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
	OnChange(fn func(token string))
}

// MemoryStore is a process-local Store, used by tests and by runs that do
// not persist credentials.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	listeners []func(string)
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	s.token = token
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(token)
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Set("")
}

func (s *MemoryStore) OnChange(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// TokenSource adapts a Store to the gateway's read-only credential view.
type TokenSource struct {
	Store Store
}

// Token returns the stored credential and whether one is present.
func (ts TokenSource) Token() (string, bool) {
	token, err := ts.Store.Get()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

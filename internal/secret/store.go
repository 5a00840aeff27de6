package secret

import (
	"log"
	"sync"
)

// Credential is a stored SMB login
type Credential struct {
	Domain   string
	User     string
	Password string
}

// Store abstracts a secure credentials store (e.g., OS keyring).
// Implementations should be safe to call from multiple goroutines.
type Store interface {
	Get(host, share string) (Credential, bool, error)
	Set(host, share string, c Credential) error
	Delete(host, share string) error
}

// Open returns the OS keyring store, or an in-memory store when no keyring
// backend is available on this machine.
func Open() Store {
	s, err := NewKeyringStore()
	if err != nil {
		log.Printf("Keyring unavailable, credentials will not persist: %v", err)
		return NewMemoryStore()
	}
	return s
}

// MemoryStore keeps credentials for the lifetime of the process only
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Credential
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Credential)}
}

func (m *MemoryStore) Get(host, share string) (Credential, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.items[makeKey(host, share)]
	return c, ok, nil
}

func (m *MemoryStore) Set(host, share string, c Credential) error {
	m.mu.Lock()
	m.items[makeKey(host, share)] = c
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(host, share string) error {
	m.mu.Lock()
	delete(m.items, makeKey(host, share))
	m.mu.Unlock()
	return nil
}

package fileinfo

import (
	"strings"
	"sync"

	"fexp/internal/secret"
)

// Credentials represents SMB authentication parameters.
type Credentials struct {
	Domain   string
	Username string
	Password string
}

func (c Credentials) empty() bool {
	return c.Username == "" && c.Password == "" && c.Domain == ""
}

// CredentialStore resolves SMB credentials per host/share.
// Lookup order is the in-memory session cache, then the secret store.
type CredentialStore struct {
	mu     sync.RWMutex
	cache  map[string]Credentials
	secret secret.Store
}

// NewCredentialStore creates a store backed by s; s may be nil for memory only.
func NewCredentialStore(s secret.Store) *CredentialStore {
	return &CredentialStore{cache: make(map[string]Credentials), secret: s}
}

func credKey(host, share string) string { return strings.ToLower(host) + "\x00" + share }

// Get returns cached or persisted credentials; zero Credentials means anonymous.
func (cs *CredentialStore) Get(host, share string) Credentials {
	cs.mu.RLock()
	c, ok := cs.cache[credKey(host, share)]
	cs.mu.RUnlock()
	if ok {
		return c
	}
	if cs.secret == nil {
		return Credentials{}
	}
	stored, found, err := cs.secret.Get(host, share)
	if err != nil || !found {
		return Credentials{}
	}
	c = Credentials{Domain: stored.Domain, Username: stored.User, Password: stored.Password}
	cs.Put(host, share, c)
	return c
}

// Put seeds session credentials (e.g., from a URL)
func (cs *CredentialStore) Put(host, share string, c Credentials) {
	if c.empty() {
		return
	}
	cs.mu.Lock()
	cs.cache[credKey(host, share)] = c
	cs.mu.Unlock()
}

// Persist saves credentials that just authenticated successfully
func (cs *CredentialStore) Persist(host, share string, c Credentials) error {
	if cs.secret == nil || c.empty() {
		return nil
	}
	return cs.secret.Set(host, share, secret.Credential{Domain: c.Domain, User: c.Username, Password: c.Password})
}

// Forget removes credentials after an authentication failure
func (cs *CredentialStore) Forget(host, share string) {
	cs.mu.Lock()
	delete(cs.cache, credKey(host, share))
	cs.mu.Unlock()
	if cs.secret != nil {
		_ = cs.secret.Delete(host, share)
	}
}

package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "fexp.smb"

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore tries to open the OS keyring via 99designs/keyring.
// If it fails, returns an error so callers can fallback to memory.
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: serviceName})
	if err != nil {
		return nil, err
	}
	return &keyringStore{ring: r}, nil
}

func makeKey(host, share string) string { return fmt.Sprintf("%s|%s", strings.ToLower(host), share) }

func (s *keyringStore) Get(host, share string) (Credential, bool, error) {
	item, err := s.ring.Get(makeKey(host, share))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Credential{}, false, nil
		}
		return Credential{}, false, err
	}
	return Credential{
		Domain:   decodeDomain(item.Description),
		User:     decodeUser(item.Description),
		Password: string(item.Data),
	}, true, nil
}

func (s *keyringStore) Set(host, share string, c Credential) error {
	return s.ring.Set(keyring.Item{
		Key:         makeKey(host, share),
		Data:        []byte(c.Password),
		Description: encodeAccount(c.Domain, c.User),
		Label:       serviceName + " " + host + "/" + share,
	})
}

func (s *keyringStore) Delete(host, share string) error {
	err := s.ring.Remove(makeKey(host, share))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Account is stored in the item description as "domain\user" or "user".
func encodeAccount(domain, user string) string {
	if domain == "" {
		return user
	}
	return domain + `\` + user
}

func decodeDomain(desc string) string {
	if i := strings.IndexAny(desc, `\;`); i >= 0 {
		return desc[:i]
	}
	return ""
}

func decodeUser(desc string) string {
	if i := strings.IndexAny(desc, `\;`); i >= 0 {
		return desc[i+1:]
	}
	return desc
}

package fileinfo

import (
	"testing"

	"fexp/internal/secret"
)

func TestCredentialStoreLookupOrder(t *testing.T) {
	mem := secret.NewMemoryStore()
	if err := mem.Set("nas", "docs", secret.Credential{User: "stored", Password: "s"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cs := NewCredentialStore(mem)

	got := cs.Get("nas", "docs")
	if got.Username != "stored" {
		t.Errorf("Expected credentials from secret store, got %+v", got)
	}

	cs.Put("nas", "docs", Credentials{Username: "session", Password: "x"})
	if got := cs.Get("NAS", "docs"); got.Username != "session" {
		t.Errorf("Expected session cache to win, got %+v", got)
	}
}

func TestCredentialStoreForget(t *testing.T) {
	mem := secret.NewMemoryStore()
	cs := NewCredentialStore(mem)
	c := Credentials{Domain: "W", Username: "u", Password: "p"}

	cs.Put("h", "s", c)
	if err := cs.Persist("h", "s", c); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, found, _ := mem.Get("h", "s"); !found {
		t.Fatal("Expected credentials to be persisted")
	}

	cs.Forget("h", "s")
	if got := cs.Get("h", "s"); !got.empty() {
		t.Errorf("Expected anonymous credentials after Forget, got %+v", got)
	}
}

func TestCredentialStoreWithoutSecret(t *testing.T) {
	cs := NewCredentialStore(nil)
	if got := cs.Get("h", "s"); !got.empty() {
		t.Errorf("Expected anonymous credentials, got %+v", got)
	}
	if err := cs.Persist("h", "s", Credentials{Username: "u"}); err != nil {
		t.Errorf("Persist without secret store should be a no-op, got %v", err)
	}
}

package fileinfo

import (
	"io"
	"strings"
	"sync"

	apperrors "fexp/internal/errors"
)

// Router dispatches each call to the local filesystem or to an SMB provider
// chosen by the path's host and share.
type Router struct {
	local FileSystem
	creds *CredentialStore

	mu     sync.Mutex
	remote map[string]FileSystem
}

// NewRouter creates a router over LocalFS and on-demand SMB providers
func NewRouter(creds *CredentialStore) *Router {
	if creds == nil {
		creds = NewCredentialStore(nil)
	}
	return &Router{local: LocalFS{}, creds: creds, remote: make(map[string]FileSystem)}
}

// Normalize cleans a user-supplied path. For smb:// paths, credentials in the
// URL are moved into the credential store and dropped from the returned path.
func (r *Router) Normalize(p string) string {
	parsed, ok := ParseSMBPath(p)
	if !ok {
		return CleanPath(p)
	}
	r.creds.Put(parsed.Host, parsed.Share, Credentials{
		Domain:   parsed.Domain,
		Username: parsed.User,
		Password: parsed.Password,
	})
	return parsed.Display()
}

// For returns the provider serving p
func (r *Router) For(p string) (FileSystem, error) {
	if !IsSMBDisplay(p) {
		return r.local, nil
	}
	parsed, ok := ParseSMBPath(p)
	if !ok {
		return nil, apperrors.NewInvalidArgumentError("resolve", p, "smb path needs a host and a share")
	}
	key := strings.ToLower(parsed.Host) + "/" + parsed.Share
	r.mu.Lock()
	defer r.mu.Unlock()
	fs, ok := r.remote[key]
	if !ok {
		fs = NewSMBFS(parsed.Host, parsed.Share, r.creds)
		r.remote[key] = fs
	}
	return fs, nil
}

func (r *Router) ListDirectory(p string) ([]DirEntry, error) {
	fs, err := r.For(p)
	if err != nil {
		return nil, err
	}
	return fs.ListDirectory(p)
}

func (r *Router) Rename(oldPath, newPath string) error {
	if IsSMBDisplay(oldPath) != IsSMBDisplay(newPath) {
		return apperrors.NewInvalidArgumentError("rename", oldPath, "cannot rename across filesystems")
	}
	fs, err := r.For(oldPath)
	if err != nil {
		return err
	}
	return fs.Rename(oldPath, newPath)
}

func (r *Router) Delete(p string) error {
	fs, err := r.For(p)
	if err != nil {
		return err
	}
	return fs.Delete(p)
}

func (r *Router) Open(p string) (io.ReadCloser, error) {
	fs, err := r.For(p)
	if err != nil {
		return nil, err
	}
	return fs.Open(p)
}

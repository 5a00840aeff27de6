package fileinfo

import (
	"io"
	iofs "io/fs"
	"net"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	apperrors "fexp/internal/errors"
)

const smbDialTimeout = 5 * time.Second

// SMBFS implements FileSystem for direct SMB access to one host/share.
// Paths are smb:// display paths; every call opens its own session.
type SMBFS struct {
	host  string
	share string
	creds *CredentialStore
}

// NewSMBFS creates a provider for host/share resolving logins through creds
func NewSMBFS(host, share string, creds *CredentialStore) *SMBFS {
	if creds == nil {
		creds = NewCredentialStore(nil)
	}
	return &SMBFS{host: host, share: share, creds: creds}
}

// mount dials the host and mounts the share. The returned release func
// unmounts, logs off and closes the connection.
func (s *SMBFS) mount() (*smb2.Share, func(), error) {
	c := s.creds.Get(s.host, s.share)
	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     c.Username,
			Password: c.Password,
			Domain:   c.Domain,
		},
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(s.host, "445"), smbDialTimeout)
	if err != nil {
		return nil, nil, err
	}

	sess, err := d.Dial(conn)
	if err != nil {
		conn.Close()
		if isAuthError(err) {
			s.creds.Forget(s.host, s.share)
		}
		return nil, nil, err
	}

	share, err := sess.Mount(s.share)
	if err != nil {
		sess.Logoff()
		conn.Close()
		if isAuthError(err) {
			s.creds.Forget(s.host, s.share)
		}
		return nil, nil, err
	}

	// Persist credentials after a successful mount
	_ = s.creds.Persist(s.host, s.share, c)

	release := func() {
		share.Umount()
		sess.Logoff()
		conn.Close()
	}
	return share, release, nil
}

// relPath maps a display path to the share-relative name go-smb2 expects
func (s *SMBFS) relPath(op, p string) (string, error) {
	parsed, ok := ParseSMBPath(p)
	if !ok || !strings.EqualFold(parsed.Host, s.host) || parsed.Share != s.share {
		return "", apperrors.NewInvalidArgumentError(op, p, "path is not on "+s.host+"/"+s.share)
	}
	return parsed.Rel, nil
}

func (s *SMBFS) ListDirectory(p string) ([]DirEntry, error) {
	rel, err := s.relPath("list_directory", p)
	if err != nil {
		return nil, err
	}
	share, release, err := s.mount()
	if err != nil {
		return nil, classifySMB("list_directory", p, err)
	}
	defer release()

	fis, err := share.ReadDir(rel)
	if err != nil {
		return nil, classifySMB("list_directory", p, err)
	}
	out := make([]DirEntry, 0, len(fis))
	for _, fi := range fis {
		name := fi.Name()
		if name == "." || name == ".." {
			continue
		}
		out = append(out, DirEntry{Name: name, IsDir: fi.IsDir()})
	}
	return out, nil
}

func (s *SMBFS) Rename(oldPath, newPath string) error {
	oldRel, err := s.relPath("rename", oldPath)
	if err != nil {
		return err
	}
	newRel, err := s.relPath("rename", newPath)
	if err != nil {
		return err
	}
	share, release, err := s.mount()
	if err != nil {
		return classifySMB("rename", oldPath, err)
	}
	defer release()

	if _, err := share.Lstat(newRel); err == nil && !strings.EqualFold(oldRel, newRel) {
		return apperrors.NewFileSystemError(apperrors.ErrorTypeAlreadyExists, "rename", newPath,
			"destination already exists", iofs.ErrExist)
	}
	if err := share.Rename(oldRel, newRel); err != nil {
		return classifySMB("rename", oldPath, err)
	}
	return nil
}

func (s *SMBFS) Delete(p string) error {
	rel, err := s.relPath("delete", p)
	if err != nil {
		return err
	}
	if rel == "" {
		return apperrors.NewInvalidArgumentError("delete", p, "refusing to delete a share root")
	}
	share, release, err := s.mount()
	if err != nil {
		return classifySMB("delete", p, err)
	}
	defer release()

	fi, err := share.Lstat(rel)
	if err != nil {
		return classifySMB("delete", p, err)
	}
	if fi.IsDir() {
		err = share.RemoveAll(rel)
	} else {
		err = share.Remove(rel)
	}
	if err != nil {
		return classifySMB("delete", p, err)
	}
	return nil
}

// Open keeps the session alive until the returned file is closed.
// The file also implements io.ReaderAt and io.Seeker.
func (s *SMBFS) Open(p string) (io.ReadCloser, error) {
	rel, err := s.relPath("open", p)
	if err != nil {
		return nil, err
	}
	share, release, err := s.mount()
	if err != nil {
		return nil, classifySMB("open", p, err)
	}
	f, err := share.Open(rel)
	if err != nil {
		release()
		return nil, classifySMB("open", p, err)
	}
	return &smbFile{File: f, release: release}, nil
}

type smbFile struct {
	*smb2.File
	release func()
}

func (f *smbFile) Close() error {
	err := f.File.Close()
	f.release()
	return err
}

// classifySMB maps go-smb2 errors onto the explorer's error taxonomy.
// go-smb2 wraps NT status codes in *os.PathError values that already satisfy
// the io/fs sentinels; authentication failures are reported as permission errors.
func classifySMB(op, p string, err error) error {
	if isAuthError(err) {
		return apperrors.NewFileSystemError(apperrors.ErrorTypePermissionDenied, op, p, err.Error(), err)
	}
	return apperrors.FromOS(op, p, err)
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	// Common indicators from Windows/SMB servers
	return strings.Contains(e, "logon is invalid") ||
		strings.Contains(e, "bad username") ||
		strings.Contains(e, "authentication") ||
		strings.Contains(e, "status_logon_failure") ||
		strings.Contains(e, "access is denied")
}

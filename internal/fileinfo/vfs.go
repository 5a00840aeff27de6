package fileinfo

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	apperrors "fexp/internal/errors"
)

// LocalFS implements FileSystem using the host OS.
type LocalFS struct{}

// ListDirectory reads the direct children of path.
// Symlinks are resolved so a link to a directory lists as a directory but is
// never descended into; broken links list as files. Entries are returned in name
// order, the same order os.ReadDir uses.
func (LocalFS) ListDirectory(path string) ([]DirEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.FromOS("list_directory", path, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewFileSystemError(apperrors.ErrorTypeIO, "list_directory", path, "not a directory", nil)
	}

	var (
		result  []DirEntry
		mu      sync.Mutex
		rootErr error
	)

	conf := &fastwalk.Config{
		Follow: false,
	}

	// fastwalk does not descend through a symlinked root unless told to follow
	root := path
	if linfo, err := os.Lstat(path); err == nil && linfo.Mode()&iofs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			root = resolved
		}
	}
	pathLen := len(root)

	err = fastwalk.Walk(conf, root, func(fullPath string, d iofs.DirEntry, err error) error {
		if err != nil {
			if fullPath == root {
				mu.Lock()
				rootErr = err
				mu.Unlock()
				return err
			}
			return nil // unreadable child, skip it
		}

		if fullPath == root {
			return nil
		}

		// Only direct children: the remainder after the root has no separator
		relStart := pathLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		if strings.ContainsAny(fullPath[relStart:], "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		isDir := d.IsDir()
		if d.Type()&iofs.ModeSymlink != 0 {
			if fi, err := fastwalk.StatDirEntry(fullPath, d); err == nil {
				isDir = fi.IsDir()
			}
		}

		mu.Lock()
		result = append(result, DirEntry{Name: d.Name(), IsDir: isDir})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	if rootErr != nil {
		return nil, apperrors.FromOS("list_directory", path, rootErr)
	}
	if err != nil {
		return nil, apperrors.FromOS("list_directory", path, err)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Rename renames oldPath to newPath without ever replacing an existing entry.
// A target that is the same file as the source (a case-only rename on a
// case-insensitive filesystem) is allowed.
func (LocalFS) Rename(oldPath, newPath string) error {
	oldInfo, err := os.Lstat(oldPath)
	if err != nil {
		return apperrors.FromOS("rename", oldPath, err)
	}
	if newInfo, err := os.Lstat(newPath); err == nil {
		if !os.SameFile(oldInfo, newInfo) {
			return apperrors.NewFileSystemError(apperrors.ErrorTypeAlreadyExists, "rename", newPath,
				"destination already exists", iofs.ErrExist)
		}
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return apperrors.FromOS("rename", oldPath, err)
	}
	return nil
}

// Delete removes a file or directory (recursively for directories).
// Symlinks are removed themselves, never their targets.
func (LocalFS) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return apperrors.FromOS("delete", path, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return apperrors.FromOS("delete", path, err)
	}
	return nil
}

// Open opens a local file for reading
func (LocalFS) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FromOS("open", path, err)
	}
	return f, nil
}

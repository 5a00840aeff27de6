package fileinfo

import (
	"io"
)

// Lister lists a single directory level.
// Errors are classified AppErrors (permission denied, not found, io).
type Lister interface {
	ListDirectory(path string) ([]DirEntry, error)
}

// Mutator performs the destructive primitives the explorer exposes.
// Rename must fail with an already-exists error rather than overwrite, and
// Delete removes directories recursively.
type Mutator interface {
	Rename(oldPath, newPath string) error
	Delete(path string) error
}

// Opener opens a file for reading (previews, archive extraction)
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// FileSystem abstracts all file system operations for better testability
type FileSystem interface {
	Lister
	Mutator
	Opener
}

// Ensure the providers implement FileSystem
var (
	_ FileSystem = LocalFS{}
	_ FileSystem = (*SMBFS)(nil)
	_ FileSystem = (*Router)(nil)
)

// Package archive extracts archive files into a local directory.
package archive

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"fexp/internal/errors"
	"fexp/internal/fileinfo"
)

// Extractor unpacks any format mholt/archives can identify.
// Archives are read through an Opener, so sources on SMB shares work;
// destinations must be local directories.
type Extractor struct {
	src        fileinfo.Opener
	debugPrint func(format string, args ...interface{})
}

// NewExtractor creates an extractor reading archives through src
func NewExtractor(src fileinfo.Opener, debugPrint func(format string, args ...interface{})) *Extractor {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &Extractor{src: src, debugPrint: debugPrint}
}

// Extract unpacks archivePath into dest. Existing files are overwritten.
// Entries that would land outside dest are rejected and abort the extraction.
func (x *Extractor) Extract(ctx context.Context, archivePath, dest string) error {
	if fileinfo.IsSMBDisplay(dest) {
		return errors.NewInvalidArgumentError("extract", dest, "extraction target must be a local directory")
	}
	info, err := os.Stat(dest)
	if err != nil {
		return errors.FromOS("extract", dest, err)
	}
	if !info.IsDir() {
		return errors.NewInvalidArgumentError("extract", dest, "extraction target is not a directory")
	}

	rc, err := x.src.Open(archivePath)
	if err != nil {
		return errors.FromOS("extract", archivePath, err)
	}
	defer rc.Close()

	format, stream, err := archives.Identify(ctx, fileinfo.BaseName(archivePath), rc)
	if err != nil {
		return errors.NewFileSystemError(errors.ErrorTypeIO, "extract", archivePath, "unrecognized archive format", err)
	}
	ex, ok := format.(archives.Extractor)
	if !ok {
		return errors.NewFileSystemError(errors.ErrorTypeIO, "extract", archivePath, "format cannot be extracted", nil)
	}

	x.debugPrint("archive: extracting %s (%T) into %s", archivePath, format, dest)
	count := 0
	err = ex.Extract(ctx, stream, func(ctx context.Context, f archives.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := x.target(dest, f.NameInArchive)
		if err != nil {
			return err
		}
		if err := x.writeEntry(f, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return err
		}
		return errors.NewFileSystemError(errors.ErrorTypeIO, "extract", archivePath, err.Error(), err)
	}
	x.debugPrint("archive: extracted %d entries from %s", count, archivePath)
	return nil
}

// target maps an in-archive name to a path inside dest
func (x *Extractor) target(dest, name string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if cleaned == "." {
		return dest, nil
	}
	if !fs.ValidPath(cleaned) {
		return "", errors.NewInvalidArgumentError("extract", name, "entry escapes the destination directory")
	}
	return filepath.Join(dest, filepath.FromSlash(cleaned)), nil
}

func (x *Extractor) writeEntry(f archives.FileInfo, target string) error {
	switch {
	case f.IsDir():
		if err := os.MkdirAll(target, 0755); err != nil {
			return errors.FromOS("extract", target, err)
		}
		return nil
	case f.Mode()&fs.ModeSymlink != 0 || f.LinkTarget != "":
		x.debugPrint("archive: skipping link %s -> %s", f.NameInArchive, f.LinkTarget)
		return nil
	case !f.Mode().IsRegular():
		x.debugPrint("archive: skipping special entry %s", f.NameInArchive)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.FromOS("extract", target, err)
	}
	in, err := f.Open()
	if err != nil {
		return errors.NewFileSystemError(errors.ErrorTypeIO, "extract", f.NameInArchive, "cannot read entry", err)
	}
	defer in.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.FromOS("extract", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.FromOS("extract", target, err)
	}
	if err := out.Close(); err != nil {
		return errors.FromOS("extract", target, err)
	}
	return nil
}

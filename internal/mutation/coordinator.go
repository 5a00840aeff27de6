// Package mutation performs rename, delete and archive extraction on a
// selected tree node and reconciles the engine's tree afterwards.
//
// Every operation reserves its node for the whole call; a failure from the
// filesystem leaves the tree untouched.
package mutation

import (
	"context"
	"fmt"
	"log"

	"fexp/internal/engine"
	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Extractor unpacks an archive into a directory
type Extractor interface {
	Extract(ctx context.Context, archivePath, dest string) error
}

// Coordinator applies filesystem mutations to nodes of an engine's tree
type Coordinator struct {
	engine     *engine.Engine
	fs         fileinfo.Mutator
	extractor  Extractor
	confirm    Confirmer
	debugPrint func(format string, args ...interface{})
}

// NewCoordinator wires the coordinator to its collaborators
func NewCoordinator(e *engine.Engine, fs fileinfo.Mutator, x Extractor, c Confirmer, debugPrint func(format string, args ...interface{})) *Coordinator {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &Coordinator{engine: e, fs: fs, extractor: x, confirm: c, debugPrint: debugPrint}
}

// Rename renames the entry of node id to newName.
// newName must be a single non-empty path segment. Collisions are reported
// by the filesystem as AlreadyExists.
func (c *Coordinator) Rename(id tree.NodeID, newName string) error {
	if !fileinfo.ValidName(newName) {
		return errors.NewInvalidArgumentError("rename", newName, "name must be non-empty and contain no path separators")
	}
	t, err := c.engine.Begin("rename", id)
	if err != nil {
		return err
	}
	defer c.engine.End(id)

	if t.IsRoot() {
		return errors.NewInvalidStateError("rename", t.Path, "the root folder cannot be renamed")
	}
	if newName == t.Entry.Name {
		return nil
	}

	newPath := fileinfo.JoinPath(t.ParentPath, newName)
	c.debugPrint("mutation: rename %s -> %s", t.Path, newPath)
	if err := c.fs.Rename(t.Path, newPath); err != nil {
		c.debugPrint("mutation: rename failed: %v", err)
		return errors.FromOS("rename", t.Path, err)
	}
	if err := c.engine.ApplyRename(id, newName); err != nil {
		return err
	}
	log.Printf("Renamed %s to %s", t.Path, newName)
	return nil
}

// Delete asks for confirmation and removes the entry of node id, recursively
// for directories. It reports false when the user declined.
func (c *Coordinator) Delete(id tree.NodeID) (bool, error) {
	t, err := c.engine.Begin("delete", id)
	if err != nil {
		return false, err
	}
	defer c.engine.End(id)

	if t.IsRoot() {
		return false, errors.NewInvalidStateError("delete", t.Path, "the root folder cannot be deleted")
	}
	if c.confirm == nil || !c.confirm.Confirm(deleteMessage(t)) {
		c.debugPrint("mutation: delete of %s declined", t.Path)
		return false, nil
	}

	c.debugPrint("mutation: delete %s", t.Path)
	if err := c.fs.Delete(t.Path); err != nil {
		c.debugPrint("mutation: delete failed: %v", err)
		return false, errors.FromOS("delete", t.Path, err)
	}
	if err := c.engine.ApplyDelete(id); err != nil {
		return true, err
	}
	log.Printf("Deleted %s", t.Path)
	return true, nil
}

func deleteMessage(t engine.Target) string {
	if t.Entry.IsDir() {
		return fmt.Sprintf("Delete folder %q and everything in it?", t.Entry.Name)
	}
	return fmt.Sprintf("Delete %q?", t.Entry.Name)
}

// ExtractArchive unpacks the archive of node id into dest.
// The tree is only touched when dest is a loaded directory of it.
func (c *Coordinator) ExtractArchive(ctx context.Context, id tree.NodeID, dest string) error {
	dest = fileinfo.CleanPath(dest)
	if dest == "" {
		return errors.NewInvalidArgumentError("extract", dest, "no destination chosen")
	}
	if c.extractor == nil {
		return errors.NewInvalidStateError("extract", dest, "archive extraction is not available")
	}
	t, err := c.engine.Begin("extract", id)
	if err != nil {
		return err
	}
	defer c.engine.End(id)

	if t.Entry.Kind != fileinfo.KindArchive {
		return errors.NewInvalidStateError("extract", t.Path, "not an archive")
	}

	c.debugPrint("mutation: extract %s -> %s", t.Path, dest)
	if err := c.extractor.Extract(ctx, t.Path, dest); err != nil {
		c.debugPrint("mutation: extract failed: %v", err)
		return errors.FromOS("extract", t.Path, err)
	}
	if err := c.engine.ApplyExtract(id, dest); err != nil {
		return err
	}
	log.Printf("Extracted %s to %s", t.Path, dest)
	return nil
}

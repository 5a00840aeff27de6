package engine

import (
	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// Target is a node reserved for a mutation by Begin
type Target struct {
	ID         tree.NodeID
	Entry      fileinfo.Entry
	Path       string
	Parent     tree.NodeID // 0 for the root
	ParentPath string
}

// IsRoot reports whether the target is the tree root
func (t Target) IsRoot() bool { return t.Parent == 0 }

// Begin reserves id for op. Until End is called, expand, collapse and other
// mutations on the node or an overlapping subtree are rejected.
func (e *Engine) Begin(op string, id tree.NodeID) (Target, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.model.Node(id)
	if !ok {
		return Target{}, errors.NewInvalidStateError(op, "", "unknown node")
	}
	path, _ := e.model.Path(id)
	if n.State == tree.StateLoading {
		return Target{}, errors.NewInvalidStateError(op, path, "node is loading")
	}
	if err := e.beginLocked(op, id, path); err != nil {
		return Target{}, err
	}
	t := Target{ID: id, Entry: n.Entry, Path: path, Parent: n.Parent()}
	if t.Parent != 0 {
		t.ParentPath, _ = e.model.Path(t.Parent)
	}
	return t, nil
}

// End releases a reservation made by Begin
func (e *Engine) End(id tree.NodeID) {
	e.mu.Lock()
	delete(e.inflight, id)
	e.mu.Unlock()
}

// ApplyRename renames a node in place after the filesystem rename succeeded.
// The node keeps its identity, children and state. The current folder
// follows the rename when it lies inside the renamed subtree.
func (e *Engine) ApplyRename(id tree.NodeID, newName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	oldPath, ok := e.model.Path(id)
	if !ok {
		return errors.NewInvalidStateError("rename", "", "unknown node")
	}
	n, _ := e.model.Node(id)
	oldName := n.Entry.Name
	parentPath := fileinfo.ParentPath(oldPath)
	if err := e.model.Rename(id, newName); err != nil {
		return err
	}
	newPath, _ := e.model.Path(id)

	if rel, inside := fileinfo.RelativeComponents(oldPath, e.current.path); inside {
		p := newPath
		for _, name := range rel {
			p = fileinfo.JoinPath(p, name)
		}
		e.current.path = p
	} else if fileinfo.SamePath(e.current.path, parentPath) {
		for i := range e.current.entries {
			if e.current.entries[i].Name == oldName {
				e.current.entries[i].Name = newName
				break
			}
		}
	}
	e.debugPrint("engine: renamed %s -> %s", oldPath, newPath)
	return nil
}

// ApplyDelete drops a node and its subtree after the filesystem delete
// succeeded. If the current folder was inside the subtree it moves to the
// deleted node's parent.
func (e *Engine) ApplyDelete(id tree.NodeID) error {
	e.mu.Lock()
	path, ok := e.model.Path(id)
	if !ok {
		e.mu.Unlock()
		return errors.NewInvalidStateError("delete", "", "unknown node")
	}
	n, _ := e.model.Node(id)
	name := n.Entry.Name
	parentPath := fileinfo.ParentPath(path)
	if err := e.model.Remove(id); err != nil {
		e.mu.Unlock()
		return err
	}

	reload := false
	if fileinfo.IsWithin(path, e.current.path) {
		reload = true
	} else if fileinfo.SamePath(e.current.path, parentPath) {
		kept := e.current.entries[:0:0]
		for _, en := range e.current.entries {
			if en.Name != name {
				kept = append(kept, en)
			}
		}
		e.current.entries = kept
	}
	e.mu.Unlock()

	e.debugPrint("engine: deleted %s", path)
	if reload {
		return e.loadFolder("delete", parentPath)
	}
	return nil
}

// ApplyExtract reconciles the tree after archive was extracted into dest.
// A Loaded destination is collapsed so its next expand re-lists it; the
// extracted files are never synthesized from the archive.
func (e *Engine) ApplyExtract(archive tree.NodeID, dest string) error {
	e.mu.Lock()
	if n, ok := e.model.FindByPath(dest); ok && n.Entry.IsDir() && n.State == tree.StateLoaded {
		if _, busy := e.busyLocked(n.ID, archive); !busy {
			if err := e.model.DetachChildren(n.ID); err != nil {
				e.mu.Unlock()
				return err
			}
			e.debugPrint("engine: collapsed %s after extract", dest)
		}
	}
	current := fileinfo.SamePath(e.current.path, dest)
	e.mu.Unlock()

	if current {
		return e.loadFolder("extract", dest)
	}
	return nil
}

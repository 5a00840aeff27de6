package engine

import (
	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// selection is the current folder shown in the flat listing pane.
// It is tracked by path so it survives collapse and re-listing of the tree.
type selection struct {
	path    string
	entries []fileinfo.Entry // listing order, unfiltered
}

// Selection is a read-only view of the current folder
type Selection struct {
	Path    string
	Node    tree.NodeID // 0 when the folder is not materialized in the tree
	Entries []fileinfo.Entry
}

// Selection returns the current folder and its raw listing
func (e *Engine) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectionLocked()
}

func (e *Engine) selectionLocked() Selection {
	s := Selection{
		Path:    e.current.path,
		Entries: append([]fileinfo.Entry(nil), e.current.entries...),
	}
	if s.Path != "" {
		if n, ok := e.model.FindByPath(s.Path); ok {
			s.Node = n.ID
		}
	}
	return s
}

// SetCurrentFolder shows a directory node in the flat listing pane without
// touching its expand state.
func (e *Engine) SetCurrentFolder(id tree.NodeID) error {
	e.mu.Lock()
	_, path, err := e.checkDirLocked("set_current_folder", id)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.loadFolder("set_current_folder", path)
}

// OpenFolder shows any directory path in the flat listing pane.
// The path need not be part of the tree.
func (e *Engine) OpenFolder(path string) error {
	path = fileinfo.CleanPath(path)
	if path == "" {
		return errors.NewInvalidArgumentError("open_folder", path, "empty path")
	}
	return e.loadFolder("open_folder", path)
}

// ReloadCurrentFolder re-lists the current folder, if any
func (e *Engine) ReloadCurrentFolder() error {
	e.mu.Lock()
	path := e.current.path
	e.mu.Unlock()
	if path == "" {
		return nil
	}
	return e.loadFolder("reload_current_folder", path)
}

// loadFolder lists path for the flat pane. A failed listing still moves the
// current folder, with no entries and a warning.
func (e *Engine) loadFolder(op, path string) error {
	e.debugPrint("engine: %s %s", op, path)
	items, listErr := e.fs.ListDirectory(path)
	entries := e.classifier.ClassifyAll(items)

	e.mu.Lock()
	var warns []Warning
	if listErr != nil {
		entries = nil
		warns = append(warns, e.warnings.addLocked(op, path, listErr))
	}
	e.current = selection{path: path, entries: entries}
	e.mu.Unlock()

	e.publish(warns)
	e.runPreview(path, entries)
	return nil
}

// FlatListing returns the current folder's entries sorted and filtered for
// display.
func (e *Engine) FlatListing() []fileinfo.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.presentLocked(e.current.entries, true)
}

// VisibleChildren returns the children of a node in display order, hiding
// dotfiles unless enabled. The glob filter only applies to the flat pane.
func (e *Engine) VisibleChildren(id tree.NodeID) []tree.NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := e.model.Children(id)
	byName := make(map[string]tree.NodeID, len(ids))
	entries := make([]fileinfo.Entry, 0, len(ids))
	for _, c := range ids {
		n, _ := e.model.Node(c)
		byName[n.Entry.Name] = c
		entries = append(entries, n.Entry)
	}
	entries = e.presentLocked(entries, false)
	out := make([]tree.NodeID, len(entries))
	for i, en := range entries {
		out[i] = byName[en.Name]
	}
	return out
}

func (e *Engine) presentLocked(entries []fileinfo.Entry, withPattern bool) []fileinfo.Entry {
	f := fileinfo.Filter{ShowHidden: e.settings.ShowHidden}
	if withPattern {
		f.Pattern = e.settings.Filter
	}
	return fileinfo.SortEntries(f.Apply(entries), e.settings.Sort)
}

// SetFilter sets the glob applied to files in the flat listing.
// An empty pattern shows everything.
func (e *Engine) SetFilter(pattern string) error {
	if pattern != "" && !fileinfo.ValidatePattern(pattern) {
		return errors.NewInvalidArgumentError("set_filter", pattern, "invalid glob pattern")
	}
	e.mu.Lock()
	e.settings.Filter = pattern
	e.mu.Unlock()
	return nil
}

// Filter returns the active glob
func (e *Engine) Filter() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.Filter
}

// SetShowHidden toggles display of dotfiles
func (e *Engine) SetShowHidden(show bool) {
	e.mu.Lock()
	e.settings.ShowHidden = show
	e.mu.Unlock()
}

// Package engine drives lazy loading of the explorer tree.
//
// All operations are synchronous. The engine lock is released while the
// listing collaborator runs, and a per-node in-flight set rejects any second
// operation on a node (or on an overlapping subtree) until the first ends.
package engine

import (
	"sync"

	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// QuickAccess is one named shortcut of the sidebar
type QuickAccess struct {
	Name string
	Path string
}

// Settings is the configuration injected at construction
type Settings struct {
	ArchiveExtensions []string
	QuickAccess       []QuickAccess
	Sort              fileinfo.SortOptions
	ShowHidden        bool
	Filter            string
}

// Previewer is notified after the current folder is (re)loaded
type Previewer interface {
	Preview(dir string, entries []fileinfo.Entry) error
}

// Option configures optional engine behavior
type Option func(*Engine)

// WithPreview attaches a previewer to current-folder loads
func WithPreview(p Previewer) Option {
	return func(e *Engine) { e.preview = p }
}

// Engine owns the tree model and the current-folder selection
type Engine struct {
	mu         sync.Mutex
	fs         fileinfo.Lister
	classifier *fileinfo.Classifier
	model      *tree.Model
	inflight   map[tree.NodeID]string // node -> operation
	generation int                    // bumped by SelectRoot
	settings   Settings
	current    selection
	preview    Previewer
	warnings   warningLog
	debugPrint func(format string, args ...interface{})
}

// New creates an engine listing directories through fs
func New(fs fileinfo.Lister, settings Settings, debugPrint func(format string, args ...interface{}), opts ...Option) *Engine {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	e := &Engine{
		fs:         fs,
		classifier: fileinfo.NewClassifier(settings.ArchiveExtensions),
		model:      tree.NewModel(),
		inflight:   make(map[tree.NodeID]string),
		settings:   settings,
		debugPrint: debugPrint,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classifier returns the archive classifier built from the settings
func (e *Engine) Classifier() *fileinfo.Classifier { return e.classifier }

// SelectRoot replaces the tree with a fresh root at path and expands it.
// Listing failures leave an empty root and a warning; only a busy engine
// rejects the call.
func (e *Engine) SelectRoot(path string) error {
	e.mu.Lock()
	if len(e.inflight) > 0 {
		e.mu.Unlock()
		return errors.NewInvalidStateError("select_root", path, "an operation is in progress")
	}
	root := e.model.CreateRoot(path)
	e.generation++
	e.current = selection{}
	e.mu.Unlock()

	e.debugPrint("engine: select root %s", e.model.RootPath())
	return e.Expand(root.ID)
}

// SelectQuickAccess switches the root to the named quick-access folder
func (e *Engine) SelectQuickAccess(name string) error {
	for _, qa := range e.settings.QuickAccess {
		if qa.Name == name {
			return e.SelectRoot(qa.Path)
		}
	}
	return errors.NewInvalidArgumentError("select_quick_access", name, "unknown quick access entry")
}

// QuickAccess returns the configured shortcuts in order
func (e *Engine) QuickAccess() []QuickAccess {
	return append([]QuickAccess(nil), e.settings.QuickAccess...)
}

// Expand loads an Unloaded or Collapsed directory with a fresh listing and
// makes it the current folder.
func (e *Engine) Expand(id tree.NodeID) error {
	return e.load("expand", id, true, tree.StateUnloaded, tree.StateCollapsed)
}

// Refresh re-lists a Loaded directory. The current folder does not move; if
// the node is the current folder its flat listing is refreshed too.
// Unloaded and Collapsed directories need no refresh and are left alone.
func (e *Engine) Refresh(id tree.NodeID) error {
	e.mu.Lock()
	n, ok := e.model.Node(id)
	if ok && n.Entry.IsDir() && (n.State == tree.StateUnloaded || n.State == tree.StateCollapsed) {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	return e.load("refresh", id, false, tree.StateLoaded)
}

// load runs one listing for a directory node.
// allowed lists the states the node may be in when the call starts.
func (e *Engine) load(op string, id tree.NodeID, makeCurrent bool, allowed ...tree.State) error {
	e.mu.Lock()
	n, path, err := e.checkDirLocked(op, id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !stateIn(n.State, allowed) {
		e.mu.Unlock()
		return errors.NewInvalidStateError(op, path, "node is "+n.State.String())
	}
	if err := e.beginLocked(op, id, path); err != nil {
		e.mu.Unlock()
		return err
	}
	prev := n.State
	_ = e.model.SetState(id, tree.StateLoading)
	gen := e.generation
	e.mu.Unlock()

	e.debugPrint("engine: %s %s (was %s)", op, path, prev)
	items, listErr := e.fs.ListDirectory(path)
	entries := e.classifier.ClassifyAll(items)

	e.mu.Lock()
	delete(e.inflight, id)
	if gen != e.generation {
		e.mu.Unlock()
		return errors.NewInvalidStateError(op, path, "root changed during listing")
	}
	if _, ok := e.model.Node(id); !ok {
		e.mu.Unlock()
		return errors.NewInvalidStateError(op, path, "node removed during listing")
	}

	var warns []Warning
	if listErr != nil {
		entries = nil
		warns = append(warns, e.warnings.addLocked(op, path, listErr))
	}
	if err := e.model.AttachChildren(id, entries); err != nil {
		e.mu.Unlock()
		return err
	}

	runPreview := false
	switch {
	case makeCurrent:
		e.current = selection{path: path, entries: entries}
		runPreview = true
	case fileinfo.SamePath(e.current.path, path):
		e.current.entries = entries
		runPreview = true
	}
	e.mu.Unlock()

	e.debugPrint("engine: %s %s -> %d entries", op, path, len(entries))
	e.publish(warns)
	if runPreview {
		e.runPreview(path, entries)
	}
	return nil
}

// Collapse drops the children of a Loaded directory.
// Collapsing a Collapsed directory is a no-op.
func (e *Engine) Collapse(id tree.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, path, err := e.checkDirLocked("collapse", id)
	if err != nil {
		return err
	}
	switch n.State {
	case tree.StateCollapsed:
		return nil
	case tree.StateLoaded:
	default:
		return errors.NewInvalidStateError("collapse", path, "node is "+n.State.String())
	}
	if op, busy := e.busyLocked(id); busy {
		return errors.NewInvalidStateError("collapse", path, op+" in progress")
	}
	e.debugPrint("engine: collapse %s", path)
	return e.model.DetachChildren(id)
}

// Toggle expands an Unloaded or Collapsed directory and collapses a Loaded one
func (e *Engine) Toggle(id tree.NodeID) error {
	e.mu.Lock()
	n, path, err := e.checkDirLocked("toggle", id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	state := n.State
	e.mu.Unlock()

	switch state {
	case tree.StateLoaded:
		return e.Collapse(id)
	case tree.StateUnloaded, tree.StateCollapsed:
		return e.Expand(id)
	default:
		return errors.NewInvalidStateError("toggle", path, "node is "+state.String())
	}
}

// checkDirLocked resolves id and requires a directory node
func (e *Engine) checkDirLocked(op string, id tree.NodeID) (*tree.Node, string, error) {
	n, ok := e.model.Node(id)
	if !ok {
		return nil, "", errors.NewInvalidStateError(op, "", "unknown node")
	}
	path, _ := e.model.Path(id)
	if !n.Entry.IsDir() {
		return nil, path, errors.NewInvalidStateError(op, path, "cannot "+op+" a "+n.Entry.Kind.String())
	}
	return n, path, nil
}

// busyLocked reports an in-flight operation on id, an ancestor or a descendant.
// Reservations held by the ids in except are ignored.
func (e *Engine) busyLocked(id tree.NodeID, except ...tree.NodeID) (string, bool) {
	for other, op := range e.inflight {
		if containsID(except, other) {
			continue
		}
		if e.model.Contains(id, other) || e.model.Contains(other, id) {
			return op, true
		}
	}
	return "", false
}

func (e *Engine) beginLocked(op string, id tree.NodeID, path string) error {
	if busy, ok := e.busyLocked(id); ok {
		return errors.NewInvalidStateError(op, path, busy+" in progress")
	}
	e.inflight[id] = op
	return nil
}

func containsID(ids []tree.NodeID, id tree.NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func stateIn(s tree.State, allowed []tree.State) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (e *Engine) runPreview(dir string, entries []fileinfo.Entry) {
	if e.preview == nil {
		return
	}
	if err := e.preview.Preview(dir, entries); err != nil {
		e.mu.Lock()
		w := e.warnings.addLocked("preview", dir, err)
		e.mu.Unlock()
		e.publish([]Warning{w})
	}
}

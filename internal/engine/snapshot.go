package engine

import (
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// NodeView is a read-only copy of one tree node
type NodeView struct {
	ID       tree.NodeID
	Parent   tree.NodeID
	Name     string
	Path     string
	Kind     fileinfo.Kind
	State    tree.State
	Children []tree.NodeID // listing order
}

// Snapshot is a consistent copy of the whole engine state for rendering
type Snapshot struct {
	Root     tree.NodeID
	RootPath string
	Nodes    map[tree.NodeID]NodeView
	Current  Selection
	Listing  []fileinfo.Entry // flat pane, sorted and filtered
}

// Root returns the handle of the tree root, 0 before SelectRoot
func (e *Engine) Root() tree.NodeID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model.Root()
}

// NodeView returns a copy of one node
func (e *Engine) NodeView(id tree.NodeID) (NodeView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked(id)
}

func (e *Engine) viewLocked(id tree.NodeID) (NodeView, bool) {
	n, ok := e.model.Node(id)
	if !ok {
		return NodeView{}, false
	}
	path, _ := e.model.Path(id)
	return NodeView{
		ID:       n.ID,
		Parent:   n.Parent(),
		Name:     n.Entry.Name,
		Path:     path,
		Kind:     n.Entry.Kind,
		State:    n.State,
		Children: n.Children(),
	}, true
}

// FindByPath returns the node materialized at path
func (e *Engine) FindByPath(path string) (tree.NodeID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.model.FindByPath(path)
	if !ok {
		return 0, false
	}
	return n.ID, true
}

// Snapshot copies every reachable node plus the current folder
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Root:     e.model.Root(),
		RootPath: e.model.RootPath(),
		Nodes:    make(map[tree.NodeID]NodeView, e.model.Len()),
		Current:  e.selectionLocked(),
		Listing:  e.presentLocked(e.current.entries, true),
	}
	if s.Root == 0 {
		return s
	}
	stack := []tree.NodeID{s.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		v, ok := e.viewLocked(id)
		if !ok {
			continue
		}
		s.Nodes[id] = v
		stack = append(stack, v.Children...)
	}
	return s
}

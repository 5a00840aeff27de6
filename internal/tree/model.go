// Package tree holds the in-memory graph of explored directories.
//
// Nodes live in an arena owned by Model and refer to each other through
// NodeID handles. A parent owns its children; the parent link is only a
// handle used for lookup.
package tree

import (
	"fexp/internal/errors"
	"fexp/internal/fileinfo"
)

// NodeID is a stable handle to a node. The zero value means "no node".
type NodeID int64

// State is the load state of a node
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateCollapsed
	StateTerminal // files and archives
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateCollapsed:
		return "collapsed"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Node is one entry of the explored tree
type Node struct {
	ID       NodeID
	Entry    fileinfo.Entry
	State    State
	parent   NodeID
	children []NodeID
}

// Parent returns the parent handle, 0 for the root
func (n *Node) Parent() NodeID { return n.parent }

// Children returns a copy of the child handles in listing order
func (n *Node) Children() []NodeID { return append([]NodeID(nil), n.children...) }

// Model is an arena of nodes rooted at a single directory path
type Model struct {
	rootPath string
	root     NodeID
	nodes    map[NodeID]*Node
	nextID   NodeID
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{nodes: make(map[NodeID]*Node)}
}

func (m *Model) alloc(entry fileinfo.Entry, parent NodeID) *Node {
	m.nextID++
	n := &Node{ID: m.nextID, Entry: entry, parent: parent}
	if entry.Kind != fileinfo.KindDirectory {
		n.State = StateTerminal
	}
	m.nodes[n.ID] = n
	return n
}

// CreateRoot discards the current graph and starts a new one at path.
// The root is an Unloaded directory named after the last path segment.
// Handles are never reused, so stale IDs from the old graph stay invalid.
func (m *Model) CreateRoot(path string) *Node {
	m.nodes = make(map[NodeID]*Node)
	m.rootPath = fileinfo.CleanPath(path)
	n := m.alloc(fileinfo.Entry{Name: fileinfo.BaseName(m.rootPath), Kind: fileinfo.KindDirectory}, 0)
	m.root = n.ID
	return n
}

// Root returns the root handle, 0 when no root was created
func (m *Model) Root() NodeID { return m.root }

// RootPath returns the cleaned root path
func (m *Model) RootPath() string { return m.rootPath }

// Node returns the node for id
func (m *Model) Node(id NodeID) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Len returns the number of live nodes
func (m *Model) Len() int { return len(m.nodes) }

// Parent returns the parent of id; ok is false for the root or unknown ids
func (m *Model) Parent(id NodeID) (NodeID, bool) {
	n, ok := m.nodes[id]
	if !ok || n.parent == 0 {
		return 0, false
	}
	return n.parent, true
}

// Children returns the child handles of id in listing order
func (m *Model) Children(id NodeID) []NodeID {
	n, ok := m.nodes[id]
	if !ok {
		return nil
	}
	return n.Children()
}

// Path derives the full path of id from the root path and ancestor names
func (m *Model) Path(id NodeID) (string, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return "", false
	}
	var names []string
	for n.parent != 0 {
		names = append(names, n.Entry.Name)
		n = m.nodes[n.parent]
	}
	p := m.rootPath
	for i := len(names) - 1; i >= 0; i-- {
		p = fileinfo.JoinPath(p, names[i])
	}
	return p, true
}

func (m *Model) lookup(op string, id NodeID) (*Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, errors.NewInvalidStateError(op, "", "unknown node")
	}
	return n, nil
}

// SetState changes the state of a directory node.
// Terminal nodes cannot change state and directories cannot become terminal.
func (m *Model) SetState(id NodeID, s State) error {
	n, err := m.lookup("set_state", id)
	if err != nil {
		return err
	}
	if n.State == StateTerminal || s == StateTerminal {
		p, _ := m.Path(id)
		return errors.NewInvalidStateError("set_state", p, "terminal state is fixed by entry kind")
	}
	n.State = s
	return nil
}

// AttachChildren replaces the children of a directory node with one node per
// entry, in the given order, and marks it Loaded.
func (m *Model) AttachChildren(id NodeID, entries []fileinfo.Entry) error {
	n, err := m.lookup("attach_children", id)
	if err != nil {
		return err
	}
	if n.Entry.Kind != fileinfo.KindDirectory {
		p, _ := m.Path(id)
		return errors.NewInvalidStateError("attach_children", p, n.Entry.Kind.String()+" nodes cannot have children")
	}
	m.release(n.children)
	n.children = make([]NodeID, 0, len(entries))
	for _, e := range entries {
		child := m.alloc(e, id)
		n.children = append(n.children, child.ID)
	}
	n.State = StateLoaded
	return nil
}

// DetachChildren drops the children of a directory node and marks it Collapsed
func (m *Model) DetachChildren(id NodeID) error {
	n, err := m.lookup("detach_children", id)
	if err != nil {
		return err
	}
	if n.Entry.Kind != fileinfo.KindDirectory {
		p, _ := m.Path(id)
		return errors.NewInvalidStateError("detach_children", p, n.Entry.Kind.String()+" nodes cannot collapse")
	}
	m.release(n.children)
	n.children = nil
	n.State = StateCollapsed
	return nil
}

// Remove detaches a non-root node from its parent and releases its subtree
func (m *Model) Remove(id NodeID) error {
	n, err := m.lookup("remove", id)
	if err != nil {
		return err
	}
	if n.parent == 0 {
		return errors.NewInvalidStateError("remove", m.rootPath, "the root cannot be removed")
	}
	parent := m.nodes[n.parent]
	for i, c := range parent.children {
		if c == id {
			parent.children = append(parent.children[:i:i], parent.children[i+1:]...)
			break
		}
	}
	m.release([]NodeID{id})
	return nil
}

// Rename changes the entry name of a non-root node in place
func (m *Model) Rename(id NodeID, name string) error {
	n, err := m.lookup("rename", id)
	if err != nil {
		return err
	}
	if n.parent == 0 {
		return errors.NewInvalidStateError("rename", m.rootPath, "the root cannot be renamed")
	}
	if !fileinfo.ValidName(name) {
		return errors.NewInvalidArgumentError("rename", name, "invalid name")
	}
	n.Entry.Name = name
	return nil
}

// release deletes ids and all their descendants from the arena
func (m *Model) release(ids []NodeID) {
	stack := append([]NodeID(nil), ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := m.nodes[id]
		if !ok {
			continue
		}
		stack = append(stack, n.children...)
		delete(m.nodes, id)
	}
}

// FindByPath walks from the root along the components of path.
// Only materialized nodes are found; a path below an unloaded or collapsed
// directory reports false.
func (m *Model) FindByPath(path string) (*Node, bool) {
	if m.root == 0 {
		return nil, false
	}
	parts, ok := fileinfo.RelativeComponents(m.rootPath, path)
	if !ok {
		return nil, false
	}
	n := m.nodes[m.root]
	for _, name := range parts {
		var next *Node
		for _, c := range n.children {
			if child := m.nodes[c]; child.Entry.Name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		n = next
	}
	return n, true
}

// Contains reports whether id is ancestor or equal to other
func (m *Model) Contains(id, other NodeID) bool {
	for other != 0 {
		if other == id {
			return true
		}
		n, ok := m.nodes[other]
		if !ok {
			return false
		}
		other = n.parent
	}
	return false
}

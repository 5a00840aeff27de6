package ui

import (
	"context"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fexp/internal/engine"
	"fexp/internal/fileinfo"
	"fexp/internal/tree"
)

// runFunc queues an engine operation on the jobs worker
type runFunc func(name, target string, fn func(ctx context.Context) error)

// TreeView shows the engine's tree in a widget.Tree.
// Node handles are used as widget IDs, so a rename keeps the row.
type TreeView struct {
	engine     *engine.Engine
	tree       *widget.Tree
	run        runFunc
	selected   tree.NodeID
	onSelect   func(tree.NodeID)
	debugPrint func(format string, args ...interface{})
}

// NewTreeView creates the tree widget; onSelect is called on the UI goroutine
func NewTreeView(e *engine.Engine, run runFunc, onSelect func(tree.NodeID), debugPrint func(format string, args ...interface{})) *TreeView {
	tv := &TreeView{
		engine:     e,
		run:        run,
		onSelect:   onSelect,
		debugPrint: debugPrint,
	}
	tv.createTree()
	return tv
}

func nodeUID(id tree.NodeID) widget.TreeNodeID {
	return widget.TreeNodeID(strconv.FormatInt(int64(id), 10))
}

func uidNode(uid widget.TreeNodeID) tree.NodeID {
	v, err := strconv.ParseInt(string(uid), 10, 64)
	if err != nil {
		return 0
	}
	return tree.NodeID(v)
}

// entryIcon picks the row icon for an entry kind
func entryIcon(k fileinfo.Kind) fyne.Resource {
	switch k {
	case fileinfo.KindDirectory:
		return theme.FolderIcon()
	case fileinfo.KindArchive:
		return theme.FileApplicationIcon()
	default:
		return theme.FileIcon()
	}
}

func (tv *TreeView) createTree() {
	tv.tree = widget.NewTree(
		func(uid widget.TreeNodeID) []widget.TreeNodeID {
			if uid == "" {
				if root := tv.engine.Root(); root != 0 {
					return []widget.TreeNodeID{nodeUID(root)}
				}
				return nil
			}
			children := tv.engine.VisibleChildren(uidNode(uid))
			result := make([]widget.TreeNodeID, len(children))
			for i, child := range children {
				result[i] = nodeUID(child)
			}
			return result
		},
		func(uid widget.TreeNodeID) bool {
			if uid == "" {
				return true
			}
			v, ok := tv.engine.NodeView(uidNode(uid))
			return ok && v.Kind == fileinfo.KindDirectory
		},
		func(branch bool) fyne.CanvasObject {
			icon := widget.NewIcon(theme.FolderIcon())
			label := widget.NewLabel("Directory")
			return container.NewHBox(icon, label)
		},
		func(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			v, ok := tv.engine.NodeView(uidNode(uid))
			if !ok {
				return
			}
			hbox := obj.(*fyne.Container)
			hbox.Objects[0].(*widget.Icon).SetResource(entryIcon(v.Kind))
			label := hbox.Objects[1].(*widget.Label)
			if v.Parent == 0 {
				label.SetText(v.Path)
			} else {
				label.SetText(v.Name)
			}
		},
	)

	// A click on a folder toggles it, like the branch arrow
	tv.tree.OnSelected = func(uid widget.TreeNodeID) {
		id := uidNode(uid)
		tv.selected = id
		tv.debugPrint("Tree node selected: %d", id)
		if tv.onSelect != nil {
			tv.onSelect(id)
		}
		v, ok := tv.engine.NodeView(id)
		if !ok || v.Kind != fileinfo.KindDirectory {
			return
		}
		tv.run("toggle", v.Path, func(ctx context.Context) error {
			return tv.engine.Toggle(id)
		})
	}

	tv.tree.OnBranchOpened = func(uid widget.TreeNodeID) {
		id := uidNode(uid)
		v, ok := tv.engine.NodeView(id)
		if !ok || (v.State != tree.StateUnloaded && v.State != tree.StateCollapsed) {
			return
		}
		tv.debugPrint("Branch opened: %s", v.Path)
		tv.run("expand", v.Path, func(ctx context.Context) error {
			return tv.engine.Expand(id)
		})
	}

	tv.tree.OnBranchClosed = func(uid widget.TreeNodeID) {
		id := uidNode(uid)
		v, ok := tv.engine.NodeView(id)
		if !ok || v.State != tree.StateLoaded {
			return
		}
		tv.debugPrint("Branch closed: %s", v.Path)
		tv.run("collapse", v.Path, func(ctx context.Context) error {
			return tv.engine.Collapse(id)
		})
	}
}

// Sync matches the widget's open branches to the engine states and redraws.
// Must be called on the UI goroutine.
func (tv *TreeView) Sync() {
	snap := tv.engine.Snapshot()
	for id, v := range snap.Nodes {
		if v.Kind != fileinfo.KindDirectory {
			continue
		}
		uid := nodeUID(id)
		open := v.State == tree.StateLoaded || v.State == tree.StateLoading
		if open && !tv.tree.IsBranchOpen(uid) {
			tv.tree.OpenBranch(uid)
		} else if !open && tv.tree.IsBranchOpen(uid) {
			tv.tree.CloseBranch(uid)
		}
	}
	if _, ok := snap.Nodes[tv.selected]; tv.selected != 0 && !ok {
		tv.selected = 0
		tv.tree.UnselectAll()
	}
	tv.tree.Refresh()
}

// Selected returns the highlighted node, 0 when none
func (tv *TreeView) Selected() tree.NodeID { return tv.selected }

func (tv *TreeView) Widget() *widget.Tree { return tv.tree }

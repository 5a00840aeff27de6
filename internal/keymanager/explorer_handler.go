package keymanager

import (
	"fyne.io/fyne/v2"
)

// ExplorerActions are the explorer commands reachable from the keyboard
type ExplorerActions interface {
	RenameSelected()
	DeleteSelected()
	ExtractSelected()
	Refresh()
	ToggleHidden()
	GoUp()
	FocusRootEntry()
}

// ExplorerKeyHandler handles keys for the main explorer window:
//
//	F2 rename, Delete delete, F5 refresh, Backspace parent folder,
//	Ctrl+E extract, Ctrl+H hidden files, Ctrl+L root path entry.
type ExplorerKeyHandler struct {
	actions    ExplorerActions
	debugPrint func(format string, args ...interface{})
}

// NewExplorerKeyHandler creates the main window handler
func NewExplorerKeyHandler(actions ExplorerActions, debugPrint func(format string, args ...interface{})) *ExplorerKeyHandler {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &ExplorerKeyHandler{actions: actions, debugPrint: debugPrint}
}

func (h *ExplorerKeyHandler) GetName() string { return "Explorer" }

func (h *ExplorerKeyHandler) OnTypedKey(ev *fyne.KeyEvent, mods ModifierState) bool {
	if mods.Ctrl {
		switch ev.Name {
		case fyne.KeyE:
			h.actions.ExtractSelected()
		case fyne.KeyH:
			h.actions.ToggleHidden()
		case fyne.KeyL:
			h.actions.FocusRootEntry()
		default:
			return false
		}
		return true
	}

	switch ev.Name {
	case fyne.KeyF2:
		h.actions.RenameSelected()
	case fyne.KeyDelete:
		h.actions.DeleteSelected()
	case fyne.KeyF5:
		h.actions.Refresh()
	case fyne.KeyBackspace:
		h.actions.GoUp()
	default:
		return false
	}
	h.debugPrint("Explorer: key %s", ev.Name)
	return true
}

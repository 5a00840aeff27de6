package keymanager

import (
	"reflect"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

type recordingActions struct {
	calls []string
}

func (r *recordingActions) RenameSelected()  { r.calls = append(r.calls, "rename") }
func (r *recordingActions) DeleteSelected()  { r.calls = append(r.calls, "delete") }
func (r *recordingActions) ExtractSelected() { r.calls = append(r.calls, "extract") }
func (r *recordingActions) Refresh()         { r.calls = append(r.calls, "refresh") }
func (r *recordingActions) ToggleHidden()    { r.calls = append(r.calls, "hidden") }
func (r *recordingActions) GoUp()            { r.calls = append(r.calls, "up") }
func (r *recordingActions) FocusRootEntry()  { r.calls = append(r.calls, "root") }

func key(name fyne.KeyName) *fyne.KeyEvent { return &fyne.KeyEvent{Name: name} }

func TestExplorerKeys(t *testing.T) {
	tests := []struct {
		name    string
		ctrl    bool
		key     fyne.KeyName
		want    []string
		handled bool
	}{
		{"F2 renames", false, fyne.KeyF2, []string{"rename"}, true},
		{"Delete deletes", false, fyne.KeyDelete, []string{"delete"}, true},
		{"F5 refreshes", false, fyne.KeyF5, []string{"refresh"}, true},
		{"Backspace goes up", false, fyne.KeyBackspace, []string{"up"}, true},
		{"Ctrl+E extracts", true, fyne.KeyE, []string{"extract"}, true},
		{"Ctrl+H toggles hidden", true, fyne.KeyH, []string{"hidden"}, true},
		{"Ctrl+L focuses root", true, fyne.KeyL, []string{"root"}, true},
		{"plain E is ignored", false, fyne.KeyE, nil, false},
		{"Ctrl+F2 is ignored", true, fyne.KeyF2, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &recordingActions{}
			km := NewKeyManager(nil)
			km.PushHandler(NewExplorerKeyHandler(actions, nil))
			if tt.ctrl {
				km.HandleKeyDown(key(desktop.KeyControlLeft))
			}
			if got := km.HandleTypedKey(key(tt.key)); got != tt.handled {
				t.Errorf("handled = %v, want %v", got, tt.handled)
			}
			if !reflect.DeepEqual(actions.calls, tt.want) {
				t.Errorf("calls = %v, want %v", actions.calls, tt.want)
			}
		})
	}
}

func TestModifierRelease(t *testing.T) {
	actions := &recordingActions{}
	km := NewKeyManager(nil)
	km.PushHandler(NewExplorerKeyHandler(actions, nil))

	km.HandleKeyDown(key(desktop.KeyControlRight))
	km.HandleKeyUp(key(desktop.KeyControlRight))
	km.HandleTypedKey(key(fyne.KeyH))
	if len(actions.calls) != 0 {
		t.Errorf("calls after Ctrl release = %v", actions.calls)
	}
}

func TestBusyHandlerShadowsExplorer(t *testing.T) {
	actions := &recordingActions{}
	canceled := 0
	km := NewKeyManager(nil)
	km.PushHandler(NewExplorerKeyHandler(actions, nil))
	km.PushHandler(NewBusyKeyHandler(func() { canceled++ }))

	if !km.HandleTypedKey(key(fyne.KeyDelete)) {
		t.Error("busy handler should swallow Delete")
	}
	km.HandleTypedKey(key(fyne.KeyEscape))
	if canceled != 1 || len(actions.calls) != 0 {
		t.Errorf("canceled = %d, calls = %v", canceled, actions.calls)
	}

	if h := km.PopHandler(); h == nil || h.GetName() != "BusyGuard" {
		t.Fatalf("PopHandler = %v", h)
	}
	km.HandleTypedKey(key(fyne.KeyDelete))
	if !reflect.DeepEqual(actions.calls, []string{"delete"}) {
		t.Errorf("calls = %v", actions.calls)
	}
	if km.GetStackSize() != 1 {
		t.Errorf("stack size = %d", km.GetStackSize())
	}
}

func TestEmptyStack(t *testing.T) {
	km := NewKeyManager(nil)
	if km.PopHandler() != nil {
		t.Error("PopHandler on empty stack should return nil")
	}
	if km.HandleTypedKey(key(fyne.KeyF5)) {
		t.Error("empty stack handled a key")
	}
}

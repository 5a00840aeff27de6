package keymanager

import (
	"fyne.io/fyne/v2"
)

// BusyKeyHandler swallows all key input while a long operation runs.
// Escape calls the cancel callback, if any.
type BusyKeyHandler struct {
	cancel func()
}

func NewBusyKeyHandler(cancel func()) *BusyKeyHandler { return &BusyKeyHandler{cancel: cancel} }

func (b *BusyKeyHandler) GetName() string { return "BusyGuard" }

func (b *BusyKeyHandler) OnTypedKey(ev *fyne.KeyEvent, _ ModifierState) bool {
	if ev.Name == fyne.KeyEscape && b.cancel != nil {
		b.cancel()
	}
	return true
}

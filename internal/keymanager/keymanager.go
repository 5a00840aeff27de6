// Package keymanager routes window key events to the topmost handler of a stack.
package keymanager

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// ModifierState is the modifier keys held when an event arrives
type ModifierState struct {
	Shift bool
	Ctrl  bool
}

// KeyHandler defines the interface for handling keyboard events
type KeyHandler interface {
	// OnTypedKey handles typed key events; returns true if handled
	OnTypedKey(ev *fyne.KeyEvent, mods ModifierState) bool

	// GetName returns a descriptive name for this handler (for debugging)
	GetName() string
}

// KeyManager manages a stack of key handlers
type KeyManager struct {
	handlers   []KeyHandler
	mods       ModifierState
	mutex      sync.RWMutex
	debugPrint func(format string, args ...interface{})
}

// NewKeyManager creates a new KeyManager instance
func NewKeyManager(debugPrint func(format string, args ...interface{})) *KeyManager {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &KeyManager{
		handlers:   make([]KeyHandler, 0),
		debugPrint: debugPrint,
	}
}

// PushHandler adds a new key handler to the top of the stack
func (km *KeyManager) PushHandler(handler KeyHandler) {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	km.handlers = append(km.handlers, handler)
	km.debugPrint("KeyManager: Pushed handler '%s', stack size: %d", handler.GetName(), len(km.handlers))
}

// PopHandler removes the top key handler from the stack
func (km *KeyManager) PopHandler() KeyHandler {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	if len(km.handlers) == 0 {
		km.debugPrint("KeyManager: Attempted to pop from empty stack")
		return nil
	}
	handler := km.handlers[len(km.handlers)-1]
	km.handlers = km.handlers[:len(km.handlers)-1]

	km.debugPrint("KeyManager: Popped handler '%s', stack size: %d", handler.GetName(), len(km.handlers))
	return handler
}

// GetCurrentHandler returns the top handler without removing it
func (km *KeyManager) GetCurrentHandler() KeyHandler {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	if len(km.handlers) == 0 {
		return nil
	}
	return km.handlers[len(km.handlers)-1]
}

// HandleKeyDown tracks modifier keys
func (km *KeyManager) HandleKeyDown(ev *fyne.KeyEvent) {
	km.setModifier(ev.Name, true)
}

// HandleKeyUp tracks modifier keys
func (km *KeyManager) HandleKeyUp(ev *fyne.KeyEvent) {
	km.setModifier(ev.Name, false)
}

func (km *KeyManager) setModifier(name fyne.KeyName, down bool) {
	km.mutex.Lock()
	defer km.mutex.Unlock()
	switch name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		km.mods.Shift = down
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		km.mods.Ctrl = down
	}
}

// HandleTypedKey routes typed key events to the current top handler
func (km *KeyManager) HandleTypedKey(ev *fyne.KeyEvent) bool {
	currentHandler := km.GetCurrentHandler()
	km.mutex.RLock()
	mods := km.mods
	km.mutex.RUnlock()

	if currentHandler == nil {
		km.debugPrint("KeyManager: No handler available for TypedKey event")
		return false
	}
	handled := currentHandler.OnTypedKey(ev, mods)
	km.debugPrint("KeyManager: TypedKey %s handled by '%s': %t", ev.Name, currentHandler.GetName(), handled)
	return handled
}

// GetStackSize returns the current number of handlers in the stack
func (km *KeyManager) GetStackSize() int {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	return len(km.handlers)
}

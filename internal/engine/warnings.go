package engine

import (
	"fmt"
	"log"
	"time"

	"fexp/internal/errors"
)

const maxWarnings = 100

// Warning is a non-fatal problem, such as an unreadable directory
type Warning struct {
	Operation string
	Path      string
	Type      errors.ErrorType
	Err       error
	Time      time.Time
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Operation, w.Path, w.Type)
}

type warningLog struct {
	history     []Warning
	subscribers []func(Warning)
}

// addLocked records a warning; caller must hold e.mu
func (l *warningLog) addLocked(op, path string, err error) Warning {
	w := Warning{Operation: op, Path: path, Type: errors.TypeOf(err), Err: err, Time: time.Now()}
	l.history = append(l.history, w)
	if len(l.history) > maxWarnings {
		l.history = append([]Warning(nil), l.history[len(l.history)-maxWarnings:]...)
	}
	return w
}

// Subscribe registers a callback for new warnings.
// Callbacks run on the goroutine of the operation that raised the warning.
func (e *Engine) Subscribe(cb func(Warning)) {
	e.mu.Lock()
	e.warnings.subscribers = append(e.warnings.subscribers, cb)
	e.mu.Unlock()
}

// Warnings returns the most recent warnings, oldest first
func (e *Engine) Warnings() []Warning {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Warning(nil), e.warnings.history...)
}

// publish calls subscribers without holding the lock
func (e *Engine) publish(ws []Warning) {
	if len(ws) == 0 {
		return
	}
	e.mu.Lock()
	subs := append([]func(Warning){}, e.warnings.subscribers...)
	e.mu.Unlock()
	for _, w := range ws {
		log.Printf("Warning: %s: %v", w, w.Err)
		for _, cb := range subs {
			cb(w)
		}
	}
}

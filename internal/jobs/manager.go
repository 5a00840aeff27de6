// Package jobs runs explorer operations one at a time on a background worker.
//
// A single worker keeps operations strictly sequential while the UI thread
// stays responsive; callers marshal results back to the UI themselves.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// debug hook, set from main; should print only when -d enabled
var debugf func(format string, args ...interface{})

// SetDebug installs a debug logger used when -d flag is on.
func SetDebug(fn func(format string, args ...interface{})) { debugf = fn }

func dbg(format string, args ...interface{}) {
	if debugf != nil {
		debugf("jobs: "+format, args...)
	}
}

// ErrClosed is returned by jobs enqueued after Close
var ErrClosed = errors.New("job manager closed")

// Manager coordinates queueing and background processing (single worker).
type Manager struct {
	mu          sync.Mutex
	cond        *sync.Cond
	queue       []*Job
	closed      bool
	nextID      int64
	subscribers []func()
	current     *Job
	history     []*Job
	historyMax  int
}

// NewManager constructs and starts a Manager.
func NewManager() *Manager {
	m := &Manager{historyMax: 100}
	m.cond = sync.NewCond(&m.mu)
	go m.worker()
	dbg("manager created; worker started")
	return m
}

// Subscribe registers a callback called on state changes.
// Callbacks run on the worker goroutine.
func (m *Manager) Subscribe(cb func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, cb)
	n := len(m.subscribers)
	m.mu.Unlock()
	dbg("subscriber added (total=%d)", n)
}

func (m *Manager) notify() {
	// call without holding the lock to avoid re-entrancy
	m.mu.Lock()
	subs := append([]func(){}, m.subscribers...)
	m.mu.Unlock()
	for _, cb := range subs {
		cb()
	}
}

// Enqueue queues fn and returns immediately.
func (m *Manager) Enqueue(name, target string, fn Func) *Job {
	j := &Job{
		ID:         atomic.AddInt64(&m.nextID, 1),
		Name:       name,
		Target:     target,
		run:        fn,
		Status:     StatusPending,
		EnqueuedAt: time.Now(),
		done:       make(chan struct{}),
	}
	j.ctx, j.cancel = context.WithCancel(context.Background())

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.finish(j, ErrClosed)
		return j
	}
	m.queue = append(m.queue, j)
	m.mu.Unlock()
	dbg("enqueue id=%d %s %s", j.ID, name, target)
	m.notify()
	m.cond.Signal()
	return j
}

// Cancel cancels a job by ID.
func (m *Manager) Cancel(id int64) bool {
	m.mu.Lock()
	// pending in queue
	for i, j := range m.queue {
		if j.ID == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.mu.Unlock()
			dbg("cancel pending id=%d", id)
			j.cancel()
			m.finish(j, context.Canceled)
			m.notify()
			return true
		}
	}
	// currently running
	if m.current != nil && m.current.ID == id {
		m.current.cancel()
		m.mu.Unlock()
		dbg("cancel running id=%d", id)
		return true
	}
	m.mu.Unlock()
	return false
}

// Current returns the running job, if any
func (m *Manager) Current() (JobSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return JobSnapshot{}, false
	}
	return m.current.Snapshot(), true
}

// List returns snapshots of the running job, pending jobs, then history (newest first).
func (m *Manager) List() []JobSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]JobSnapshot, 0, len(m.queue)+1+len(m.history))
	if m.current != nil {
		out = append(out, m.current.Snapshot())
	}
	for _, j := range m.queue {
		out = append(out, j.Snapshot())
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i].Snapshot())
	}
	return out
}

// Close stops the worker after the running job; pending jobs are canceled.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pending := m.queue
	m.queue = nil
	m.mu.Unlock()
	m.cond.Broadcast()
	for _, j := range pending {
		j.cancel()
		m.finish(j, context.Canceled)
	}
	dbg("manager closed (%d pending canceled)", len(pending))
}

func (m *Manager) worker() {
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if m.closed {
			m.mu.Unlock()
			return
		}
		// pop head
		j := m.queue[0]
		m.queue = m.queue[1:]
		m.current = j
		m.mu.Unlock()

		j.mu.Lock()
		j.Status = StatusRunning
		j.StartedAt = time.Now()
		j.mu.Unlock()
		dbg("start job id=%d %s", j.ID, j.Name)
		m.notify()

		err := m.runJob(j)

		m.mu.Lock()
		m.current = nil
		m.mu.Unlock()
		m.finish(j, err)
		m.notify()
	}
}

// runJob runs one job, turning a panic into a failure so the worker survives.
func (m *Manager) runJob(j *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.Name, r)
		}
	}()
	if j.ctx.Err() != nil {
		return j.ctx.Err()
	}
	return j.run(j.ctx)
}

// finish records the outcome, moves the job to history and releases waiters.
func (m *Manager) finish(j *Job, err error) {
	j.mu.Lock()
	switch {
	case err == nil:
		j.Status = StatusCompleted
		dbg("job completed id=%d", j.ID)
	case errors.Is(err, context.Canceled):
		j.Status = StatusCanceled
		j.err = err
		dbg("job canceled id=%d", j.ID)
	default:
		j.Status = StatusFailed
		j.Error = err.Error()
		j.err = err
		dbg("job failed id=%d err=%v", j.ID, err)
	}
	j.CompletedAt = time.Now()
	j.mu.Unlock()

	m.mu.Lock()
	m.addHistoryLocked(j)
	m.mu.Unlock()
	close(j.done)
}

// addHistoryLocked appends a finished job to history and trims oldest; caller must hold m.mu
func (m *Manager) addHistoryLocked(j *Job) {
	m.history = append(m.history, j)
	if m.historyMax > 0 && len(m.history) > m.historyMax {
		drop := len(m.history) - m.historyMax
		m.history = append([]*Job{}, m.history[drop:]...)
	}
}

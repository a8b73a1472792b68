// Package notify holds the transient outcome message shown after a
// successful mutation. Failures are never routed here; they stay inline next
// to the control that caused them so the user can re-read them.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 2500 * time.Millisecond

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Notification is one visible (kind, message) pair.
type Notification struct {
	Kind    Kind
	Message string
}

// Queue shows at most one notification at a time. Pushing replaces whatever
// is visible and restarts the expiry clock.
type Queue struct {
	ttl      time.Duration
	now      func() time.Time
	onChange func()

	mu      sync.Mutex
	current *Notification
	expires time.Time
}

// Option configures a Queue.
type Option func(*Queue)

// WithTTL overrides the display lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) { q.ttl = ttl }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithOnChange registers a callback fired on every push, so a rendering
// layer can schedule a redraw.
func WithOnChange(fn func()) Option {
	return func(q *Queue) { q.onChange = fn }
}

// NewQueue creates a queue with the default 2.5s lifetime.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push replaces the visible notification and resets its expiry.
func (q *Queue) Push(kind Kind, message string) {
	q.mu.Lock()
	q.current = &Notification{Kind: kind, Message: message}
	q.expires = q.now().Add(q.ttl)
	q.mu.Unlock()
	if q.onChange != nil {
		q.onChange()
	}
}

// Current returns the visible notification, clearing it first if its
// lifetime has elapsed.
func (q *Queue) Current() *Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current != nil && !q.now().Before(q.expires) {
		q.current = nil
	}
	return q.current
}

// Clear drops the visible notification unconditionally.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.current = nil
}

// TTL returns the configured display lifetime.
func (q *Queue) TTL() time.Duration {
	return q.ttl
}

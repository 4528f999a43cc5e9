package overlay

import (
	"sync"
	"time"
)

// DefaultDelay is how long an operation must run before the busy overlay
// becomes visible. Operations that settle sooner never flash it.
const DefaultDelay = 300 * time.Millisecond

// Overlay is an application-wide busy indicator with deferred visibility.
//
// Start schedules a flip to visible after the configured delay; Stop cancels
// the pending flip (if any) and hides the overlay. The pending flip is an
// explicit cancellable timer, so "never shown for a fast operation" is a
// testable guarantee rather than an accident of timing.
type Overlay struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	visible bool

	// onChange, when set, is called with the new visibility after each flip.
	// The TUI uses it to request a repaint.
	onChange func(visible bool)
}

// Option configures an Overlay
type Option func(*Overlay)

// WithDelay overrides the visibility delay
func WithDelay(d time.Duration) Option {
	return func(o *Overlay) {
		o.delay = d
	}
}

// WithChangeFunc registers a visibility-change callback
func WithChangeFunc(fn func(visible bool)) Option {
	return func(o *Overlay) {
		o.onChange = fn
	}
}

// New creates a hidden Overlay
func New(opts ...Option) *Overlay {
	o := &Overlay{delay: DefaultDelay}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start schedules the overlay to become visible after the delay.
// Calling Start while a flip is already pending or shown is a no-op.
func (o *Overlay) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.visible || o.timer != nil {
		return
	}

	o.timer = time.AfterFunc(o.delay, func() {
		o.mu.Lock()
		o.timer = nil
		o.visible = true
		fn := o.onChange
		o.mu.Unlock()

		if fn != nil {
			fn(true)
		}
	})
}

// Stop cancels any pending flip and hides the overlay
func (o *Overlay) Stop() {
	o.mu.Lock()

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}

	wasVisible := o.visible
	o.visible = false
	fn := o.onChange
	o.mu.Unlock()

	if wasVisible && fn != nil {
		fn(false)
	}
}

// Visible reports whether the overlay is currently shown
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Pending reports whether a flip to visible is scheduled but not yet fired
func (o *Overlay) Pending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.timer != nil
}

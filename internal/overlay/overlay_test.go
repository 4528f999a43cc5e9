package overlay

import (
	"testing"
	"time"
)

func TestHiddenInitially(t *testing.T) {
	o := New()

	if o.Visible() {
		t.Error("overlay must start hidden")
	}
	if o.Pending() {
		t.Error("overlay must start with no pending flip")
	}
}

func TestFastOperationNeverShows(t *testing.T) {
	o := New(WithDelay(100 * time.Millisecond))

	o.Start()
	if !o.Pending() {
		t.Fatal("Start must schedule a flip")
	}

	// Operation settles well under the threshold
	time.Sleep(10 * time.Millisecond)
	o.Stop()

	if o.Pending() {
		t.Error("Stop must cancel the pending flip")
	}

	// Wait past the original deadline to catch a leaked timer
	time.Sleep(200 * time.Millisecond)
	if o.Visible() {
		t.Error("overlay must never show for an operation under the threshold")
	}
}

func TestSlowOperationShows(t *testing.T) {
	shown := make(chan bool, 1)
	o := New(
		WithDelay(20*time.Millisecond),
		WithChangeFunc(func(visible bool) { shown <- visible }),
	)

	o.Start()

	select {
	case visible := <-shown:
		if !visible {
			t.Error("expected visibility flip to true")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("overlay never became visible")
	}

	if !o.Visible() {
		t.Error("Visible() should report true after the flip")
	}

	o.Stop()
	if o.Visible() {
		t.Error("Stop must hide the overlay")
	}
}

func TestStartWhilePendingIsNoop(t *testing.T) {
	o := New(WithDelay(50 * time.Millisecond))

	o.Start()
	o.Start()
	o.Start()

	o.Stop()
	time.Sleep(100 * time.Millisecond)

	if o.Visible() {
		t.Error("repeated Start must not leak additional timers")
	}
}

func TestStopWithoutStart(t *testing.T) {
	o := New()
	o.Stop() // must not panic

	if o.Visible() || o.Pending() {
		t.Error("Stop on an idle overlay must leave it idle")
	}
}

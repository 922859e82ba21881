package capture

import (
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/bus"
)

// Completion is the one-shot signal sent to the opener after a save.
type Completion struct {
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Source    string `json:"source"`
}

const (
	// MessageType identifies a completion signal on the wire.
	MessageType = "bookmarkSaved"
	// Source tags completion signals sent by this application.
	Source = "cliptuck"
)

// NewCompletion builds a completion signal stamped with now.
func NewCompletion(success bool, now time.Time) Completion {
	return Completion{
		Type:      MessageType,
		Success:   success,
		Timestamp: now.UnixMilli(),
		Source:    Source,
	}
}

// Window abstracts the capture window so the bridge can attempt to close it
// and fall back to a visible "close this tab" state when the close is
// blocked.
type Window interface {
	// Close attempts to close the window; false means the environment
	// refused (the browser analog of a blocked window.close).
	Close() bool
	// ShowCloseFallback switches the window to the manual-close state.
	ShowCloseFallback()
}

// Delays groups the bridge timer settings. The zero value is replaced by
// DefaultDelays; tests shrink them.
type Delays struct {
	Settle      time.Duration // wait before a direct-mode auto-submit
	CloseDirect time.Duration // wait before self-close after a direct save
	ClosePopup  time.Duration // wait before self-close after a popup save
	CloseGrace  time.Duration // wait before the manual-close fallback
}

// DefaultDelays mirrors the original page timings.
func DefaultDelays() Delays {
	return Delays{
		Settle:      100 * time.Millisecond,
		CloseDirect: 1 * time.Second,
		ClosePopup:  1500 * time.Millisecond,
		CloseGrace:  500 * time.Millisecond,
	}
}

// Bridge coordinates capture completion between the capture window and the
// opener that spawned it.
type Bridge struct {
	bus    *bus.Bus
	delays Delays
}

// NewBridge creates a Bridge over the given message bus.
func NewBridge(b *bus.Bus, delays Delays) *Bridge {
	if delays == (Delays{}) {
		delays = DefaultDelays()
	}
	return &Bridge{bus: b, delays: delays}
}

// AutoSubmit schedules the direct-mode save after the settle delay and
// returns the timer so a caller can stop it (e.g. the user started typing).
// The intent is cleared by virtue of being consumed; submit receives the
// pre-filled draft.
func (br *Bridge) AutoSubmit(intent *Intent, submit func(Draft)) *time.Timer {
	draft := intent.Draft()
	return time.AfterFunc(br.delays.Settle, func() {
		submit(draft)
	})
}

// NotifySaved runs the post-save protocol of the capture window: publish the
// one-shot completion signal when an opener is present, then attempt
// self-close after the mode's delay. If the close did not take effect within
// the grace period the window falls back to the manual-close state. The
// returned channel closes when the protocol has finished, mainly for tests.
func (br *Bridge) NotifySaved(w Window, mode Mode, hasOpener bool) <-chan struct{} {
	done := make(chan struct{})

	if hasOpener {
		// Best effort, no acknowledgment expected.
		br.bus.Publish(NewCompletion(true, time.Now()))
	}

	if !hasOpener && mode != ModePopup {
		// Plain in-app save: nothing to close.
		close(done)
		return done
	}

	closeDelay := br.delays.CloseDirect
	if mode == ModePopup {
		closeDelay = br.delays.ClosePopup
	}

	time.AfterFunc(closeDelay, func() {
		if w.Close() {
			close(done)
			return
		}
		time.AfterFunc(br.delays.CloseGrace, func() {
			w.ShowCloseFallback()
			close(done)
		})
	})

	return done
}

// Listener is an opener-side wait for a single completion signal.
type Listener struct {
	fired chan struct{}
}

// Done closes when the listener has finished, either through a completion
// signal or through its timeout.
func (l *Listener) Done() <-chan struct{} {
	return l.fired
}

// AwaitCompletion registers a one-shot opener-side listener: the first
// completion signal closes the capture window and removes the listener; an
// independent timeout does the same when no signal arrives, so no
// window/listener pair is leaked. closeCapture runs at most once; the timer
// may still fire after listener removal, harmlessly.
func (br *Bridge) AwaitCompletion(closeCapture func(), timeout time.Duration) *Listener {
	l := &Listener{fired: make(chan struct{})}

	signal := make(chan struct{}, 1)
	fire := func() {
		select {
		case signal <- struct{}{}:
		default:
		}
	}

	sub := br.bus.Subscribe(func(msg bus.Message) {
		c, ok := msg.(Completion)
		if !ok || c.Type != MessageType || !c.Success {
			return
		}
		fire()
	})
	timer := time.AfterFunc(timeout, fire)

	go func() {
		<-signal
		closeCapture()
		sub.Cancel()
		timer.Stop()
		close(l.fired)
	}()

	return l
}

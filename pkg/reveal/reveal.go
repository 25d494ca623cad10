// Package reveal computes entrance-animation classes and exposes the
// one-shot viewport visibility capability used to trigger them.
package reveal

import (
	"context"
	"strings"
	"sync"
)

// Animation selects the entrance effect.
type Animation string

const (
	Up   Animation = "up"
	Fade Animation = "fade"
)

// Threshold is the fraction of an element that must be on screen before it
// counts as visible.
const Threshold = 0.1

// MaxDelay is the largest supported delay step.
const MaxDelay = 4

var (
	baseClasses = map[Animation]string{
		Up:   "transform transition-all duration-700 ease-out",
		Fade: "transition-opacity duration-700 ease-out",
	}
	hiddenClasses = map[Animation]string{
		Up:   "translate-y-8 opacity-0",
		Fade: "opacity-0",
	}
	shownClasses = map[Animation]string{
		Up:   "translate-y-0 opacity-100",
		Fade: "opacity-100",
	}
	delayClasses = [...]string{"delay-0", "delay-100", "delay-200", "delay-300", "delay-500"}
)

// ParseAnimation maps a raw name onto an Animation, defaulting to Up.
func ParseAnimation(raw string) Animation {
	if Animation(strings.TrimSpace(raw)) == Fade {
		return Fade
	}
	return Up
}

// DelayClass returns the class for delay step n, or "" outside [0, MaxDelay].
func DelayClass(n int) string {
	if n < 0 || n > MaxDelay {
		return ""
	}
	return delayClasses[n]
}

// Classes returns the class list for an element in the given state.
func Classes(animation Animation, delay int, visible bool) string {
	if _, ok := baseClasses[animation]; !ok {
		animation = Up
	}
	parts := []string{baseClasses[animation]}
	if d := DelayClass(delay); d != "" {
		parts = append(parts, d)
	}
	if visible {
		parts = append(parts, shownClasses[animation])
	} else {
		parts = append(parts, hiddenClasses[animation])
	}
	return strings.Join(parts, " ")
}

// Viewport reports when observed elements enter or leave the visible area.
// Observe returns a function that stops the observation; calling it more
// than once is allowed.
type Viewport interface {
	Observe(id string, fn func(visible bool)) (unobserve func())
}

// Once delivers a single true on the returned channel the first time id
// becomes visible, then stops observing and closes the channel. If ctx ends
// first the channel closes without a value.
func Once(ctx context.Context, vp Viewport, id string) <-chan bool {
	out := make(chan bool, 1)
	signal := make(chan struct{}, 1)

	unobserve := vp.Observe(id, func(visible bool) {
		if !visible {
			return
		}
		select {
		case signal <- struct{}{}:
		default:
		}
	})

	go func() {
		defer close(out)
		defer unobserve()
		select {
		case <-signal:
			out <- true
		case <-ctx.Done():
		}
	}()
	return out
}

// Tracker is a Viewport fed by explicit Report calls, as when a remote
// client tells the server which elements scrolled into view.
type Tracker struct {
	mu        sync.Mutex
	next      uint64
	observers map[string]map[uint64]func(bool)
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{observers: make(map[string]map[uint64]func(bool))}
}

// Observe implements Viewport.
func (t *Tracker) Observe(id string, fn func(visible bool)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	key := t.next
	if t.observers[id] == nil {
		t.observers[id] = make(map[uint64]func(bool))
	}
	t.observers[id][key] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.observers[id], key)
			if len(t.observers[id]) == 0 {
				delete(t.observers, id)
			}
		})
	}
}

// Report notifies the observers of id. Callbacks run on the caller's
// goroutine without the tracker lock held.
func (t *Tracker) Report(id string, visible bool) {
	t.mu.Lock()
	fns := make([]func(bool), 0, len(t.observers[id]))
	for _, fn := range t.observers[id] {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn(visible)
	}
}

// Observed reports whether anything still watches id.
func (t *Tracker) Observed(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.observers[id]) > 0
}

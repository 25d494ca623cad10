package contact

import "time"

// Option customises a Controller.
type Option func(*Controller)

// WithTiming overrides the submit delay and feedback lifetime.
func WithTiming(timing Timing) Option {
	return func(c *Controller) {
		c.timing = timing.normalized()
	}
}

// WithScheduler injects the timer source. Defaults to SystemScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithLoop routes timer callbacks through loop so they run on the loop
// goroutine. Required whenever the scheduler fires on other goroutines.
func WithLoop(loop *Loop) Option {
	return func(c *Controller) {
		if loop != nil {
			c.post = loop.Post
		}
	}
}

// WithObserver registers the attempt/delivery observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithStateListener registers fn to receive the state after every event.
func WithStateListener(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithClock overrides the time source used to stamp delivered messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns one contact form: its State, its timers and the
// notifications that follow each transition. It is not safe for concurrent
// use; every call must come from the same goroutine, normally the one running
// the Loop passed through WithLoop.
type Controller struct {
	timing    Timing
	scheduler Scheduler
	post      func(func()) bool
	observer  Observer
	onChange  func(State)
	now       func() time.Time

	state  State
	timers map[TimerKind]Timer
	gen    map[TimerKind]uint64
	closed bool
}

// NewController builds a Controller in the idle state.
func NewController(options ...Option) *Controller {
	c := &Controller{
		timing:    DefaultTiming(),
		scheduler: SystemScheduler{},
		observer:  NopObserver{},
		now:       time.Now,
		state:     NewState(),
		timers:    make(map[TimerKind]Timer),
		gen:       make(map[TimerKind]uint64),
	}
	c.post = func(fn func()) bool {
		fn()
		return true
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Timing returns the delays in use.
func (c *Controller) Timing() Timing {
	return c.timing
}

// Pending reports whether a timer of kind is armed.
func (c *Controller) Pending(kind TimerKind) bool {
	_, ok := c.timers[kind]
	return ok
}

// Dispatch runs event through Reduce, applies the resulting effects and
// notifies the state listener. Events dispatched after Close are ignored.
func (c *Controller) Dispatch(event Event) State {
	if c.closed || event == nil {
		return c.state
	}
	next, effects := Reduce(c.timing, c.state, event)
	c.state = next
	for _, eff := range effects {
		c.apply(eff)
	}
	if c.onChange != nil {
		c.onChange(c.state)
	}
	return c.state
}

// Input is shorthand for Dispatch(Input{...}).
func (c *Controller) Input(field Field, value string) State {
	return c.Dispatch(Input{Field: field, Value: value})
}

// Submit is shorthand for Dispatch(Submit{}).
func (c *Controller) Submit() State {
	return c.Dispatch(Submit{})
}

// Close resets the form and cancels every pending timer. The controller
// accepts no further events.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.Dispatch(Reset{})
	c.closed = true
}

func (c *Controller) apply(eff Effect) {
	switch e := eff.(type) {
	case Schedule:
		c.cancel(e.Timer)
		c.gen[e.Timer]++
		kind, gen, ev := e.Timer, c.gen[e.Timer], e.Event
		c.timers[kind] = c.scheduler.AfterFunc(e.After, func() {
			c.post(func() {
				c.fire(kind, gen, ev)
			})
		})
	case Cancel:
		c.cancel(e.Timer)
	case Attempted:
		c.observer.Attempted(e.Valid)
	case Deliver:
		c.observer.Delivered(NewMessage(e.Form, c.now()))
	}
}

func (c *Controller) cancel(kind TimerKind) {
	if t, ok := c.timers[kind]; ok {
		t.Stop()
		delete(c.timers, kind)
	}
	c.gen[kind]++
}

func (c *Controller) fire(kind TimerKind, gen uint64, ev Event) {
	if c.gen[kind] != gen {
		return
	}
	delete(c.timers, kind)
	c.Dispatch(ev)
}

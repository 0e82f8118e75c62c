package frame

import "errors"

// ErrRunning is returned by Start when the loop is already registered.
var ErrRunning = errors.New("frame: loop already started")

// Host schedules the animation callback once per displayed frame. Passing
// nil deregisters the current callback.
type Host interface {
	SetAnimationLoop(cb func(timeMs float64))
}

// Start registers Tick with host.
func (l *Loop) Start(host Host) error {
	if l.running {
		return ErrRunning
	}
	l.host = host
	l.running = true
	host.SetAnimationLoop(l.Tick)
	return nil
}

// Stop deregisters the loop and releases renderer resources. Calling Stop on
// a stopped loop does nothing.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.host.SetAnimationLoop(nil)
	l.host = nil
	if r, ok := l.ctx.Renderer.(Releaser); ok {
		r.Release()
	}
}

// Running reports whether the loop is registered with a host.
func (l *Loop) Running() bool {
	return l.running
}

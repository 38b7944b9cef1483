package playback

// Result describes the outcome of a Flush
type Result struct {
	Index   int  // cursor index after every queued event was applied
	Changed bool // true if the index or pause state moved
	Quit    bool // true if a quit key was seen
}

// Dispatcher queues host events and applies them to a Controller in
// arrival order. A key pressed between two timer ticks is queued ahead of
// the second tick and so is applied before it.
type Dispatcher struct {
	ctrl     *Controller
	bindings Bindings
	queue    []Command
}

// NewDispatcher returns a Dispatcher driving ctrl. A nil bindings map
// means DefaultBindings.
func NewDispatcher(ctrl *Controller, bindings Bindings) *Dispatcher {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &Dispatcher{
		ctrl:     ctrl,
		bindings: bindings,
	}
}

// Controller returns the cursor this Dispatcher drives
func (d *Dispatcher) Controller() *Controller {
	return d.ctrl
}

// Key queues a key press. Unbound keys are dropped and Key reports false.
func (d *Dispatcher) Key(name string) bool {
	cmd := d.bindings.Lookup(name)
	if cmd == None {
		return false
	}
	d.queue = append(d.queue, cmd)
	return true
}

// Command queues a command directly, bypassing the bindings
func (d *Dispatcher) Command(cmd Command) {
	if cmd != None {
		d.queue = append(d.queue, cmd)
	}
}

// Tick queues a timer tick
func (d *Dispatcher) Tick() {
	d.queue = append(d.queue, Tick)
}

// Pending returns the number of queued events
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Flush applies every queued event in the order it was queued and
// empties the queue
func (d *Dispatcher) Flush() Result {
	idx, paused := d.ctrl.Index(), d.ctrl.Paused()
	var res Result
	for _, cmd := range d.queue {
		if cmd == Quit {
			res.Quit = true
			continue
		}
		d.ctrl.Apply(cmd)
	}
	d.queue = d.queue[:0]
	res.Index = d.ctrl.Index()
	res.Changed = res.Index != idx || d.ctrl.Paused() != paused
	return res
}

package viewstate

import "time"

const (
	CounterDuration = 2000 * time.Millisecond
	CounterInterval = 50 * time.Millisecond

	// VisibleThreshold is the share of the milestones section that must be
	// on screen before the counters start.
	VisibleThreshold = 0.2
)

// Counter animates from 0 to Target in fixed steps.
type Counter struct {
	Target int
	value  int
	step   int
	done   bool
}

func NewCounter(target int) *Counter {
	ticks := int(CounterDuration / CounterInterval)
	return &Counter{Target: target, step: (target + ticks - 1) / ticks}
}

// Tick advances one interval, clamping at the target. Ticks after the
// counter is done have no effect.
func (c *Counter) Tick() int {
	if c.done {
		return c.value
	}
	c.value += c.step
	if c.value >= c.Target {
		c.value = c.Target
		c.done = true
	}
	return c.value
}

func (c *Counter) Value() int {
	return c.value
}

func (c *Counter) Done() bool {
	return c.done
}

// CounterSet runs several counters off one timer.
type CounterSet struct {
	counters []*Counter
	started  bool
}

func NewCounterSet(targets ...int) *CounterSet {
	s := &CounterSet{}
	for _, t := range targets {
		s.counters = append(s.counters, NewCounter(t))
	}
	return s
}

// Start marks the set as running. It reports false when it was already
// started.
func (s *CounterSet) Start() bool {
	if s.started {
		return false
	}
	s.started = true
	return true
}

func (s *CounterSet) Started() bool {
	return s.started
}

// Tick advances every unfinished counter and reports whether any is still
// running.
func (s *CounterSet) Tick() bool {
	running := false
	for _, c := range s.counters {
		c.Tick()
		if !c.done {
			running = true
		}
	}
	return running
}

func (s *CounterSet) Done() bool {
	for _, c := range s.counters {
		if !c.done {
			return false
		}
	}
	return true
}

func (s *CounterSet) Values() []int {
	out := make([]int, len(s.counters))
	for i, c := range s.counters {
		out[i] = c.value
	}
	return out
}

// VisibilityTrigger fires the first time the observed ratio reaches the
// threshold and never again.
type VisibilityTrigger struct {
	Threshold float64
	fired     bool
}

func (v *VisibilityTrigger) Observe(ratio float64) bool {
	if v.fired || ratio < v.Threshold {
		return false
	}
	v.fired = true
	return true
}

func (v *VisibilityTrigger) Fired() bool {
	return v.fired
}

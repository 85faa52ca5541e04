package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration

	// Simulated clock for headless runs; zero period means wall clock.
	period time.Duration
	clock  time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

// newSimTime returns a clock that starts at start and moves by exactly
// period on every step.
func newSimTime(start time.Time, period time.Duration) *hostTime {
	t := newHostTime()
	t.period = period
	t.clock = start
	return t
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) Now() time.Time {
	if t.period > 0 {
		return t.clock
	}
	return time.Now()
}

func (t *hostTime) step(n uint64) {
	if t.period > 0 {
		t.clock = t.clock.Add(time.Duration(n) * t.period)
		t.stepN(uint64(time.Duration(n) * t.period / time.Millisecond))
		return
	}

	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(n)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	const tickDur = time.Millisecond
	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}

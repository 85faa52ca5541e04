package view

const queueSlots = 64

// Queue is a fixed-size FIFO of input events. Raw input is pushed as it is
// captured and drained once per tick by Step. Every move is kept, because
// tilt is clamped after each delta and a merged delta clamps differently. A
// full queue drops the new event and counts it.
type Queue struct {
	head    uint32
	tail    uint32
	slots   [queueSlots]Event
	dropped uint64
}

// Push enqueues ev, returning false if it was dropped.
func (q *Queue) Push(ev Event) bool {
	if q.head-q.tail >= queueSlots {
		q.dropped++
		return false
	}
	q.slots[q.head%queueSlots] = ev
	q.head++
	return true
}

// Pop dequeues the oldest event.
func (q *Queue) Pop() (Event, bool) {
	if q.tail == q.head {
		return Event{}, false
	}
	ev := q.slots[q.tail%queueSlots]
	q.tail++
	return ev, true
}

func (q *Queue) Len() int { return int(q.head - q.tail) }

// Dropped returns how many events were lost to overflow so far.
func (q *Queue) Dropped() uint64 { return q.dropped }

// Drain pops every queued event in order and passes it to fn.
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for ev, ok := q.Pop(); ok; ev, ok = q.Pop() {
		fn(ev)
		n++
	}
	return n
}

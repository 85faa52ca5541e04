package view

// StepResult summarizes one drain of the input queue.
type StepResult struct {
	Events     int
	DragStarts int
	// Consumed counts touch moves taken by an active drag. Hosts that scroll
	// on touch should suppress their default handling for these.
	Consumed int
}

// Step drains q and applies every event to s in order.
func Step(s *State, q *Queue) StepResult {
	var res StepResult
	for {
		ev, ok := q.Pop()
		if !ok {
			return res
		}
		res.Events++
		wasDragging := s.Dragging
		if Apply(s, ev) {
			res.Consumed++
		}
		if s.Dragging && !wasDragging {
			res.DragStarts++
		}
	}
}

// Apply runs one event through the idle/dragging state machine. It reports
// whether the event was consumed by a touch drag.
func Apply(s *State, ev Event) bool {
	switch ev.Kind {
	case EventPointerDown, EventTouchStart:
		s.Dragging = true
		s.LastX, s.LastY = ev.X, ev.Y
		return false

	case EventPointerMove, EventTouchMove:
		s.Hovering = true
		s.HoverX, s.HoverY = ev.X, ev.Y
		if !s.Dragging {
			return false
		}
		dx := ev.X - s.LastX
		dy := ev.Y - s.LastY
		s.Rotation -= dx * RotationSensitivity
		s.Tilt = ClampTilt(s.Tilt - dy*TiltSensitivity)
		s.LastX, s.LastY = ev.X, ev.Y
		return ev.Kind.touch()

	case EventPointerLeave:
		s.Hovering = false
		s.Dragging = false
		return false

	case EventPointerUp, EventTouchEnd, EventTouchCancel:
		s.Dragging = false
		return false
	}
	return false
}

package view

// EventKind identifies a pointer or touch event.
type EventKind uint8

const (
	EventPointerDown EventKind = iota + 1
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventTouchCancel
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	case EventPointerLeave:
		return "pointer-leave"
	case EventTouchStart:
		return "touch-start"
	case EventTouchMove:
		return "touch-move"
	case EventTouchEnd:
		return "touch-end"
	case EventTouchCancel:
		return "touch-cancel"
	default:
		return "unknown"
	}
}

// Event is one input sample in logical surface coordinates. X and Y are
// unused for release and leave events.
type Event struct {
	Kind EventKind
	X, Y float64
}

func (k EventKind) touch() bool {
	return k >= EventTouchStart && k <= EventTouchCancel
}

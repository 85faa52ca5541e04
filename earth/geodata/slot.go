package geodata

import "github.com/paulmach/orb"

// SlotState tells whether a slot holds data.
type SlotState uint8

const (
	NotLoaded SlotState = iota
	Loaded
)

func (s SlotState) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "not-loaded"
}

// Slot holds the rings of one layer. The zero value is NotLoaded. A slot is
// filled at most once and never cleared; a pending or failed load looks the
// same as one that was never started.
type Slot struct {
	state SlotState
	rings []orb.Ring
}

func (s *Slot) State() SlotState { return s.state }

// Rings returns the loaded rings, or false while the slot is NotLoaded.
func (s *Slot) Rings() ([]orb.Ring, bool) {
	if s.state != Loaded {
		return nil, false
	}
	return s.rings, true
}

// Set loads rings into the slot. It returns false and leaves the slot
// untouched if it was already loaded.
func (s *Slot) Set(rings []orb.Ring) bool {
	if s.state == Loaded {
		return false
	}
	s.rings = rings
	s.state = Loaded
	return true
}

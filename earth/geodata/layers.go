package geodata

import "github.com/paulmach/orb"

// Layer names one of the three geo layers.
type Layer string

const (
	LayerLand     Layer = "land"
	LayerCountryA Layer = "country-a"
	LayerCountryB Layer = "country-b"
)

// Layers is the set of slots the renderer draws from. It is owned by the
// loop goroutine.
type Layers struct {
	Land     Slot
	CountryA Slot
	CountryB Slot
}

// LayerStatus is a snapshot of one slot for display.
type LayerStatus struct {
	Layer  Layer     `json:"layer"`
	State  SlotState `json:"-"`
	Status string    `json:"status"`
	Rings  int       `json:"rings"`
	Points int       `json:"points"`
}

// Slot returns the slot for l, or nil for an unknown layer.
func (ls *Layers) Slot(l Layer) *Slot {
	switch l {
	case LayerLand:
		return &ls.Land
	case LayerCountryA:
		return &ls.CountryA
	case LayerCountryB:
		return &ls.CountryB
	}
	return nil
}

// Apply stores a successful result in its slot. Failed results and results
// for an already loaded slot are ignored. It reports whether a slot changed.
func (ls *Layers) Apply(r Result) bool {
	if r.Err != nil {
		return false
	}
	s := ls.Slot(r.Layer)
	if s == nil {
		return false
	}
	return s.Set(r.Rings)
}

// Status reports the three layers in draw order.
func (ls *Layers) Status() []LayerStatus {
	out := make([]LayerStatus, 0, 3)
	for _, l := range []Layer{LayerLand, LayerCountryA, LayerCountryB} {
		s := ls.Slot(l)
		st := LayerStatus{Layer: l, State: s.State(), Status: s.State().String()}
		if rings, ok := s.Rings(); ok {
			st.Rings = len(rings)
			st.Points = countPoints(rings)
		}
		out = append(out, st)
	}
	return out
}

func countPoints(rings []orb.Ring) int {
	n := 0
	for _, r := range rings {
		n += len(r)
	}
	return n
}

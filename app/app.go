// Package app runs the globe: it owns the view state and the loaded layers,
// and turns one host step into one rendered frame.
package app

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"globe/earth/geodata"
	"globe/earth/hud"
	"globe/earth/metrics"
	"globe/earth/raster"
	"globe/earth/render"
	"globe/earth/view"
	"globe/hal"
	"globe/internal/buildinfo"
	"globe/internal/debugsrv"
	"globe/internal/logger"
)

// publishEvery is how many steps pass between debug snapshots.
const publishEvery = 15

// Options wires a System to its collaborators. Zero fields get defaults.
type Options struct {
	Config   Config
	Log      *slog.Logger
	Metrics  *metrics.Metrics
	Snapshot *debugsrv.Snapshot // nil disables publishing
	Client   *http.Client
}

// System is the single owner of all mutable globe state. Step must be called
// from one goroutine; background fetches hand their results over through the
// loader and are applied at the start of a step.
type System struct {
	h   hal.HAL
	cfg Config
	log *slog.Logger
	m   *metrics.Metrics

	st     *view.State
	q      view.Queue
	layers geodata.Layers
	loader *geodata.Loader

	r    *render.Renderer
	surf *raster.Surface
	hud  *hud.Overlay

	showHUD bool
	snap    *debugsrv.Snapshot

	steps     uint64
	lastStats render.Stats

	tpsSteps uint64
	tpsMs    uint64
	lastTick uint64
	tps      float64

	closed bool
}

// New builds the system and starts the layer fetches. It does not block.
func New(h hal.HAL, opts Options) *System {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	cfg := opts.Config

	s := &System{
		h:       h,
		cfg:     cfg,
		log:     log,
		m:       m,
		st:      view.NewState(),
		loader:  geodata.NewLoader(opts.Client, log),
		r:       render.New(render.SourceMarker(cfg.Labels.Source), render.DestinationMarker(cfg.Labels.Destination)),
		surf:    raster.New(nil, 1),
		hud:     hud.New(),
		showHUD: cfg.HUD.Enabled,
		snap:    opts.Snapshot,
	}

	log.Info("globe_start", "build", buildinfo.String(), "fetch", cfg.Data.Fetch, "hud", s.showHUD)
	if cfg.Data.Fetch {
		s.loader.Start(Sources(cfg.Data)...)
	}
	return s
}

// Sources lists the three layer fetches described by cfg.
func Sources(cfg DataConfig) []geodata.Source {
	return []geodata.Source{
		geodata.LandSource(cfg.LandURL),
		geodata.CountrySource(geodata.LayerCountryA, cfg.CountryAURL),
		geodata.CountryByCodeSource(geodata.LayerCountryB, cfg.CountryBURL, cfg.CountryBCode),
	}
}

// Step processes pending input and completed loads, then renders one frame.
func (s *System) Step() (err error) {
	if s.closed {
		return nil
	}
	defer s.recoverPanic(&err)

	s.loader.Drain(s.applyResult)

	if quit := s.pollKeys(); quit {
		return hal.ErrQuit
	}
	s.pollPointer()

	res := view.Step(s.st, &s.q)
	if res.DragStarts > 0 {
		s.m.DragSessions.Add(float64(res.DragStarts))
	}

	disp := s.h.Display()
	fb := disp.Framebuffer()
	vp := disp.Viewport()
	if vp.Scale <= 0 {
		vp.Scale = 1
	}
	if img := fb.Image(); img != s.surf.Image() || vp.Scale != s.surf.Scale() {
		s.surf.Attach(img, vp.Scale)
	}

	t0 := time.Now()
	s.lastStats = s.r.Frame(s.surf, s.st, &s.layers, render.Viewport{
		Width:  float64(vp.Width),
		Height: float64(vp.Height),
		DPR:    vp.Scale,
	}, s.h.Time().Now())
	if !s.lastStats.Skipped {
		s.m.ObserveFrame(time.Since(t0))
	}

	s.steps++
	s.updateTPS()

	if s.showHUD && !s.lastStats.Skipped {
		s.hud.Draw(s.surf, hudScale(vp.Scale), s.info())
	}
	if s.snap != nil && s.steps%publishEvery == 0 {
		s.snap.Publish(fb.Image(), s.layers.Status(), s.steps)
	}
	return fb.Present()
}

// Close stops rendering. Later steps do nothing. Fetches still in flight run
// to completion and their results are discarded.
func (s *System) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.log.Info("globe_stop", "steps", s.steps, "pending_loads", s.loader.Running())
}

// State exposes the view state for inspection.
func (s *System) State() *view.State { return s.st }

// Layers exposes the loaded geo layers for inspection.
func (s *System) Layers() *geodata.Layers { return &s.layers }

// LastStats reports what the most recent frame drew.
func (s *System) LastStats() render.Stats { return s.lastStats }

// Pending reports how many layer fetches are still running.
func (s *System) Pending() int { return s.loader.Running() }

func (s *System) applyResult(r geodata.Result) {
	s.m.ObserveLoad(string(r.Layer), r.Err)
	if r.Err != nil {
		s.log.Warn("layer_load_failed", "layer", r.Layer, "err", r.Err, "duration", r.Duration)
		return
	}
	if !s.layers.Apply(r) {
		return
	}
	s.m.LayersLoaded.Inc()
	s.log.Info("layer_loaded", "layer", r.Layer, "rings", len(r.Rings), "duration", r.Duration)
}

func (s *System) pollKeys() (quit bool) {
	in := s.h.Input()
	if in == nil || in.Keyboard() == nil {
		return false
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyF1:
				s.showHUD = !s.showHUD
			case hal.KeyEscape:
				return true
			}
		default:
			return false
		}
	}
}

func (s *System) pollPointer() {
	in := s.h.Input()
	if in == nil || in.Pointer() == nil {
		return
	}
	ch := in.Pointer().Events()
	for {
		select {
		case ev := <-ch:
			kind, ok := eventKind(ev.Kind)
			if !ok {
				continue
			}
			if !s.q.Push(view.Event{Kind: kind, X: ev.X, Y: ev.Y}) {
				s.m.InputDropped.Inc()
			}
		default:
			return
		}
	}
}

func eventKind(k hal.PointerKind) (view.EventKind, bool) {
	switch k {
	case hal.PointerDown:
		return view.EventPointerDown, true
	case hal.PointerMove:
		return view.EventPointerMove, true
	case hal.PointerUp:
		return view.EventPointerUp, true
	case hal.PointerLeave:
		return view.EventPointerLeave, true
	case hal.TouchStart:
		return view.EventTouchStart, true
	case hal.TouchMove:
		return view.EventTouchMove, true
	case hal.TouchEnd:
		return view.EventTouchEnd, true
	case hal.TouchCancel:
		return view.EventTouchCancel, true
	}
	return 0, false
}

// updateTPS derives steps per second from the millisecond tick stream.
func (s *System) updateTPS() {
	t := s.h.Time()
	if t == nil || t.Ticks() == nil {
		return
	}
	ch := t.Ticks()
drain:
	for {
		select {
		case seq := <-ch:
			if seq > s.lastTick {
				s.tpsMs += seq - s.lastTick
				s.lastTick = seq
			}
		default:
			break drain
		}
	}
	s.tpsSteps++
	if s.tpsMs >= 1000 {
		s.tps = float64(s.tpsSteps) * 1000 / float64(s.tpsMs)
		s.tpsSteps, s.tpsMs = 0, 0
	}
}

func (s *System) info() hud.Info {
	return hud.Info{
		Title:    "globe " + buildinfo.Short(),
		Ticks:    s.steps,
		TPS:      s.tps,
		Rotation: s.st.Rotation,
		Tilt:     s.st.Tilt,
		Dragging: s.st.Dragging,
		Dropped:  s.q.Dropped(),
		Layers:   s.layers.Status(),
	}
}

func hudScale(dpr float64) int16 {
	k := int16(math.Round(dpr))
	if k < 1 {
		return 1
	}
	return k
}

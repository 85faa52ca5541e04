package app

import (
	"bytes"
	"image"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"globe/earth/geodata"
	"globe/earth/metrics"
	"globe/earth/view"
	"globe/hal"
	"globe/internal/debugsrv"
)

type fakeFB struct {
	img *image.RGBA
}

func (f *fakeFB) Width() int              { return f.img.Rect.Dx() }
func (f *fakeFB) Height() int             { return f.img.Rect.Dy() }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGBA8888 }
func (f *fakeFB) StrideBytes() int        { return f.img.Stride }
func (f *fakeFB) Buffer() []byte          { return f.img.Pix }
func (f *fakeFB) Image() *image.RGBA      { return f.img }
func (f *fakeFB) Present() error          { return nil }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i], f.img.Pix[i+1], f.img.Pix[i+2], f.img.Pix[i+3] = r, g, b, 255
	}
}

type fakeLogger struct{ bytes.Buffer }

func (l *fakeLogger) WriteLineString(s string) { l.WriteString(s + "\n") }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.Write(append(b, '\n')) }

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeHAL struct {
	log   *fakeLogger
	fb    *fakeFB
	vp    hal.Viewport
	keys  chan hal.KeyEvent
	ptr   chan hal.PointerEvent
	ticks chan uint64
	now   time.Time

	panicOnViewport bool
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		log:   &fakeLogger{},
		fb:    &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h))},
		vp:    hal.Viewport{Width: w, Height: h, Scale: 1},
		keys:  make(chan hal.KeyEvent, 16),
		ptr:   make(chan hal.PointerEvent, 256),
		ticks: make(chan uint64, 1024),
		now:   time.Unix(1700000000, 0),
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }

func (h *fakeHAL) Viewport() hal.Viewport {
	if h.panicOnViewport {
		h.panicOnViewport = false
		panic("viewport exploded")
	}
	return h.vp
}

func (h *fakeHAL) Keyboard() hal.Keyboard { return fakeKeyboard{ch: h.keys} }
func (h *fakeHAL) Pointer() hal.Pointer   { return fakePointer{ch: h.ptr} }

func (h *fakeHAL) Ticks() <-chan uint64 { return h.ticks }
func (h *fakeHAL) Now() time.Time       { return h.now }

func offlineConfig() Config {
	cfg := DefaultConfig()
	cfg.Data.Fetch = false
	return cfg
}

func mustStep(t *testing.T, s *System) {
	t.Helper()
	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestStepRendersAndAutoRotates(t *testing.T) {
	h := newFakeHAL(200, 150)
	m := metrics.New()
	s := New(h, Options{Config: offlineConfig(), Metrics: m})

	before := s.State().Rotation
	mustStep(t, s)

	if got := s.State().Rotation - before; math.Abs(got-view.AutoRotateStep) > 1e-12 {
		t.Fatalf("rotation advanced by %v, want %v", got, view.AutoRotateStep)
	}
	stats := s.LastStats()
	if stats.Skipped || stats.Markers == 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if got := testutil.ToFloat64(m.Frames); got != 1 {
		t.Fatalf("frames: got %v want 1", got)
	}
	c := h.fb.img.RGBAAt(100, 75)
	if c.A != 255 {
		t.Fatalf("center pixel not painted: %+v", c)
	}
}

func TestStepSkipsEmptyViewport(t *testing.T) {
	h := newFakeHAL(10, 10)
	h.vp = hal.Viewport{Width: 0, Height: 10, Scale: 1}
	m := metrics.New()
	s := New(h, Options{Config: offlineConfig(), Metrics: m})

	before := s.State().Rotation
	mustStep(t, s)
	if !s.LastStats().Skipped {
		t.Fatalf("expected skipped frame")
	}
	if s.State().Rotation != before {
		t.Fatalf("rotation changed on empty viewport")
	}
	if got := testutil.ToFloat64(m.Frames); got != 0 {
		t.Fatalf("frames: got %v want 0", got)
	}
}

func TestPointerDragRotates(t *testing.T) {
	h := newFakeHAL(200, 150)
	m := metrics.New()
	s := New(h, Options{Config: offlineConfig(), Metrics: m})
	start := s.State().Rotation

	h.ptr <- hal.PointerEvent{Kind: hal.PointerDown, X: 100, Y: 100}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerMove, X: 150, Y: 100}
	mustStep(t, s)

	st := s.State()
	if !st.Dragging {
		t.Fatalf("expected drag in progress")
	}
	want := start - 50*view.RotationSensitivity
	if math.Abs(st.Rotation-want) > 1e-12 {
		t.Fatalf("rotation: got %v want %v", st.Rotation, want)
	}
	if got := testutil.ToFloat64(m.DragSessions); got != 1 {
		t.Fatalf("drag sessions: got %v want 1", got)
	}

	h.ptr <- hal.PointerEvent{Kind: hal.PointerUp}
	mustStep(t, s)
	if s.State().Dragging {
		t.Fatalf("drag should end on pointer up")
	}
}

func TestPointerOverflowIsCounted(t *testing.T) {
	h := newFakeHAL(50, 50)
	m := metrics.New()
	s := New(h, Options{Config: offlineConfig(), Metrics: m})

	// Alternating kinds defeat move merging.
	for i := 0; i < 100; i++ {
		kind := hal.PointerDown
		if i%2 == 1 {
			kind = hal.PointerUp
		}
		h.ptr <- hal.PointerEvent{Kind: kind, X: float64(i), Y: 1}
	}
	mustStep(t, s)

	if got := testutil.ToFloat64(m.InputDropped); got != 36 {
		t.Fatalf("dropped: got %v want 36", got)
	}
}

func TestKeys(t *testing.T) {
	h := newFakeHAL(50, 50)
	s := New(h, Options{Config: offlineConfig()})

	h.keys <- hal.KeyEvent{Code: hal.KeyF1, Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeyF1, Press: false}
	mustStep(t, s)
	if !s.showHUD {
		t.Fatalf("F1 should toggle the HUD on")
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := s.Step(); err != hal.ErrQuit {
		t.Fatalf("escape: got %v want ErrQuit", err)
	}
}

func TestCloseStopsSteps(t *testing.T) {
	h := newFakeHAL(50, 50)
	s := New(h, Options{Config: offlineConfig()})
	s.Close()

	before := s.State().Rotation
	mustStep(t, s)
	if s.State().Rotation != before {
		t.Fatalf("closed system should not render")
	}
}

func TestPanicIsRecovered(t *testing.T) {
	h := newFakeHAL(120, 80)
	s := New(h, Options{Config: offlineConfig()})

	h.panicOnViewport = true
	err := s.Step()
	if err == nil {
		t.Fatalf("expected error from panicking step")
	}
	if !s.closed {
		t.Fatalf("system should be closed after a panic")
	}
	white := 0
	for i := 0; i < len(h.fb.img.Pix); i += 4 {
		if h.fb.img.Pix[i] == 255 && h.fb.img.Pix[i+1] == 255 && h.fb.img.Pix[i+2] == 255 {
			white++
		}
	}
	if total := h.fb.Width() * h.fb.Height(); white < total/2 || white == total {
		t.Fatalf("panic screen not drawn: %d of %d pixels white", white, total)
	}
	if !bytes.Contains(h.log.Bytes(), []byte("goroutine")) {
		t.Fatalf("stack not logged:\n%s", h.log.String())
	}
}

func waitLoaded(t *testing.T, s *System) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for s.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("loads did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
	mustStep(t, s)
}

func TestLayersLoadInBackground(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/land.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,0]]]}}]}`))
	})
	mux.HandleFunc("/uz.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[56,41],[73,41],[73,45],[56,41]]]}}`))
	})
	mux.HandleFunc("/world.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"ISO_A2":"KR"},"geometry":{"type":"Polygon","coordinates":[[[126,34],[129,34],[129,38],[126,34]]]}}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Data.LandURL = srv.URL + "/land.json"
	cfg.Data.CountryAURL = srv.URL + "/uz.json"
	cfg.Data.CountryBURL = srv.URL + "/world.json"

	h := newFakeHAL(200, 150)
	m := metrics.New()
	s := New(h, Options{Config: cfg, Metrics: m, Client: srv.Client()})
	waitLoaded(t, s)

	for _, l := range []geodata.Layer{geodata.LayerLand, geodata.LayerCountryA, geodata.LayerCountryB} {
		if st := s.Layers().Slot(l).State(); st != geodata.Loaded {
			t.Fatalf("%s: got %v want loaded", l, st)
		}
	}
	if got := testutil.ToFloat64(m.LayersLoaded); got != 3 {
		t.Fatalf("layers loaded gauge: got %v want 3", got)
	}
	if got := testutil.ToFloat64(m.GeoLoads.WithLabelValues("country-b", "ok")); got != 1 {
		t.Fatalf("country-b ok loads: got %v", got)
	}
}

func TestFailedLoadsStillRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Data.LandURL = srv.URL + "/a"
	cfg.Data.CountryAURL = srv.URL + "/b"
	cfg.Data.CountryBURL = srv.URL + "/c"

	h := newFakeHAL(200, 150)
	m := metrics.New()
	s := New(h, Options{Config: cfg, Metrics: m, Client: srv.Client()})
	waitLoaded(t, s)

	for _, ls := range s.Layers().Status() {
		if ls.State != geodata.NotLoaded {
			t.Fatalf("%s should stay not loaded", ls.Layer)
		}
	}
	if got := testutil.ToFloat64(m.GeoLoads.WithLabelValues("land", "error")); got != 1 {
		t.Fatalf("land errors: got %v", got)
	}
	if s.LastStats().Skipped || s.LastStats().Markers == 0 {
		t.Fatalf("globe should render without layers: %+v", s.LastStats())
	}
}

func TestSnapshotPublished(t *testing.T) {
	h := newFakeHAL(64, 48)
	snap := &debugsrv.Snapshot{}
	s := New(h, Options{Config: offlineConfig(), Snapshot: snap})
	router := debugsrv.NewRouter(snap, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before publish: got %d", rec.Code)
	}

	for i := 0; i < publishEvery; i++ {
		mustStep(t, s)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("after publish: got %d", rec.Code)
	}
}

func TestEventKindMapping(t *testing.T) {
	if k, ok := eventKind(hal.TouchCancel); !ok || k != view.EventTouchCancel {
		t.Fatalf("touch cancel: got %v %v", k, ok)
	}
	if _, ok := eventKind(hal.PointerKind(99)); ok {
		t.Fatalf("unknown kind should not map")
	}
}

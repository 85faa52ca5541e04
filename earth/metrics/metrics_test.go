package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveFrame(3 * time.Millisecond)
	m.ObserveLoad("land", nil)
	m.ObserveLoad("country-b", errors.New("boom"))
	m.DragSessions.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		"globe_frames_total 1",
		"globe_frame_render_seconds_count 1",
		"globe_drag_sessions_total 1",
		`globe_geo_loads_total{layer="land",outcome="ok"} 1`,
		`globe_geo_loads_total{layer="country-b",outcome="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Frames.Inc()
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(rec.Body.String(), "globe_frames_total 1") {
		t.Fatalf("second registry saw the first one's frames")
	}
}

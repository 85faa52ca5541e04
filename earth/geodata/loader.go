package geodata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb"
)

// Result is the outcome of one layer fetch. Err is for logging and metrics
// only; the renderer never sees it.
type Result struct {
	Layer    Layer
	Rings    []orb.Ring
	Err      error
	Duration time.Duration
}

// Loader fetches geo layers over HTTP. Started loads complete in the
// background and are collected with Drain.
type Loader struct {
	client *http.Client
	log    *slog.Logger

	mu      sync.Mutex
	pending []Result
	running int
}

// NewLoader returns a loader using client, or http.DefaultClient if nil.
// Requests have no timeout unless the client sets one.
func NewLoader(client *http.Client, log *slog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{client: client, log: log}
}

// Load performs one fetch synchronously.
func (l *Loader) Load(ctx context.Context, src Source) Result {
	t0 := time.Now()
	rings, err := l.fetch(ctx, src)
	res := Result{Layer: src.Layer, Rings: rings, Err: err, Duration: time.Since(t0)}
	if err != nil {
		res.Rings = nil
		res.Err = fmt.Errorf("%s: %w", src.Layer, err)
	}
	return res
}

func (l *Loader) fetch(ctx context.Context, src Source) ([]orb.Ring, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	l.log.Debug("geo_req", "layer", src.Layer, "url", src.URL)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geodata: read body: %w", err)
	}

	doc, err := Decode(body)
	if err != nil {
		return nil, err
	}
	sel := src.Select
	if sel == nil {
		sel = selectAll
	}
	geoms, err := sel(doc)
	if err != nil {
		return nil, err
	}
	var rings []orb.Ring
	for _, g := range geoms {
		rings = appendRings(rings, g)
	}
	if len(rings) == 0 {
		return nil, ErrNoGeometry
	}
	return rings, nil
}

// Start launches one goroutine per source and returns immediately. Loads are
// never retried or cancelled.
func (l *Loader) Start(sources ...Source) {
	l.mu.Lock()
	l.running += len(sources)
	l.mu.Unlock()
	for _, src := range sources {
		go func(src Source) {
			res := l.Load(context.Background(), src)
			l.mu.Lock()
			l.pending = append(l.pending, res)
			l.running--
			l.mu.Unlock()
		}(src)
	}
}

// Drain hands every completed result to fn in completion order and reports
// how many there were. It must be called from the goroutine that owns the
// layers fn writes to.
func (l *Loader) Drain(fn func(Result)) int {
	l.mu.Lock()
	done := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, r := range done {
		fn(r)
	}
	return len(done)
}

// Running reports how many started loads have not completed yet.
func (l *Loader) Running() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

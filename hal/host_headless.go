package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Fixed logical surface and device pixel ratio.
	Width, Height int
	Scale         float64
}

// RunHeadless runs the app on a ticker without opening a window. The frame
// clock starts at the current time and advances by exactly one tick period
// per step, so frames are reproducible regardless of scheduling jitter.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(os.Stderr)
	h.t = newSimTime(time.Now(), d)
	h.setViewport(Viewport{Width: cfg.Width, Height: cfg.Height, Scale: cfg.Scale})
	return runHeadless(ctx, h, newApp(h), d, cfg.Ticks)
}

func runHeadless(ctx context.Context, h *hostHAL, step func() error, d time.Duration, limit uint64) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if err == ErrQuit {
						return nil
					}
					return err
				}
			}
			tick++
			if limit > 0 && tick >= limit {
				return nil
			}
		}
	}
}

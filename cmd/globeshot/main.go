// Command globeshot renders a single globe frame to a PNG file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"

	"globe/app"
	"globe/earth/geodata"
	"globe/earth/raster"
	"globe/earth/render"
	"globe/earth/view"
	"globe/internal/logger"
)

func main() {
	var (
		outPath    = flag.String("out", "globe.png", "Output PNG file.")
		width      = flag.Int("w", 960, "Logical width.")
		height     = flag.Int("h", 640, "Logical height.")
		dpr        = flag.Float64("dpr", 1, "Device pixel ratio.")
		rotation   = flag.Float64("rotation", view.InitialRotation, "Globe rotation in radians.")
		tilt       = flag.Float64("tilt", view.InitialTilt, "Globe tilt in radians (clamped).")
		at         = flag.Float64("t", 0, "Animation time in seconds since the epoch (0 = now).")
		fetch      = flag.Bool("fetch", false, "Fetch geo layers before rendering.")
		timeout    = flag.Duration("timeout", 20*time.Second, "Overall fetch timeout.")
		configPath = flag.String("config", "", "Path to a config file.")
		srcLabel   = flag.String("source-label", "", "Override the source marker label.")
		dstLabel   = flag.String("dest-label", "", "Override the destination marker label.")
	)
	flag.Parse()

	if *width <= 0 || *height <= 0 || *dpr <= 0 {
		fatalf("usage: globeshot -out globe.png [-w 960 -h 640 -dpr 1] [-rotation r -tilt t] [-fetch]")
	}

	_ = godotenv.Load(".env")
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if *srcLabel != "" {
		cfg.Labels.Source = *srcLabel
	}
	if *dstLabel != "" {
		cfg.Labels.Destination = *dstLabel
	}
	log := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	var layers geodata.Layers
	if *fetch {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		loader := geodata.NewLoader(nil, log)
		for _, src := range app.Sources(cfg.Data) {
			res := loader.Load(ctx, src)
			if res.Err != nil {
				log.Warn("layer_load_failed", "layer", res.Layer, "err", res.Err)
				continue
			}
			layers.Apply(res)
			log.Info("layer_loaded", "layer", res.Layer, "rings", len(res.Rings), "duration", res.Duration)
		}
		cancel()
	}

	now := time.Now()
	if *at > 0 {
		sec, frac := math.Modf(*at)
		now = time.Unix(int64(sec), int64(frac*1e9))
	}

	img := image.NewRGBA(image.Rect(0, 0, int(math.Round(float64(*width)**dpr)), int(math.Round(float64(*height)**dpr))))
	surf := raster.New(img, *dpr)

	// Frame applies one auto-rotate step before drawing.
	st := view.NewState()
	st.Rotation = *rotation - view.AutoRotateStep
	st.Tilt = view.ClampTilt(*tilt)

	r := render.New(render.SourceMarker(cfg.Labels.Source), render.DestinationMarker(cfg.Labels.Destination))
	stats := r.Frame(surf, st, &layers, render.Viewport{Width: float64(*width), Height: float64(*height), DPR: *dpr}, now)

	if err := writePNG(*outPath, img); err != nil {
		fatalf("write: %v", err)
	}
	log.Info("frame_written", "out", *outPath, "runs", stats.Subpaths, "markers", stats.Markers, "arc", stats.Arc)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"globe/app"
	"globe/earth/metrics"
	"globe/hal"
	"globe/internal/debugsrv"
	"globe/internal/logger"
)

func main() {
	var cfg hal.HeadlessConfig
	var configPath string
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: globe.yaml in . or ./configs).")
	flag.Parse()

	_ = godotenv.Load(".env")

	conf, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(os.Stderr, conf.Log.Level, conf.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := metrics.New()
	var snap *debugsrv.Snapshot
	if conf.Debug.Addr != "" {
		snap = &debugsrv.Snapshot{}
		go func() {
			if err := debugsrv.Run(ctx, conf.Debug.Addr, debugsrv.NewRouter(snap, m.Handler()), log); err != nil {
				log.Error("debug_server_error", "err", err)
			}
		}()
	}

	var sys *app.System
	newApp := func(h hal.HAL) func() error {
		sys = app.New(h, app.Options{
			Config:   *conf,
			Log:      logger.New(h.Logger(), conf.Log.Level, conf.Log.Format),
			Metrics:  m,
			Snapshot: snap,
		})
		return sys.Step
	}
	defer func() {
		if sys != nil {
			sys.Close()
		}
	}()

	if cfg.Enabled {
		cfg.Width, cfg.Height, cfg.Scale = conf.Headless.Width, conf.Headless.Height, conf.Headless.DPR
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil && !errors.Is(err, context.Canceled) {
			exit(log, err)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{
		Title:  conf.Window.Title,
		Width:  conf.Window.Width,
		Height: conf.Window.Height,
		TPS:    60,
	}); err != nil {
		exit(log, err)
	}
}

func exit(log *slog.Logger, err error) {
	log.Error("globe_exit", "err", err)
	os.Exit(1)
}

// Command framestat runs the performance overlay, either in an ebiten window
// over a few demo pages or headless on a fixed ticker.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/erinpentecost/framestat"
	"github.com/erinpentecost/framestat/config"
	"github.com/erinpentecost/framestat/ebitenhost"
	"github.com/erinpentecost/framestat/metrics"
)

func main() {
	var (
		cfgPath     = flag.String("config", "framestat.json", "path to JSON config")
		headless    = flag.Bool("headless", false, "sample on a ticker instead of opening a window")
		metricsAddr = flag.String("metrics-addr", "", "serve metrics on this address")
		report      = flag.Duration("report", 0, "reporting window (overrides config)")
		duration    = flag.Duration("duration", 0, "headless only: stop after this long")
		debug       = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "framestat: config: %v\n", err)
	}
	if *headless {
		cfg.Headless = true
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *report > 0 {
		cfg.ReportIntervalMs = int(report.Milliseconds())
	}
	if *debug {
		cfg.Debug = true
	}
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	framestat.SetLogger(logger)

	if cfg.Headless {
		err = runHeadless(cfg, logger, *duration)
	} else {
		err = runWindow(cfg, logger)
	}
	if err != nil {
		logger.Error("framestat: exit", "err", err)
		os.Exit(1)
	}
}

// watch drains the heartbeat until the sampler stops.
func watch(s *framestat.Sampler, logger *slog.Logger, m *metrics.Server) {
	for snap := range s.Heartbeat() {
		attrs := []any{
			"window", snap.Window,
			"fps", snap.FPS,
			"frame_ms", snap.FrameTimeMs(),
			"overhead_ms", snap.SamplingOverheadMs(),
			"surfaces", snap.SurfaceCount,
		}
		if snap.HasGPU {
			attrs = append(attrs, "vendor", snap.GPU.Vendor, "renderer", snap.GPU.Renderer)
		}
		logger.Debug("snapshot", attrs...)
		if m != nil {
			m.Publish(snap)
		}
	}
}

func startMetrics(cfg *config.Config, done <-chan struct{}) *metrics.Server {
	if cfg.MetricsAddr == "" {
		return nil
	}
	m := metrics.NewServer(cfg.MetricsAddr, "framestat")
	m.Serve(done)
	return m
}

func runHeadless(cfg *config.Config, logger *slog.Logger, duration time.Duration) error {
	sched, err := framestat.NewTickerScheduler(cfg.FrameDelay())
	if err != nil {
		return err
	}
	defer sched.Close()

	reg := framestat.NewRegistry()
	unregister := reg.Register(framestat.SurfaceFunc(func() (framestat.GPUInfo, error) {
		return framestat.GPUInfo{Vendor: "software", Renderer: runtime.GOOS + "/" + runtime.GOARCH}, nil
	}))
	defer unregister()

	s, err := framestat.NewSampler(sched, reg, cfg.SamplerOptions()...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	m := startMetrics(cfg, s.Done())
	go watch(s, logger, m)
	if err := s.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	s.Stop()
	logger.Info("framestat: headless done",
		"snapshot_fps", s.Snapshot().FPS,
		"scheduler_latency", sched.Latency(),
		"faults", s.Faults())
	return nil
}

func runWindow(cfg *config.Config, logger *slog.Logger) error {
	g, err := ebitenhost.NewGame(ebitenhost.Options{
		Title:     "framestat",
		Width:     cfg.Width,
		Height:    cfg.Height,
		Collapsed: cfg.Collapsed,
		Sampler:   cfg.SamplerOptions(),
	},
		&ebitenhost.PolygonPage{Title: "cone", Resolution: 6, Spin: true},
		&ebitenhost.PolygonPage{Title: "sphere", Resolution: 32, Representation: ebitenhost.RepresentationWireframe},
		ebitenhost.NewBlinkPage("blink", cfg.BlinkDelay()),
	)
	if err != nil {
		return err
	}

	m := startMetrics(cfg, g.Sampler.Done())
	go watch(g.Sampler, logger, m)
	return ebitenhost.Run(g)
}

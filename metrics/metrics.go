// Package metrics exposes framestat snapshots as expvar gauges served over HTTP.
package metrics

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/erinpentecost/framestat"
	"github.com/zserge/metric"
)

// Server collects and publishes snapshot metrics.
type Server struct {
	Addr string

	fps          metric.Metric
	frameTimeMs  metric.Metric
	overheadMs   metric.Metric
	surfaceCount metric.Metric
	windows      metric.Metric
}

// NewServer creates the gauges and publishes them on expvar with the given
// name prefix. expvar names are global, so each prefix may only be used once
// per process.
func NewServer(addr, prefix string) *Server {
	m := &Server{
		Addr:         addr,
		fps:          metric.NewGauge("5m5s"),
		frameTimeMs:  metric.NewGauge("5m5s"),
		overheadMs:   metric.NewGauge("5m5s"),
		surfaceCount: metric.NewGauge("5m5s"),
		windows:      metric.NewCounter("5m5s"),
	}
	expvar.Publish(prefix+"FPS", m.fps)
	expvar.Publish(prefix+"FrameTimeMs", m.frameTimeMs)
	expvar.Publish(prefix+"SamplingOverheadMs", m.overheadMs)
	expvar.Publish(prefix+"SurfaceCount", m.surfaceCount)
	expvar.Publish(prefix+"Windows", m.windows)
	return m
}

// Publish takes in a snapshot.
func (m *Server) Publish(s framestat.Snapshot) {
	m.fps.Add(float64(s.FPS))
	m.frameTimeMs.Add(s.FrameTimeMs())
	m.overheadMs.Add(s.SamplingOverheadMs())
	m.surfaceCount.Add(float64(s.SurfaceCount))
	m.windows.Add(1)
}

// Handler serves every metric published on expvar.
func (m *Server) Handler() http.Handler {
	return metric.Handler(metric.Exposed)
}

// Serve starts an http server on Addr without blocking.
// The server shuts down once done is closed.
func (m *Server) Serve(done <-chan struct{}) {
	server := &http.Server{Addr: m.Addr, Handler: m.Handler()}
	log := framestat.Logger().With("addr", m.Addr)

	// Start hosting http nonblocking
	go func() {
		log.Info("metrics: serving")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics: server failed", "err", err)
		}
	}()

	// Wait for cancellation and then shutdown http
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn("metrics: shutdown", "err", err)
		}
	}()
}

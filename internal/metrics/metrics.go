// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace         = "cmdrunner"
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Metrics holds the collectors of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	tasks        *prometheus.CounterVec
	taskDuration prometheus.Histogram
	live         prometheus.Gauge
	jobs         *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tasks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_total",
				Help:      "Total number of finished tasks by status.",
			},
			[]string{"status"},
		),
		taskDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_duration_seconds",
				Help:      "Wall time of task processes in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), //nolint:mnd
			},
		),
		live: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_processes",
				Help:      "Number of task process groups currently running.",
			},
		),
		jobs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_total",
				Help:      "Total number of jobs by final state.",
			},
			[]string{"state"},
		),
	}

	m.registry.MustRegister(
		m.tasks,
		m.taskDuration,
		m.live,
		m.jobs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// ProcessStarted counts a spawned process group.
func (m *Metrics) ProcessStarted() {
	if m == nil {
		return
	}

	m.live.Inc()
}

// ProcessExited releases a spawned process group.
func (m *Metrics) ProcessExited() {
	if m == nil {
		return
	}

	m.live.Dec()
}

// TaskFinished records the outcome of a task.
func (m *Metrics) TaskFinished(status string, d time.Duration) {
	if m == nil {
		return
	}

	m.tasks.WithLabelValues(status).Inc()

	if d > 0 {
		m.taskDuration.Observe(d.Seconds())
	}
}

// JobFinished records the final state of a job.
func (m *Metrics) JobFinished(state string) {
	if m == nil {
		return
	}

	m.jobs.WithLabelValues(state).Inc()
}

// Handler returns the router serving /metrics and /healthz.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))

	return r
}

// Serve exposes the metrics on addr until ctx ends.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return m.serve(ctx, ln)
}

func (m *Metrics) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		ctxlog.Info(ctx, "metrics listening", "addr", ln.Addr().String())

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errCh
}

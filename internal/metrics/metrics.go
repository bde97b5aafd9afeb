// Package metrics exposes prometheus counters for snapshot intake, rendering, dispatch and push streams.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/leighmacdonald/cricket-tui/internal/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "cricket"

var ErrListen = errors.New("failed to serve metrics")

type Option func(*Manager)

// WithRegistry registers the collectors on a custom registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = registry }
}

func WithNamespace(namespace string) Option {
	return func(m *Manager) { m.namespace = namespace }
}

// Manager owns the client counters. It satisfies the recorder interfaces of intake, dispatch
// and stream.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	snapshotsApplied  *prometheus.CounterVec
	snapshotsRejected *prometheus.CounterVec
	renderWrites      prometheus.Counter
	actionsDispatched *prometheus.CounterVec
	actionsBlocked    *prometheus.CounterVec
	streamReconnects  *prometheus.CounterVec
}

func New(opts ...Option) *Manager {
	manager := &Manager{namespace: defaultNamespace}
	for _, opt := range opts {
		opt(manager)
	}

	if manager.registry == nil {
		manager.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(manager.registry)

	manager.snapshotsApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "snapshots_applied_total",
		Help:      "Snapshots accepted into the state slot",
	}, []string{"source"})
	manager.snapshotsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "snapshots_rejected_total",
		Help:      "Malformed snapshots dropped by intake",
	}, []string{"source"})
	manager.renderWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "render_writes_total",
		Help:      "Scoreboard regions rewritten by the renderer",
	})
	manager.actionsDispatched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "actions_dispatched_total",
		Help:      "Actions sent to the scoring backend",
	}, []string{"action"})
	manager.actionsBlocked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "actions_blocked_total",
		Help:      "Actions refused locally before reaching the backend",
	}, []string{"reason"})
	manager.streamReconnects = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: manager.namespace,
		Name:      "stream_reconnects_total",
		Help:      "Push stream reconnect attempts",
	}, []string{"transport"})

	return manager
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) SnapshotApplied(source state.Source) {
	m.snapshotsApplied.WithLabelValues(string(source)).Inc()
}

func (m *Manager) SnapshotRejected(source state.Source) {
	m.snapshotsRejected.WithLabelValues(string(source)).Inc()
}

func (m *Manager) RenderWrites(count int) {
	if count > 0 {
		m.renderWrites.Add(float64(count))
	}
}

func (m *Manager) ActionDispatched(action string) {
	m.actionsDispatched.WithLabelValues(action).Inc()
}

func (m *Manager) ActionBlocked(reason string) {
	m.actionsBlocked.WithLabelValues(reason).Inc()
}

func (m *Manager) StreamReconnect(transport string) {
	m.streamReconnects.WithLabelValues(transport).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics listener until ctx is done.
func (m *Manager) Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shutdown metrics listener", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Metrics listener started", slog.String("address", address))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(err, ErrListen)
	}

	return nil
}

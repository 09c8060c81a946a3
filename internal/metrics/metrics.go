// Package metrics exposes Prometheus counters for editor activity.
//
// A nil *Metrics is valid and records nothing, so components can take an
// optional metrics sink without nil checks at every call site.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "richedit"

// Undo/redo results used as the "result" label.
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
)

// Metrics holds the editor collectors.
type Metrics struct {
	commands        *prometheus.CounterVec
	shortcuts       prometheus.Counter
	changes         prometheus.Counter
	pastes          prometheus.Counter
	checkpoints     *prometheus.CounterVec
	captureFailures prometheus.Counter
	history         *prometheus.CounterVec
	historyDepth    prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what tests use.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Feature commands executed, by feature.",
		}, []string{"feature"}),
		shortcuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortcuts_handled_total",
			Help:      "Keyboard shortcuts consumed by a binding.",
		}),
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Committed content changes.",
		}),
		pastes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pastes_total",
			Help:      "Paste events handled.",
		}),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "checkpoints_total",
			Help:      "Checkpoint saves, by whether they were stored or deduplicated.",
		}, []string{"outcome"}),
		captureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "capture_failures_total",
			Help:      "Checkpoint captures that could not snapshot the selection.",
		}),
		history: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "Undo and redo requests, by operation and result.",
		}, []string{"op", "result"}),
		historyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "depth",
			Help:      "Number of checkpoints in the undo history.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.commands, err = register(reg, m.commands); err != nil {
		return nil, err
	}
	if m.shortcuts, err = register(reg, m.shortcuts); err != nil {
		return nil, err
	}
	if m.changes, err = register(reg, m.changes); err != nil {
		return nil, err
	}
	if m.pastes, err = register(reg, m.pastes); err != nil {
		return nil, err
	}
	if m.checkpoints, err = register(reg, m.checkpoints); err != nil {
		return nil, err
	}
	if m.captureFailures, err = register(reg, m.captureFailures); err != nil {
		return nil, err
	}
	if m.history, err = register(reg, m.history); err != nil {
		return nil, err
	}
	if m.historyDepth, err = register(reg, m.historyDepth); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, reusing the collector already registered under
// the same descriptor when there is one.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordCommand counts a feature command.
func (m *Metrics) RecordCommand(feature string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(feature).Inc()
}

// RecordShortcut counts a consumed shortcut.
func (m *Metrics) RecordShortcut() {
	if m == nil {
		return
	}
	m.shortcuts.Inc()
}

// RecordChange counts a committed change.
func (m *Metrics) RecordChange() {
	if m == nil {
		return
	}
	m.changes.Inc()
}

// RecordPaste counts a paste.
func (m *Metrics) RecordPaste() {
	if m == nil {
		return
	}
	m.pastes.Inc()
}

// RecordCheckpoint counts a save; stored is false for deduplicated saves.
func (m *Metrics) RecordCheckpoint(stored bool) {
	if m == nil {
		return
	}
	outcome := "stored"
	if !stored {
		outcome = "duplicate"
	}
	m.checkpoints.WithLabelValues(outcome).Inc()
}

// RecordCaptureFailure counts a failed checkpoint capture.
func (m *Metrics) RecordCaptureFailure() {
	if m == nil {
		return
	}
	m.captureFailures.Inc()
}

// RecordHistory counts an undo or redo with its result label.
func (m *Metrics) RecordHistory(op, result string) {
	if m == nil {
		return
	}
	m.history.WithLabelValues(op, result).Inc()
}

// SetHistoryDepth records the current undo history length.
func (m *Metrics) SetHistoryDepth(n int) {
	if m == nil {
		return
	}
	m.historyDepth.Set(float64(n))
}

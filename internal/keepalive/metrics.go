package keepalive

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes page cache counters per namespace.
type Metrics struct {
	resident  *prometheus.GaugeVec
	capacity  *prometheus.GaugeVec
	created   *prometheus.CounterVec
	restored  *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewMetrics creates the page cache collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	labels := []string{"namespace"}
	m := &Metrics{
		resident: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "assetview",
			Subsystem: "page_cache",
			Name:      "resident_pages",
			Help:      "Pages currently held by the page cache.",
		}, labels),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "assetview",
			Subsystem: "page_cache",
			Name:      "capacity_pages",
			Help:      "Configured page capacity, -1 when unbounded.",
		}, labels),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetview",
			Subsystem: "page_cache",
			Name:      "created_total",
			Help:      "Pages rendered from scratch.",
		}, labels),
		restored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetview",
			Subsystem: "page_cache",
			Name:      "restored_total",
			Help:      "Pages restored from cached nodes.",
		}, labels),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetview",
			Subsystem: "page_cache",
			Name:      "evicted_total",
			Help:      "Pages dropped because their namespace exceeded its capacity.",
		}, labels),
	}
	if reg != nil {
		reg.MustRegister(m.resident, m.capacity, m.created, m.restored, m.evictions)
	}
	return m
}

func (m *Metrics) setResident(ns Namespace, n int) {
	if m != nil {
		m.resident.WithLabelValues(string(ns)).Set(float64(n))
	}
}

func (m *Metrics) setCapacity(ns Namespace, n int) {
	if m != nil {
		if n <= 0 {
			n = Unbounded
		}
		m.capacity.WithLabelValues(string(ns)).Set(float64(n))
	}
}

func (m *Metrics) incCreated(ns Namespace) {
	if m != nil {
		m.created.WithLabelValues(string(ns)).Inc()
	}
}

func (m *Metrics) incRestored(ns Namespace) {
	if m != nil {
		m.restored.WithLabelValues(string(ns)).Inc()
	}
}

func (m *Metrics) addEvictions(ns Namespace, n int) {
	if m != nil {
		m.evictions.WithLabelValues(string(ns)).Add(float64(n))
	}
}

// Package metrics exposes Prometheus collectors for the appliance.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paradium"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	engineErrors    prometheus.Counter
	persistFailures prometheus.Counter
	currentStation  prometheus.Gauge
	catalogStations prometheus.Gauge
	catalogReloads  prometheus.Counter
	httpRequests    *prometheus.CounterVec
}

// New creates collectors registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Dispatched transport commands by command and result",
			},
			[]string{"command", "result"},
		),
		engineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_errors_total",
			Help:      "Failed calls into the playback engine",
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_persist_failures_total",
			Help:      "Session writes that could not be persisted",
		}),
		currentStation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_station_id",
			Help:      "Id of the currently selected station",
		}),
		catalogStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_stations",
			Help:      "Number of stations in the loaded catalog",
		}),
		catalogReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog instances published after startup",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	m.registry.MustRegister(
		m.commands,
		m.engineErrors,
		m.persistFailures,
		m.currentStation,
		m.catalogStations,
		m.catalogReloads,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCommand counts one dispatched command.
func (m *Metrics) ObserveCommand(command, result string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, result).Inc()
}

// EngineError counts a failed engine call.
func (m *Metrics) EngineError() {
	if m == nil {
		return
	}
	m.engineErrors.Inc()
}

// PersistFailure counts a failed session write.
func (m *Metrics) PersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// SetCurrentStation records the selected station.
func (m *Metrics) SetCurrentStation(id int) {
	if m == nil {
		return
	}
	m.currentStation.Set(float64(id))
}

// SetCatalogSize records the number of known stations.
func (m *Metrics) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.catalogStations.Set(float64(n))
}

// CatalogReloaded counts a published catalog reload.
func (m *Metrics) CatalogReloaded() {
	if m == nil {
		return
	}
	m.catalogReloads.Inc()
}

// ObserveRequest counts one HTTP request.
func (m *Metrics) ObserveRequest(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}

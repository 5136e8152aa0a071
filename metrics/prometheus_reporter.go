package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/logger"
)

// ErrMetricNotKnown is returned for metrics the reporter never registered
var ErrMetricNotKnown = e.NewError(fmt.Errorf("the provided metric does not exist"), "MET_001")

// PrometheusReporter reports metrics to prometheus
type PrometheusReporter struct {
	registry            *prometheus.Registry
	countReportersMap   map[string]*prometheus.CounterVec
	summaryReportersMap map[string]*prometheus.SummaryVec
	gaugeReportersMap   map[string]*prometheus.GaugeVec
	labels              map[string][]string
}

// NewPrometheusReporter registers every race metric on its own registry
func NewPrometheusReporter(namespace string, constLabels map[string]string) (*PrometheusReporter, error) {
	p := &PrometheusReporter{
		registry:            prometheus.NewRegistry(),
		countReportersMap:   make(map[string]*prometheus.CounterVec),
		summaryReportersMap: make(map[string]*prometheus.SummaryVec),
		gaugeReportersMap:   make(map[string]*prometheus.GaugeVec),
		labels:              make(map[string][]string),
	}
	if err := p.registerMetrics(namespace, constLabels); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PrometheusReporter) registerMetrics(namespace string, constLabels map[string]string) error {
	botLabels := []string{"profile"}

	counters := map[string]string{
		Jumps:            "jumps fired by bots",
		StuckRecoveries:  "times a bot was detected stuck and repathed",
		GateWaits:        "times a bot started waiting at a gate",
		GatePasses:       "gated waypoints passed",
		WaypointsReached: "waypoints collected",
		Pushes:           "pushes issued by bots",
		Respawns:         "bots respawned after falling off the track",
		NavigatorPanics:  "navigator ticks that recovered from a panic",
	}
	for name, help := range counters {
		p.countReportersMap[name] = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "bot",
				Name:        name,
				Help:        help,
				ConstLabels: constLabels,
			},
			botLabels,
		)
		p.labels[name] = botLabels
	}

	p.summaryReportersMap[TickDuration] = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:   namespace,
			Subsystem:   "race",
			Name:        TickDuration,
			Help:        "time to tick every racer once, in milliseconds",
			Objectives:  map[float64]float64{0.7: 0.02, 0.95: 0.005, 0.99: 0.001},
			ConstLabels: constLabels,
		},
		[]string{},
	)
	p.labels[TickDuration] = nil

	p.summaryReportersMap[GateWaitSeconds] = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:   namespace,
			Subsystem:   "bot",
			Name:        GateWaitSeconds,
			Help:        "how long a bot waited at a gate",
			Objectives:  map[float64]float64{0.7: 0.02, 0.95: 0.005, 0.99: 0.001},
			ConstLabels: constLabels,
		},
		botLabels,
	)
	p.labels[GateWaitSeconds] = botLabels

	for _, name := range []string{WaitingAgents, Racers} {
		p.gaugeReportersMap[name] = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "race",
				Name:        name,
				Help:        name,
				ConstLabels: constLabels,
			},
			[]string{},
		)
		p.labels[name] = nil
	}

	toRegister := make([]prometheus.Collector, 0)
	for _, c := range p.countReportersMap {
		toRegister = append(toRegister, c)
	}
	for _, c := range p.summaryReportersMap {
		toRegister = append(toRegister, c)
	}
	for _, c := range p.gaugeReportersMap {
		toRegister = append(toRegister, c)
	}
	for _, c := range toRegister {
		if err := p.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *PrometheusReporter) ensureLabels(metric string, tags map[string]string) prometheus.Labels {
	labels := prometheus.Labels{}
	for _, name := range p.labels[metric] {
		labels[name] = tags[name]
	}
	return labels
}

// Handler serves the registry in the prometheus text format
func (p *PrometheusReporter) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on port in the background
func (p *PrometheusReporter) Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	go func() {
		addr := fmt.Sprintf(":%d", port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("prometheus endpoint stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
}

// ReportCount reports a count metric
func (p *PrometheusReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	cnt := p.countReportersMap[metric]
	if cnt == nil {
		return ErrMetricNotKnown
	}
	cnt.With(p.ensureLabels(metric, tags)).Add(count)
	return nil
}

// ReportSummary reports a summary metric
func (p *PrometheusReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	sum := p.summaryReportersMap[metric]
	if sum == nil {
		return ErrMetricNotKnown
	}
	sum.With(p.ensureLabels(metric, tags)).Observe(value)
	return nil
}

// ReportGauge reports a gauge metric
func (p *PrometheusReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	g := p.gaugeReportersMap[metric]
	if g == nil {
		return ErrMetricNotKnown
	}
	g.With(p.ensureLabels(metric, tags)).Set(value)
	return nil
}

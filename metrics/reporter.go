// Package metrics reports race and navigation counters to Prometheus or
// StatsD
package metrics

import (
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/logger"
)

// Metric names
const (
	Jumps            = "jumps"
	StuckRecoveries  = "stuck_recoveries"
	GateWaits        = "gate_waits"
	GatePasses       = "gate_passes"
	WaypointsReached = "waypoints_reached"
	Pushes           = "pushes"
	Respawns         = "respawns"
	NavigatorPanics  = "navigator_panics"

	TickDuration    = "tick_duration_ms"
	GateWaitSeconds = "gate_wait_seconds"

	WaitingAgents = "waiting_agents"
	Racers        = "racers"
)

// Reporter interface
type Reporter interface {
	ReportCount(metric string, tags map[string]string, count float64) error
	ReportSummary(metric string, tags map[string]string, value float64) error
	ReportGauge(metric string, tags map[string]string, value float64) error
}

// ReportCount sends count to every reporter
func ReportCount(reporters []Reporter, metric string, tags map[string]string, count float64) {
	for _, r := range reporters {
		if err := r.ReportCount(metric, tags, count); err != nil {
			logger.Warn("failed to report count", zap.String("metric", metric), zap.Error(err))
		}
	}
}

// ReportSummary sends value to every reporter
func ReportSummary(reporters []Reporter, metric string, tags map[string]string, value float64) {
	for _, r := range reporters {
		if err := r.ReportSummary(metric, tags, value); err != nil {
			logger.Warn("failed to report summary", zap.String("metric", metric), zap.Error(err))
		}
	}
}

// ReportGauge sends value to every reporter
func ReportGauge(reporters []Reporter, metric string, tags map[string]string, value float64) {
	for _, r := range reporters {
		if err := r.ReportGauge(metric, tags, value); err != nil {
			logger.Warn("failed to report gauge", zap.String("metric", metric), zap.Error(err))
		}
	}
}

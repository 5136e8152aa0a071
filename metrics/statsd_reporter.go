package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"go.uber.org/zap"

	"github.com/tutumagi/racenav/logger"
)

// Client is the subset of the statsd client the reporter uses
type Client interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// StatsdReporter sends metrics to statsd
type StatsdReporter struct {
	client      Client
	rate        float64
	defaultTags []string
}

// NewStatsdReporter dials host unless a client is given
func NewStatsdReporter(host, prefix string, rate float64, tagsMap map[string]string, clientOrNil ...Client) (*StatsdReporter, error) {
	sr := &StatsdReporter{
		rate:        rate,
		defaultTags: make([]string, 0, len(tagsMap)),
	}
	for k, v := range tagsMap {
		sr.defaultTags = append(sr.defaultTags, fmt.Sprintf("%s:%s", k, v))
	}

	if len(clientOrNil) > 0 && clientOrNil[0] != nil {
		sr.client = clientOrNil[0]
		return sr, nil
	}

	c, err := statsd.New(host, statsd.WithNamespace(prefix))
	if err != nil {
		return nil, err
	}
	sr.client = c
	return sr, nil
}

func (s *StatsdReporter) fullTags(tags map[string]string) []string {
	full := make([]string, 0, len(s.defaultTags)+len(tags))
	full = append(full, s.defaultTags...)
	for k, v := range tags {
		full = append(full, fmt.Sprintf("%s:%s", k, v))
	}
	return full
}

// ReportCount sends count reports to statsd
func (s *StatsdReporter) ReportCount(metric string, tags map[string]string, count float64) error {
	err := s.client.Count(metric, int64(count), s.fullTags(tags), s.rate)
	if err != nil {
		logger.Error("failed to report count", zap.String("metric", metric), zap.Error(err))
	}
	return err
}

// ReportGauge sents the gauge value and reports to statsd
func (s *StatsdReporter) ReportGauge(metric string, tags map[string]string, value float64) error {
	err := s.client.Gauge(metric, value, s.fullTags(tags), s.rate)
	if err != nil {
		logger.Error("failed to report gauge", zap.String("metric", metric), zap.Error(err))
	}
	return err
}

// ReportSummary observes the summary value and reports to statsd
func (s *StatsdReporter) ReportSummary(metric string, tags map[string]string, value float64) error {
	err := s.client.TimeInMilliseconds(metric, value, s.fullTags(tags), s.rate)
	if err != nil {
		logger.Error("failed to report summary", zap.String("metric", metric), zap.Error(err))
	}
	return err
}

package statistics

import (
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	board *status.Board

	average *prometheus.Desc
	max     *prometheus.Desc
	samples *prometheus.Desc
	stale   *prometheus.Desc
}

func NewSensorCollector(board *status.Board) *SensorCollector {
	labels := []string{"id", "role"}
	return &SensorCollector{
		board: board,
		average: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "average"),
			"Average of the non-zero samples of the last reading in degrees celsius",
			labels, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "max"),
			"Maximum sample of the last reading in degrees celsius",
			labels, nil,
		),
		samples: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "samples"),
			"Number of samples in the last reading",
			labels, nil,
		),
		stale: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "stale"),
			"1 if the reading of the source is stale",
			labels, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.average
	ch <- collector.max
	ch <- collector.samples
	ch <- collector.stale
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, source := range collector.board.Sources() {
		ch <- prometheus.MustNewConstMetric(collector.average, prometheus.GaugeValue, source.Average, source.ID, source.Role)
		ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, source.Max, source.ID, source.Role)
		ch <- prometheus.MustNewConstMetric(collector.samples, prometheus.GaugeValue, float64(len(source.Samples)), source.ID, source.Role)
		ch <- prometheus.MustNewConstMetric(collector.stale, prometheus.GaugeValue, boolToFloat(source.Stale), source.ID, source.Role)
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}

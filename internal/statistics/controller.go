package statistics

import (
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

var modes = []controller.Mode{controller.ModeUnset, controller.ModeDefault, controller.ModeManual, controller.ModeReset}

type ControllerCollector struct {
	board *status.Board

	mode                 *prometheus.Desc
	fanLevel             *prometheus.Desc
	targetLevel          *prometheus.Desc
	demand               *prometheus.Desc
	representative       *prometheus.Desc
	ambient              *prometheus.Desc
	historyAvg           *prometheus.Desc
	levelCommands        *prometheus.Desc
	levelCommandFailures *prometheus.Desc
	hysteresisSkips      *prometheus.Desc
	modeSwitches         *prometheus.Desc
	enableRetries        *prometheus.Desc
	sensorFailures       *prometheus.Desc
}

func NewControllerCollector(board *status.Board) *ControllerCollector {
	fqName := func(name string) string {
		return prometheus.BuildFQName(namespace, controllerSubsystem, name)
	}
	return &ControllerCollector{
		board: board,
		mode: prometheus.NewDesc(fqName("mode"),
			"1 for the current fan control mode, 0 for all others",
			[]string{"mode"}, nil,
		),
		fanLevel:             prometheus.NewDesc(fqName("fan_level"), "Raw fan level of the last successful level command", nil, nil),
		targetLevel:          prometheus.NewDesc(fqName("target_level"), "Raw fan level computed in the last cycle", nil, nil),
		demand:               prometheus.NewDesc(fqName("demand_percent"), "Fan demand computed in the last cycle", nil, nil),
		representative:       prometheus.NewDesc(fqName("representative_temperature"), "Representative temperature of the last cycle in degrees celsius", nil, nil),
		ambient:              prometheus.NewDesc(fqName("ambient_temperature"), "Ambient temperature of the last cycle in degrees celsius", nil, nil),
		historyAvg:           prometheus.NewDesc(fqName("representative_temperature_avg"), "Average of the recent representative temperatures", nil, nil),
		levelCommands:        prometheus.NewDesc(fqName("level_commands_total"), "Counter for successful fan level commands", nil, nil),
		levelCommandFailures: prometheus.NewDesc(fqName("level_command_failures_total"), "Counter for failed fan level commands", nil, nil),
		hysteresisSkips:      prometheus.NewDesc(fqName("hysteresis_skips_total"), "Counter for computed levels within the hysteresis band", nil, nil),
		modeSwitches:         prometheus.NewDesc(fqName("mode_switches_total"), "Counter for fan control mode changes", nil, nil),
		enableRetries:        prometheus.NewDesc(fqName("enable_retries_total"), "Counter for retried attempts to enable automatic fan control", nil, nil),
		sensorFailures:       prometheus.NewDesc(fqName("sensor_failures_total"), "Counter for cycles without any usable temperature", nil, nil),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.mode
	ch <- collector.fanLevel
	ch <- collector.targetLevel
	ch <- collector.demand
	ch <- collector.representative
	ch <- collector.ambient
	ch <- collector.historyAvg
	ch <- collector.levelCommands
	ch <- collector.levelCommandFailures
	ch <- collector.hysteresisSkips
	ch <- collector.modeSwitches
	ch <- collector.enableRetries
	ch <- collector.sensorFailures
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	current, exists := collector.board.Controller()
	if !exists {
		return
	}

	for _, mode := range modes {
		value := 0.0
		if mode.String() == current.Mode {
			value = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.mode, prometheus.GaugeValue, value, mode.String())
	}

	ch <- prometheus.MustNewConstMetric(collector.fanLevel, prometheus.GaugeValue, float64(current.LastFanSetting))
	ch <- prometheus.MustNewConstMetric(collector.targetLevel, prometheus.GaugeValue, float64(current.LastTarget))
	ch <- prometheus.MustNewConstMetric(collector.demand, prometheus.GaugeValue, current.LastDemand)
	ch <- prometheus.MustNewConstMetric(collector.representative, prometheus.GaugeValue, current.Representative)
	ch <- prometheus.MustNewConstMetric(collector.ambient, prometheus.GaugeValue, current.Ambient)
	ch <- prometheus.MustNewConstMetric(collector.historyAvg, prometheus.GaugeValue, collector.board.History().Avg)

	stats := current.Statistics
	ch <- prometheus.MustNewConstMetric(collector.levelCommands, prometheus.CounterValue, float64(stats.LevelCommands))
	ch <- prometheus.MustNewConstMetric(collector.levelCommandFailures, prometheus.CounterValue, float64(stats.LevelCommandFailures))
	ch <- prometheus.MustNewConstMetric(collector.hysteresisSkips, prometheus.CounterValue, float64(stats.HysteresisSkips))
	ch <- prometheus.MustNewConstMetric(collector.modeSwitches, prometheus.CounterValue, float64(stats.ModeSwitches))
	ch <- prometheus.MustNewConstMetric(collector.enableRetries, prometheus.CounterValue, float64(stats.EnableRetries))
	ch <- prometheus.MustNewConstMetric(collector.sensorFailures, prometheus.CounterValue, float64(stats.SensorFailures))
}

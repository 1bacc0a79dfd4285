package control_loop

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/ipmifan/ipmifan/internal/util"
	"strings"
	"time"
)

// Sources are the temperature sources driving the fan control, one per role
type Sources struct {
	Ambient *sensors.TemperatureSource
	Cpu     *sensors.TemperatureSource
	Core    *sensors.TemperatureSource
	Disk    *sensors.TemperatureSource
}

func (s Sources) All() []*sensors.TemperatureSource {
	return []*sensors.TemperatureSource{s.Ambient, s.Cpu, s.Core, s.Disk}
}

// ControlLoop periodically reads all sources and lets the controller decide on the fan mode and level
type ControlLoop struct {
	sources    Sources
	controller *controller.FanModeController
	board      *status.Board
	interval   time.Duration
	clock      sensors.Clock
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewControlLoop(
	sources Sources,
	controller *controller.FanModeController,
	board *status.Board,
	// time between two successful cycles
	interval time.Duration,
	clock sensors.Clock,
) *ControlLoop {
	if clock == nil {
		clock = time.Now
	}
	return &ControlLoop{
		sources:    sources,
		controller: controller,
		board:      board,
		interval:   interval,
		clock:      clock,
		sleep:      util.SleepWithContext,
	}
}

// Run executes control cycles until ctx is cancelled.
// A failed cycle is restarted immediately, otherwise the loop sleeps for the configured interval.
func (l *ControlLoop) Run(ctx context.Context) error {
	ui.Info("Starting control loop with an interval of %v", l.interval)
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := l.Cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			ui.Warning("Control cycle failed, restarting: %v", err)
			continue
		}

		if err := l.sleep(ctx, l.interval); err != nil {
			return nil
		}
	}
}

// Cycle performs a single iteration of the control loop
func (l *ControlLoop) Cycle(ctx context.Context) error {
	for _, source := range l.sources.All() {
		source.Refresh(ctx)
		ui.Info("%s temperatures (%s): %s", source.GetId(), source.GetRole(), formatSamples(source.Reading().Samples))
	}

	ambient := l.sources.Ambient.Average()
	representative := Representative(
		l.sources.Core.Average(),
		l.sources.Cpu.Average(),
		l.sources.Disk.Average(),
		l.sources.Disk.Max(),
	)

	var err error
	threshold := l.controller.Config().DefaultThreshold
	if ambient > threshold {
		ui.Warning("Ambient temperature %.1f%s exceeds %.1f%s, using automatic fan control", ambient, ui.DegreeSymbol, threshold, ui.DegreeSymbol)
		err = l.controller.ApplyDefaultMode(ctx)
	} else {
		// an unchanged level is not an error, the loop sleeps as usual
		_, err = l.controller.ApplyServoMode(ctx, representative, ambient)
	}
	if err != nil {
		l.publish(representative, ambient)
		return err
	}

	now := l.clock()
	if l.sources.Ambient.IsStale(now) {
		ui.Debug("Ambient reading of %s is stale, clearing", l.sources.Ambient.GetId())
		l.sources.Ambient.Clear(now)
		l.controller.ForceReset()
	}
	if l.sources.Disk.IsStale(now) {
		ui.Debug("Disk reading of %s is stale, clearing", l.sources.Disk.GetId())
		l.sources.Disk.Clear(now)
	}

	l.publish(representative, ambient)
	return nil
}

// Representative combines the averages of the core, cpu and disk sources into the
// temperature the fan level is derived from. A single hot disk dominates the average.
func Representative(coreAvg float64, cpuAvg float64, diskAvg float64, diskMax float64) float64 {
	mean := util.Avg([]float64{coreAvg, cpuAvg, diskAvg})
	if diskMax > mean {
		return diskMax
	}
	return mean
}

func (l *ControlLoop) publish(representative float64, ambient float64) {
	if l.board == nil {
		return
	}
	now := l.clock()
	for _, source := range l.sources.All() {
		reading := source.Reading()
		l.board.PublishSource(status.SourceStatus{
			ID:        source.GetId(),
			Role:      source.GetRole(),
			Samples:   append([]float64{}, reading.Samples...),
			Average:   reading.Average(),
			Max:       reading.Max(),
			FetchedAt: reading.FetchedAt,
			LastFetch: source.LastFetch(),
			Stale:     source.IsStale(now),
		})
	}
	l.board.PublishController(status.ControllerStatus{
		Status:         l.controller.Status(),
		Representative: representative,
		Ambient:        ambient,
		UpdatedAt:      now,
	})
	l.board.AppendRepresentative(representative)
}

func formatSamples(samples []float64) string {
	if len(samples) == 0 {
		return "none"
	}
	values := make([]string, len(samples))
	for i, sample := range samples {
		values[i] = fmt.Sprintf("%.1f%s", sample, ui.DegreeSymbol)
	}
	return strings.Join(values, ", ")
}

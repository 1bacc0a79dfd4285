package sensors

import (
	"context"
	"fmt"
	"github.com/shirou/gopsutil/v3/host"
	"math"
	"regexp"
)

// HwMonReader reads temperatures directly from the kernel hardware monitor
type HwMonReader struct {
	Key *regexp.Regexp

	sensorsTemperatures func(ctx context.Context) ([]host.TemperatureStat, error)
}

func NewHwMonReader(key *regexp.Regexp) *HwMonReader {
	return &HwMonReader{
		Key:                 key,
		sensorsTemperatures: host.SensorsTemperaturesWithContext,
	}
}

func (r *HwMonReader) Read(ctx context.Context) ([]float64, error) {
	temps, err := r.sensorsTemperatures(ctx)
	// partial results come with warnings for unreadable chips
	if err != nil && len(temps) <= 0 {
		return nil, err
	}

	var samples []float64
	for _, temp := range temps {
		if r.Key.MatchString(temp.SensorKey) {
			if math.IsNaN(temp.Temperature) || math.IsInf(temp.Temperature, 0) {
				return nil, fmt.Errorf("%w: %s", ErrNotFinite, temp.SensorKey)
			}
			samples = append(samples, temp.Temperature)
		}
	}
	if len(samples) <= 0 {
		return nil, ErrNoMatch
	}
	return samples, nil
}

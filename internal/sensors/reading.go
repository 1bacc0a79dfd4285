package sensors

import (
	"time"
)

// Reading holds the samples of a single fetch of a TemperatureSource
type Reading struct {
	// Samples in °C, empty if nothing could be read
	Samples   []float64 `json:"samples"`
	FetchedAt time.Time `json:"fetchedAt"`
}

func (r Reading) IsEmpty() bool {
	return len(r.Samples) <= 0
}

// Average returns the mean of all non-zero samples, 0 if there are none.
// A sample of exactly 0°C is indistinguishable from a missing value and is skipped.
func (r Reading) Average() float64 {
	total := 0.0
	count := 0
	for _, sample := range r.Samples {
		if sample == 0 {
			continue
		}
		total += sample
		count++
	}
	if count <= 0 {
		return 0
	}
	return total / float64(count)
}

// Max returns the highest sample, 0 if there are none
func (r Reading) Max() float64 {
	if r.IsEmpty() {
		return 0
	}
	result := r.Samples[0]
	for _, sample := range r.Samples {
		if sample > result {
			result = sample
		}
	}
	return result
}

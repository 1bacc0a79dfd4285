package sensors

import (
	"context"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/ui"
	"time"
)

// TemperatureSource is a single measurement channel, e.g. the inlet temperature of the chassis.
// It is not safe for concurrent use.
type TemperatureSource struct {
	config  configuration.SourceConfig
	reader  Reader
	clock   Clock
	reading Reading
	// time of the last fetch attempt, or of the last Clear
	lastFetch time.Time
}

func NewSource(config configuration.SourceConfig, clock Clock) (*TemperatureSource, error) {
	reader, err := NewReader(config)
	if err != nil {
		return nil, err
	}
	return NewTemperatureSource(config, reader, clock), nil
}

func NewTemperatureSource(config configuration.SourceConfig, reader Reader, clock Clock) *TemperatureSource {
	if clock == nil {
		clock = time.Now
	}
	return &TemperatureSource{
		config:    config,
		reader:    reader,
		clock:     clock,
		lastFetch: clock(),
	}
}

func (s *TemperatureSource) GetId() string {
	return s.config.ID
}

func (s *TemperatureSource) GetRole() string {
	return s.config.Role
}

func (s *TemperatureSource) GetConfig() configuration.SourceConfig {
	return s.config
}

func (s *TemperatureSource) Reading() Reading {
	return s.reading
}

func (s *TemperatureSource) LastFetch() time.Time {
	return s.lastFetch
}

// CachesReading indicates whether a reading is kept until it is cleared by the staleness policy
func (s *TemperatureSource) CachesReading() bool {
	return s.config.StaleAfter > 0
}

// Fetch replaces the current reading with a fresh measurement.
// Failures are not reported, they result in an empty reading.
func (s *TemperatureSource) Fetch(ctx context.Context) Reading {
	samples, err := s.reader.Read(ctx)
	if err != nil {
		ui.Debug("Source %s: %v", s.GetId(), err)
		samples = []float64{}
	}

	now := s.clock()
	s.reading = Reading{
		Samples:   samples,
		FetchedAt: now,
	}
	s.lastFetch = now
	return s.reading
}

// Refresh fetches a new reading if the polling policy of this source requires one.
// Returns true if a fetch happened.
func (s *TemperatureSource) Refresh(ctx context.Context) bool {
	if s.CachesReading() && !s.reading.IsEmpty() {
		return false
	}
	s.Fetch(ctx)
	return true
}

func (s *TemperatureSource) Average() float64 {
	return s.reading.Average()
}

func (s *TemperatureSource) Max() float64 {
	return s.reading.Max()
}

// IsStale indicates whether more than StaleAfter has passed since the last fetch.
// Sources without a staleness threshold are never stale.
func (s *TemperatureSource) IsStale(now time.Time) bool {
	if !s.CachesReading() {
		return false
	}
	return now.Sub(s.lastFetch) > s.config.StaleAfter
}

// Clear drops the current reading and restarts the staleness timer at now
func (s *TemperatureSource) Clear(now time.Time) {
	s.reading = Reading{}
	s.lastFetch = now
}

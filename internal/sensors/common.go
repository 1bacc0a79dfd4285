package sensors

import (
	"context"
	"errors"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"regexp"
	"time"
)

var (
	ErrNoMatch   = errors.New("no temperature found in output")
	ErrNotFinite = errors.New("temperature is not a finite number")
)

// Reader performs a single measurement of a temperature channel
type Reader interface {
	// Read returns all samples of one measurement
	Read(ctx context.Context) ([]float64, error)
}

// Clock returns the current time
type Clock func() time.Time

func NewReader(config configuration.SourceConfig) (Reader, error) {
	if config.Cmd != nil {
		pattern, err := regexp.Compile(config.Pattern)
		if err != nil {
			return nil, fmt.Errorf("source %s: invalid pattern: %w", config.ID, err)
		}
		return &CmdReader{
			Exec:    config.Cmd.Exec,
			Args:    config.Cmd.Args,
			Timeout: config.Cmd.Timeout,
			Pattern: pattern,
		}, nil
	}

	if config.HwMon != nil {
		key, err := regexp.Compile(config.HwMon.Key)
		if err != nil {
			return nil, fmt.Errorf("source %s: invalid hwmon key: %w", config.ID, err)
		}
		return NewHwMonReader(key), nil
	}

	return nil, fmt.Errorf("no matching source type for source: %s", config.ID)
}

package sensors

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/util"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultCmdTimeout = 20 * time.Second

// CmdReader runs an external command and scrapes temperatures from its output
type CmdReader struct {
	Exec    string
	Args    []string
	Timeout time.Duration
	Pattern *regexp.Regexp
}

func (r *CmdReader) Read(ctx context.Context) ([]float64, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}
	output, err := util.SafeCmdExecution(ctx, r.Exec, r.Args, timeout)
	if err != nil {
		return nil, err
	}
	return ExtractSamples(r.Pattern, output)
}

// ExtractSamples parses every match of pattern in output as a temperature.
// The first capture group is used if the pattern has one, otherwise the whole match.
// If any match is not a number, no samples are returned at all.
func ExtractSamples(pattern *regexp.Regexp, output string) ([]float64, error) {
	matches := pattern.FindAllStringSubmatch(output, -1)
	if len(matches) <= 0 {
		return nil, ErrNoMatch
	}

	samples := make([]float64, 0, len(matches))
	for _, match := range matches {
		text := match[0]
		if len(match) > 1 {
			text = match[1]
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse temperature '%s': %w", text, err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFinite, text)
		}
		samples = append(samples, value)
	}
	return samples, nil
}

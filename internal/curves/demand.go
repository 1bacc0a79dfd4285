package curves

import (
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/util"
)

// DemandCurve maps a temperature to a fan demand in percent using three linear segments.
// The last segment is extrapolated, so the demand may exceed 100%.
type DemandCurve struct {
	baseTemp float64
	knees    [3]configuration.KneeConfig
}

// Point is a single sample of a DemandCurve
type Point struct {
	Temp   float64 `json:"temp"`
	Demand float64 `json:"demand"`
}

// NewDemandCurve creates a curve from a validated configuration with exactly three knees
func NewDemandCurve(config configuration.DemandCurveConfig) *DemandCurve {
	curve := &DemandCurve{
		baseTemp: config.BaseTemp,
	}
	copy(curve.knees[:], config.Knees)
	return curve
}

// DemandPercent returns the fan demand for the given temperature.
// Knee temperatures belong to the higher segment.
func (c *DemandCurve) DemandPercent(temp float64) float64 {
	k1, k2, k3 := c.knees[0], c.knees[1], c.knees[2]

	switch {
	case temp <= c.baseTemp:
		return 0
	case temp < k1.Temp:
		return util.Interpolate(temp, c.baseTemp, 0, k1.Temp, k1.Demand)
	case temp < k2.Temp:
		return util.Interpolate(temp, k1.Temp, k1.Demand, k2.Temp, k2.Demand)
	default:
		return util.Interpolate(temp, k2.Temp, k2.Demand, k3.Temp, k3.Demand)
	}
}

// Table samples the curve from from to to (inclusive) in the given step
func (c *DemandCurve) Table(from float64, to float64, step float64) []Point {
	if step <= 0 {
		return nil
	}
	var points []Point
	for temp := from; temp <= to; temp += step {
		points = append(points, Point{Temp: temp, Demand: c.DemandPercent(temp)})
	}
	return points
}

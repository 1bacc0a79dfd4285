package configuration

import "time"

type ControllerConfig struct {
	// raw fan level at 0% demand
	LowLevel int `json:"lowLevel"`
	// raw fan level at 100% demand
	HighLevel int `json:"highLevel"`
	// upper bound of any raw fan level sent to the fan control command
	MaxLevel int `json:"maxLevel"`

	// ambient temperature above which the automatic fan control takes over
	DefaultThreshold float64 `json:"defaultThreshold"`
	Hysteresis       int     `json:"hysteresis"`

	EnableRetries    int           `json:"enableRetries"`
	EnableRetryDelay time.Duration `json:"enableRetryDelay"`

	Curve DemandCurveConfig `json:"curve"`
}

type DemandCurveConfig struct {
	// temperature at and below which the demand is 0%
	BaseTemp float64      `json:"baseTemp"`
	Knees    []KneeConfig `json:"knees"`
}

type KneeConfig struct {
	Temp   float64 `json:"temp"`
	Demand float64 `json:"demand"`
}

func DefaultKnees() []KneeConfig {
	return []KneeConfig{
		{Temp: 40, Demand: 5},
		{Temp: 45, Demand: 40},
		{Temp: 55, Demand: 200},
	}
}

// DefaultControllerConfig returns the controller configuration used when nothing else is configured
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		LowLevel:         0x02,
		HighLevel:        0x12,
		MaxLevel:         0xff,
		DefaultThreshold: 32,
		Hysteresis:       2,
		EnableRetries:    10,
		EnableRetryDelay: 1 * time.Second,
		Curve: DemandCurveConfig{
			BaseTemp: 30,
			Knees:    DefaultKnees(),
		},
	}
}

package configuration

import "time"

// LevelPlaceholder is replaced with the hex encoded raw fan level in FanControlConfig.LevelArgs
const LevelPlaceholder = "%level%"

type FanControlConfig struct {
	Exec    string        `json:"exec"`
	Timeout time.Duration `json:"timeout"`
	// arguments to enable the automatic (BMC native) fan control
	AutomaticArgs []string `json:"automaticArgs"`
	// arguments to disable the automatic fan control
	ManualArgs []string `json:"manualArgs"`
	LevelArgs  []string `json:"levelArgs"`
}

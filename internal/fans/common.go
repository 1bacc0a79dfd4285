package fans

import (
	"context"
	"github.com/ipmifan/ipmifan/internal/configuration"
)

const (
	MaxLevelValue = 255
	MinLevelValue = 0
)

// FanCommander issues commands to the fan subsystem of the chassis.
// A nil error means the command was acknowledged (exit status 0).
type FanCommander interface {
	// EnableAutomaticControl hands fan control back to the BMC
	EnableAutomaticControl(ctx context.Context) error
	// DisableAutomaticControl takes fan control away from the BMC
	DisableAutomaticControl(ctx context.Context) error
	// SetLevel sets all fans to the given raw level [0..255]
	SetLevel(ctx context.Context, level int) error
}

func NewFanCommander(config configuration.FanControlConfig) FanCommander {
	return &CmdFanCommander{
		Config: config,
	}
}

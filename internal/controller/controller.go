package controller

import (
	"context"
	"errors"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/curves"
	"github.com/ipmifan/ipmifan/internal/fans"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/ipmifan/ipmifan/internal/util"
	"math"
	"time"
)

type Mode int

const (
	// ModeUnset is the initial mode, nothing has been commanded yet
	ModeUnset Mode = iota
	// ModeDefault means the BMC controls the fans automatically
	ModeDefault
	// ModeManual means ipmifan dictates the fan level
	ModeManual
	// ModeReset forces the next servo call to disable automatic control again
	ModeReset
)

func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeDefault:
		return "default"
	case ModeManual:
		return "set"
	case ModeReset:
		return "reset"
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

var (
	ErrEnableAutomaticFailed = errors.New("unable to enable automatic fan control")
	ErrSetLevelFailed        = errors.New("unable to set fan level")
)

type Statistics struct {
	// number of successful fan level commands
	LevelCommands int `json:"levelCommands"`
	// number of failed fan level commands
	LevelCommandFailures int `json:"levelCommandFailures"`
	// number of computed levels that were within the hysteresis band
	HysteresisSkips int `json:"hysteresisSkips"`
	ModeSwitches    int `json:"modeSwitches"`
	// number of failed attempts to enable automatic control that were retried
	EnableRetries int `json:"enableRetries"`
	// number of servo calls without any usable temperature
	SensorFailures int `json:"sensorFailures"`
}

// Status is a point in time copy of the controller state
type Status struct {
	Mode           string     `json:"mode"`
	LastFanSetting int        `json:"lastFanSetting"`
	LastDemand     float64    `json:"lastDemand"`
	LastTarget     int        `json:"lastTarget"`
	Statistics     Statistics `json:"statistics"`
}

// FanModeController decides whether the BMC or ipmifan controls the fans and
// which level is commanded in manual mode. It is not safe for concurrent use.
type FanModeController struct {
	commander fans.FanCommander
	curve     *curves.DemandCurve
	config    configuration.ControllerConfig
	sleep     func(ctx context.Context, d time.Duration) error

	mode Mode
	// raw level of the last successful level command, 0 if none
	lastFanSetting int
	lastDemand     float64
	lastTarget     int
	statistics     Statistics
}

func NewFanModeController(commander fans.FanCommander, config configuration.ControllerConfig) *FanModeController {
	return &FanModeController{
		commander: commander,
		curve:     curves.NewDemandCurve(config.Curve),
		config:    config,
		sleep:     util.SleepWithContext,
		mode:      ModeUnset,
	}
}

func (c *FanModeController) Mode() Mode {
	return c.mode
}

func (c *FanModeController) LastFanSetting() int {
	return c.lastFanSetting
}

func (c *FanModeController) Config() configuration.ControllerConfig {
	return c.config
}

func (c *FanModeController) Curve() *curves.DemandCurve {
	return c.curve
}

func (c *FanModeController) Statistics() Statistics {
	return c.statistics
}

func (c *FanModeController) Status() Status {
	return Status{
		Mode:           c.mode.String(),
		LastFanSetting: c.lastFanSetting,
		LastDemand:     c.lastDemand,
		LastTarget:     c.lastTarget,
		Statistics:     c.statistics,
	}
}

// ForceReset makes the next ApplyServoMode call disable the automatic control again
func (c *FanModeController) ForceReset() {
	c.setMode(ModeReset)
}

// ApplyDefaultMode hands the fan control back to the BMC.
// Returns ErrEnableAutomaticFailed if all attempts failed.
func (c *FanModeController) ApplyDefaultMode(ctx context.Context) error {
	if c.mode == ModeDefault {
		return nil
	}

	ui.Info("Enabling automatic fan control")
	retries := c.config.EnableRetries
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		err := c.commander.EnableAutomaticControl(ctx)
		if err == nil {
			ui.Info("Enabling automatic fan control successful")
			c.setMode(ModeDefault)
			c.lastFanSetting = 0
			return nil
		}
		lastErr = err
		if attempt >= retries {
			break
		}

		c.statistics.EnableRetries++
		ui.Warning("Retrying automatic fan control, attempt %d failed: %v", attempt, err)
		if err := c.sleep(ctx, c.config.EnableRetryDelay); err != nil {
			return fmt.Errorf("%w: %w", ErrEnableAutomaticFailed, err)
		}
	}

	ui.Error("All %d attempts to enable automatic fan control failed", retries)
	return fmt.Errorf("%w after %d attempts: %w", ErrEnableAutomaticFailed, retries, lastErr)
}

// ApplyServoMode takes over the fan control and sets the level derived from the representative temperature.
// Returns true if a new level was commanded, false if the level is within the hysteresis band.
// A failed level command is returned as ErrSetLevelFailed.
func (c *FanModeController) ApplyServoMode(ctx context.Context, representative float64, ambient float64) (bool, error) {
	ui.Info("Ambient temperature: %.1f%s", ambient, ui.DegreeSymbol)
	ui.Info("Weighted average temperature: %.1f%s", representative, ui.DegreeSymbol)

	if representative == 0 {
		c.statistics.SensorFailures++
		ui.Error("Unable to read any temperature, falling back to automatic fan control")
		if err := c.ApplyDefaultMode(ctx); err != nil {
			ui.Error("Fallback to automatic fan control failed: %v", err)
		}
		// the manual level below is still applied in the same cycle
		ui.Warning("Continuing with manual fan control at the lowest level")
	}

	if c.mode != ModeManual {
		ui.Info("Disabling automatic fan control")
		err := c.commander.DisableAutomaticControl(ctx)
		if err != nil {
			ui.Error("Disabling automatic fan control failed: %v", err)
		} else {
			ui.Info("Disabling automatic fan control successful")
			c.setMode(ModeManual)
		}
	}

	demand := c.curve.DemandPercent(representative)
	level := c.LevelFor(demand)
	c.lastDemand = demand
	c.lastTarget = level

	ui.Info("Demand: %.1f%%, level: %s, last level: %s", demand, fans.FormatLevel(level), fans.FormatLevel(c.lastFanSetting))

	if !ShouldUpdate(c.lastFanSetting, level, c.config.Hysteresis) {
		c.statistics.HysteresisSkips++
		ui.Info("No changes were made")
		return false, nil
	}

	err := c.commander.SetLevel(ctx, level)
	if err != nil {
		c.statistics.LevelCommandFailures++
		ui.Error("Setting fan level %s failed: %v", fans.FormatLevel(level), err)
		return false, fmt.Errorf("%w %s: %w", ErrSetLevelFailed, fans.FormatLevel(level), err)
	}

	ui.Info("Setting fan level %s successful", fans.FormatLevel(level))
	c.statistics.LevelCommands++
	c.setMode(ModeManual)
	c.lastFanSetting = level
	return true, nil
}

// LevelFor converts a demand in percent to a raw fan level
func (c *FanModeController) LevelFor(demand float64) int {
	low := float64(c.config.LowLevel)
	high := float64(c.config.HighLevel)
	level := low + demand/100*(high-low)
	if math.IsNaN(level) {
		return c.config.MaxLevel
	}
	// clamp before converting, out of range floats do not convert to int
	level = util.Coerce(level, fans.MinLevelValue, float64(c.config.MaxLevel))
	return int(level)
}

// ShouldUpdate decides if a new level has to be commanded.
// Fans are ramped down immediately, but only ramped up once the level leaves the hysteresis band.
func ShouldUpdate(last int, level int, hysteresis int) bool {
	return last == 0 || level < last || level > last+hysteresis
}

func (c *FanModeController) setMode(mode Mode) {
	if c.mode != mode {
		ui.Debug("Fan mode changed: %s -> %s", c.mode, mode)
		c.statistics.ModeSwitches++
	}
	c.mode = mode
}

package configuration

import (
	"fmt"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/ipmifan/ipmifan/internal/util"
	"golang.org/x/exp/slices"
	"regexp"
	"strings"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateSources(config)
	if err != nil {
		return err
	}
	err = validateFanControl(config)
	if err != nil {
		return err
	}
	err = validateController(config)
	if err != nil {
		return err
	}
	err = validateLoop(config)
	if err != nil {
		return err
	}

	if containsCmdSources(config) && len(path) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdSources(config *Configuration) bool {
	for _, sourceConfig := range config.Sources {
		if sourceConfig.Cmd != nil {
			return true
		}
	}

	return false
}

func validateSources(config *Configuration) error {
	var ids []string
	roles := map[string]string{}

	for _, sourceConfig := range config.Sources {
		if len(sourceConfig.ID) <= 0 {
			return fmt.Errorf("source id must not be empty")
		}
		if slices.Contains(ids, sourceConfig.ID) {
			return fmt.Errorf("duplicate source id detected: %s", sourceConfig.ID)
		}
		ids = append(ids, sourceConfig.ID)

		if !slices.Contains(SourceRoles, sourceConfig.Role) {
			return fmt.Errorf("source %s: unsupported role '%s', use one of: %s", sourceConfig.ID, sourceConfig.Role, strings.Join(SourceRoles, " | "))
		}
		if other, exists := roles[sourceConfig.Role]; exists {
			return fmt.Errorf("source %s: role '%s' is already used by source %s", sourceConfig.ID, sourceConfig.Role, other)
		}
		roles[sourceConfig.Role] = sourceConfig.ID

		if sourceConfig.StaleAfter < 0 {
			return fmt.Errorf("source %s: staleAfter must not be negative", sourceConfig.ID)
		}

		subConfigs := 0
		if sourceConfig.Cmd != nil {
			subConfigs++
		}
		if sourceConfig.HwMon != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("source %s: only one source type can be used per source definition block", sourceConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("source %s: sub-configuration for source is missing, use one of: cmd | hwmon", sourceConfig.ID)
		}

		if sourceConfig.Cmd != nil {
			if len(sourceConfig.Cmd.Exec) <= 0 {
				return fmt.Errorf("source %s: missing exec", sourceConfig.ID)
			}
			if len(sourceConfig.Pattern) <= 0 {
				return fmt.Errorf("source %s: missing pattern", sourceConfig.ID)
			}
			if _, err := regexp.Compile(sourceConfig.Pattern); err != nil {
				return fmt.Errorf("source %s: invalid pattern: %v", sourceConfig.ID, err)
			}
		}

		if sourceConfig.HwMon != nil {
			if len(sourceConfig.HwMon.Key) <= 0 {
				return fmt.Errorf("source %s: missing hwmon key", sourceConfig.ID)
			}
			if _, err := regexp.Compile(sourceConfig.HwMon.Key); err != nil {
				return fmt.Errorf("source %s: invalid hwmon key: %v", sourceConfig.ID, err)
			}
		}

		if sourceConfig.Role == RoleAmbient && sourceConfig.StaleAfter <= 0 {
			ui.Warning("Ambient source %s has no staleAfter, it will never be refreshed after the first reading", sourceConfig.ID)
		}
	}

	for _, role := range SourceRoles {
		if _, exists := roles[role]; !exists {
			return fmt.Errorf("no source with role '%s' configured", role)
		}
	}

	return nil
}

func validateFanControl(config *Configuration) error {
	fanControl := config.FanControl
	if len(fanControl.Exec) <= 0 {
		return fmt.Errorf("fanControl: missing exec")
	}
	if fanControl.Timeout <= 0 {
		return fmt.Errorf("fanControl: timeout must be positive")
	}
	if len(fanControl.AutomaticArgs) <= 0 {
		return fmt.Errorf("fanControl: missing automaticArgs")
	}
	if len(fanControl.ManualArgs) <= 0 {
		return fmt.Errorf("fanControl: missing manualArgs")
	}

	containsPlaceholder := false
	for _, arg := range fanControl.LevelArgs {
		if strings.Contains(arg, LevelPlaceholder) {
			containsPlaceholder = true
			break
		}
	}
	if !containsPlaceholder {
		return fmt.Errorf("fanControl: levelArgs must contain the placeholder %s", LevelPlaceholder)
	}

	return nil
}

func validateController(config *Configuration) error {
	c := config.Controller
	if c.MaxLevel <= 0 || c.MaxLevel > 255 {
		return fmt.Errorf("controller: maxLevel must be in (0..255]")
	}
	if c.LowLevel < 0 || c.LowLevel >= c.HighLevel {
		return fmt.Errorf("controller: lowLevel must be >= 0 and lower than highLevel")
	}
	if c.HighLevel > c.MaxLevel {
		return fmt.Errorf("controller: highLevel must not exceed maxLevel")
	}
	if c.Hysteresis < 0 {
		return fmt.Errorf("controller: hysteresis must not be negative")
	}
	if c.EnableRetries < 1 {
		return fmt.Errorf("controller: enableRetries must be >= 1")
	}
	if c.EnableRetryDelay < 0 {
		return fmt.Errorf("controller: enableRetryDelay must not be negative")
	}

	knees := c.Curve.Knees
	if len(knees) != 3 {
		return fmt.Errorf("controller: curve must have exactly 3 knees, got %d", len(knees))
	}
	lastTemp := c.Curve.BaseTemp
	lastDemand := 0.0
	for i, knee := range knees {
		if knee.Temp <= lastTemp {
			return fmt.Errorf("controller: curve knee %d: temperature %.1f must be higher than %.1f", i+1, knee.Temp, lastTemp)
		}
		if knee.Demand < lastDemand {
			return fmt.Errorf("controller: curve knee %d: demand %.1f must not be lower than %.1f", i+1, knee.Demand, lastDemand)
		}
		lastTemp = knee.Temp
		lastDemand = knee.Demand
	}

	return nil
}

func validateLoop(config *Configuration) error {
	if config.Loop.Interval <= 0 {
		return fmt.Errorf("loop: interval must be positive")
	}
	if config.Loop.HistorySize < 1 {
		return fmt.Errorf("loop: historySize must be >= 1")
	}
	return nil
}

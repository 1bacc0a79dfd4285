package configuration

import "time"

const (
	RoleAmbient = "ambient"
	RoleCpu     = "cpu"
	RoleCore    = "core"
	RoleDisk    = "disk"
)

var SourceRoles = []string{RoleAmbient, RoleCpu, RoleCore, RoleDisk}

type SourceConfig struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	// Pattern is applied to the command output, every (first group) match is one sample.
	Pattern string `json:"pattern"`
	// StaleAfter enables the cache-until-cleared policy, 0 refetches every cycle.
	StaleAfter time.Duration `json:"staleAfter"`

	Cmd   *CmdSourceConfig   `json:"cmd,omitempty"`
	HwMon *HwMonSourceConfig `json:"hwmon,omitempty"`
}

type CmdSourceConfig struct {
	Exec    string        `json:"exec"`
	Args    []string      `json:"args"`
	Timeout time.Duration `json:"timeout"`
}

type HwMonSourceConfig struct {
	// Key is a regex matched against the sensor keys reported by the kernel, e.g. "coretemp_core_\d+"
	Key string `json:"key"`
}

func DefaultSources() []SourceConfig {
	timeout := 20 * time.Second
	return []SourceConfig{
		{
			ID:         RoleAmbient,
			Role:       RoleAmbient,
			Pattern:    `.*\| ([^ ]+) degrees C.*`,
			StaleAfter: 60 * time.Second,
			Cmd: &CmdSourceConfig{
				Exec:    "/bin/sh",
				Args:    []string{"-c", "ipmitool sdr type temperature | awk '/Inlet Temp/'"},
				Timeout: timeout,
			},
		},
		{
			ID:      RoleCore,
			Role:    RoleCore,
			Pattern: `.*:\s+\+([^ ]+).C.*`,
			Cmd: &CmdSourceConfig{
				Exec:    "/bin/sh",
				Args:    []string{"-c", "sensors | awk '/Core/'"},
				Timeout: timeout,
			},
		},
		{
			ID:      RoleCpu,
			Role:    RoleCpu,
			Pattern: `.*:\s+\+([^ ]+).C.*`,
			Cmd: &CmdSourceConfig{
				Exec:    "/bin/sh",
				Args:    []string{"-c", "sensors | awk '/Package id/'"},
				Timeout: timeout,
			},
		},
		{
			ID:         RoleDisk,
			Role:       RoleDisk,
			Pattern:    `/dev/sd[a-z]:\s[a-zA-Z0-9-]*\s[a-zA-Z0-9-]*:\s([^ ]+).C`,
			StaleAfter: 20 * time.Minute,
			Cmd: &CmdSourceConfig{
				Exec:    "/bin/sh",
				Args:    []string{"-c", "hddtemp /dev/sd? | awk '!/255/'"},
				Timeout: timeout,
			},
		},
	}
}

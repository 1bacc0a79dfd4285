package fans

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/util"
	"strings"
	"time"
)

const defaultTimeout = 20 * time.Second

// CmdFanCommander controls the fans through an external command, usually ipmitool raw
type CmdFanCommander struct {
	Config configuration.FanControlConfig `json:"config"`
}

func (f *CmdFanCommander) EnableAutomaticControl(ctx context.Context) error {
	return f.run(ctx, f.Config.AutomaticArgs)
}

func (f *CmdFanCommander) DisableAutomaticControl(ctx context.Context) error {
	return f.run(ctx, f.Config.ManualArgs)
}

func (f *CmdFanCommander) SetLevel(ctx context.Context, level int) error {
	if level < MinLevelValue || level > MaxLevelValue {
		return fmt.Errorf("fan level %d out of range [%d..%d]", level, MinLevelValue, MaxLevelValue)
	}
	return f.run(ctx, LevelArgs(f.Config.LevelArgs, level))
}

func (f *CmdFanCommander) run(ctx context.Context, args []string) error {
	timeout := f.Config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	_, err := util.SafeCmdExecution(ctx, f.Config.Exec, args, timeout)
	if err != nil {
		return fmt.Errorf("%s %s (exit code %d): %w", f.Config.Exec, strings.Join(args, " "), util.ExitCode(err), err)
	}
	return nil
}

// LevelArgs replaces the level placeholder in the given args with the hex encoded level, e.g. 0x12
func LevelArgs(template []string, level int) []string {
	var args = []string{}
	for _, arg := range template {
		replaced := strings.ReplaceAll(arg, configuration.LevelPlaceholder, FormatLevel(level))
		args = append(args, replaced)
	}
	return args
}

// FormatLevel encodes a raw fan level the way ipmitool raw expects it
func FormatLevel(level int) string {
	return fmt.Sprintf("%#x", level)
}

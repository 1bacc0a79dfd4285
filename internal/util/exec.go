package util

import (
	"context"
	"errors"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/ui"
	"os/exec"
	"strings"
	"time"
)

// SafeCmdExecution runs the given executable and returns its stdout without trailing newlines.
// The process is killed when the timeout expires or ctx is cancelled.
// A non-zero exit status is returned as an *exec.ExitError.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}
	if _, err := CheckFilePermissionsForExecution(path); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	// shell pipelines may leave children holding stdout open
	cmd.WaitDelay = time.Second
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out after %s: %s", timeout, executable)
		return "", ctx.Err()
	}

	if err != nil {
		ui.Debug("Command failed to execute: %s %v: %v", executable, args, err)
		return "", err
	}

	strout := string(out)
	strout = strings.Trim(strout, "\n")

	return strout, nil
}

// ExitCode extracts the exit status of a failed command, -1 if it never ran
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

package util

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestSafeCmdExecution_Output(t *testing.T) {
	// GIVEN
	args := []string{"| 21 degrees C"}

	// WHEN
	result, err := SafeCmdExecution(context.Background(), "echo", args, time.Second)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "| 21 degrees C", result)
}

func TestSafeCmdExecution_NonZeroExit(t *testing.T) {
	// GIVEN
	executable := "false"

	// WHEN
	result, err := SafeCmdExecution(context.Background(), executable, nil, time.Second)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, "", result)
	assert.Equal(t, 1, ExitCode(err))
}

func TestSafeCmdExecution_MissingExecutable(t *testing.T) {
	// GIVEN
	executable := "/this/does/not/exist"

	// WHEN
	_, err := SafeCmdExecution(context.Background(), executable, nil, time.Second)

	// THEN
	assert.Error(t, err)
	assert.Equal(t, -1, ExitCode(err))
}

func TestSafeCmdExecution_Timeout(t *testing.T) {
	// GIVEN
	timeout := 50 * time.Millisecond

	// WHEN
	start := time.Now()
	_, err := SafeCmdExecution(context.Background(), "sleep", []string{"5"}, timeout)

	// THEN
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestExitCode_Nil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

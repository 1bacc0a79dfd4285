package controller

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/ui"
	"sync"
	"time"
)

// Authority represents the control over the chassis fans held by this process.
// It has to be released on every exit path to hand the fans back to the BMC.
type Authority struct {
	controller *FanModeController
	timeout    time.Duration
	once       sync.Once
}

// Acquire takes authority over the fans; call Release (typically deferred) when done
func Acquire(controller *FanModeController, timeout time.Duration) *Authority {
	ui.Debug("Acquired fan control authority")
	return &Authority{
		controller: controller,
		timeout:    timeout,
	}
}

// Release restores the automatic fan control. Only the first call has an effect,
// it never panics.
func (a *Authority) Release() (err error) {
	a.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic while restoring automatic fan control: %v", r)
				ui.Error("%v", err)
			}
		}()

		ui.Info("Resetting fans back to automatic control")
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		err = a.controller.ApplyDefaultMode(ctx)
		if err != nil {
			ui.Error("Unable to restore automatic fan control: %v", err)
			return
		}
		ui.Info("Automatic fan control restored")
	})
	return err
}

// ReleaseTimeout is the longest time all enable attempts may take
func ReleaseTimeout(controller *FanModeController, commandTimeout time.Duration) time.Duration {
	config := controller.Config()
	return time.Duration(config.EnableRetries) * (config.EnableRetryDelay + commandTimeout)
}

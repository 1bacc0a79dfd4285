package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/api"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/control_loop"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/fans"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/ipmifan/ipmifan/internal/statistics"
	"github.com/ipmifan/ipmifan/internal/status"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Daemon holds all objects of a running fan control
type Daemon struct {
	Loop       *control_loop.ControlLoop
	Controller *controller.FanModeController
	Board      *status.Board
}

// RunDaemon controls the fans until a termination signal is received or an actor fails.
// Automatic fan control is restored on every exit path.
func RunDaemon() error {
	if os.Geteuid() != 0 {
		return errors.New("fan control requires root permissions to be able to modify fan speeds, please run ipmifan as root")
	}

	config := configuration.CurrentConfig
	daemon, err := InitializeObjects(config)
	if err != nil {
		return err
	}

	authority := controller.Acquire(daemon.Controller, controller.ReleaseTimeout(daemon.Controller, config.FanControl.Timeout))
	defer func() {
		_ = authority.Release()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			statistics.Register(statistics.NewSensorCollector(daemon.Board))
			statistics.Register(statistics.NewControllerCollector(daemon.Board))

			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on %s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					<-ctx.Done()
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			var registerer prometheus.Registerer
			if config.Statistics.Enabled {
				registerer = prometheus.DefaultRegisterer
			}
			rest := api.CreateRestService(daemon.Board, daemon.Controller.Curve(), registerer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Starting REST api on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api (%s)", err.Error())
					<-ctx.Done()
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === control loop
		g.Add(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("control loop panicked: %v", r)
				}
			}()
			err = daemon.Loop.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if err == nil {
		ui.Info("Done.")
	}
	return err
}

// InitializeObjects creates the sources, the fan controller and the control loop from the given configuration
func InitializeObjects(config configuration.Configuration) (*Daemon, error) {
	sources, err := createSources(config.Sources)
	if err != nil {
		return nil, err
	}

	commander := fans.NewFanCommander(config.FanControl)
	fanController := controller.NewFanModeController(commander, config.Controller)
	board := status.NewBoard(config.Loop.HistorySize)
	loop := control_loop.NewControlLoop(sources, fanController, board, config.Loop.Interval, time.Now)

	return &Daemon{
		Loop:       loop,
		Controller: fanController,
		Board:      board,
	}, nil
}

func createSources(configs []configuration.SourceConfig) (control_loop.Sources, error) {
	result := control_loop.Sources{}
	for _, config := range configs {
		source, err := sensors.NewSource(config, time.Now)
		if err != nil {
			return result, fmt.Errorf("unable to process source configuration %s: %w", config.ID, err)
		}

		switch config.Role {
		case configuration.RoleAmbient:
			result.Ambient = source
		case configuration.RoleCpu:
			result.Cpu = source
		case configuration.RoleCore:
			result.Core = source
		case configuration.RoleDisk:
			result.Disk = source
		default:
			return result, fmt.Errorf("unknown role of source %s: %s", config.ID, config.Role)
		}
	}

	for role, source := range map[string]*sensors.TemperatureSource{
		configuration.RoleAmbient: result.Ambient,
		configuration.RoleCpu:     result.Cpu,
		configuration.RoleCore:    result.Core,
		configuration.RoleDisk:    result.Disk,
	} {
		if source == nil {
			return result, fmt.Errorf("no source configured for role %s", role)
		}
	}
	return result, nil
}

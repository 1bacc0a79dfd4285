package sensor

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/sensors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"time"
)

var (
	sourceId    string
	showSamples bool
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current average temperature of a source",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		source, err := getSource(sourceId)
		if err != nil {
			return err
		}

		reading := source.Fetch(context.Background())
		if reading.IsEmpty() {
			return fmt.Errorf("no temperature could be read from source %s", sourceId)
		}

		if showSamples {
			for _, sample := range reading.Samples {
				fmt.Printf("%.1f\n", sample)
			}
			return nil
		}
		fmt.Printf("%.1f", reading.Average())
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sourceId,
		"id", "i",
		"",
		"Source ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
	Command.Flags().BoolVarP(&showSamples, "samples", "s", false, "Print every sample instead of the average")
}

func getSource(id string) (*sensors.TemperatureSource, error) {
	if err := global.LoadConfig(); err != nil {
		return nil, err
	}

	availableSourceIds := []string{}
	for _, config := range configuration.CurrentConfig.Sources {
		availableSourceIds = append(availableSourceIds, config.ID)
		if config.ID == id {
			return sensors.NewSource(config, time.Now)
		}
	}

	return nil, fmt.Errorf("no source with id found: %s, options: %s", id, availableSourceIds)
}

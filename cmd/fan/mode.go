package fan

import (
	"context"
	"fmt"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"strings"
)

var modeCmd = &cobra.Command{
	Use:       "mode",
	Short:     "Set the fan control mode of the BMC, one of: 'auto', 'manual'",
	Long:      ``,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"auto", "manual"},
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		commander, err := getFanCommander()
		if err != nil {
			return err
		}

		ctx := context.Background()
		switch strings.ToLower(args[0]) {
		case "auto":
			err = commander.EnableAutomaticControl(ctx)
			if err == nil {
				fmt.Printf("Automatic control by the BMC")
			}
		case "manual":
			err = commander.DisableAutomaticControl(ctx)
			if err == nil {
				fmt.Printf("Manual control, the fan level has to be set explicitly")
			}
		default:
			return fmt.Errorf("unknown mode: %s, must be one of: 'auto', 'manual'", args[0])
		}
		return err
	},
}

func init() {
	Command.AddCommand(modeCmd)
}

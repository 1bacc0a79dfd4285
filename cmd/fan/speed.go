package fan

import (
	"context"
	"fmt"
	"github.com/ipmifan/ipmifan/internal/fans"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"strconv"
)

var speedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Disable the automatic control and set all fans to the given raw level ([0..255], e.g. 20 or 0x14)",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		level, err := strconv.ParseInt(args[0], 0, 0)
		if err != nil {
			return err
		}
		if level < fans.MinLevelValue || level > fans.MaxLevelValue {
			return fmt.Errorf("level %d out of range [%d..%d]", level, fans.MinLevelValue, fans.MaxLevelValue)
		}

		commander, err := getFanCommander()
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := commander.DisableAutomaticControl(ctx); err != nil {
			return err
		}
		if err := commander.SetLevel(ctx, int(level)); err != nil {
			return err
		}
		fmt.Printf("%s", fans.FormatLevel(int(level)))
		return nil
	},
}

func init() {
	Command.AddCommand(speedCmd)
}

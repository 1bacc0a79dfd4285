package fan

import (
	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/fans"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getFanCommander() (fans.FanCommander, error) {
	if err := global.LoadConfig(); err != nil {
		return nil, err
	}
	return fans.NewFanCommander(configuration.CurrentConfig.FanControl), nil
}

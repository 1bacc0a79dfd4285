package cmd

import (
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags "-X github.com/ipmifan/ipmifan/cmd.Version=..."
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ipmifan",
	Long:  `All software has versions. This is ipmifan's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

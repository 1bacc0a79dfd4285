package cmd

import (
	"fmt"
	"github.com/ipmifan/ipmifan/cmd/config"
	"github.com/ipmifan/ipmifan/cmd/fan"
	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/cmd/sensor"
	"github.com/ipmifan/ipmifan/internal"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ipmifan",
	Short: "A daemon to control the chassis fans of a server via IPMI.",
	Long: `ipmifan is a simple daemon that controls the chassis fans
of a server through its BMC, based on ambient, cpu and disk temperatures.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		if err := global.LoadConfig(); err != nil {
			ui.Fatal("Config Validation Error: %v", err)
		}

		if err := internal.RunDaemon(); err != nil {
			ui.Fatal("%v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/ipmifan.yaml)")
	rootCmd.PersistentFlags().StringVarP(&global.EnvFile, "env-file", "e", "", "dotenv file with IPMIFAN_ environment overrides")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("ipmi", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("fan", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("ipmifan")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		if global.EnvFile != "" {
			if err := configuration.LoadEnvFile(global.EnvFile); err != nil {
				ui.Fatal("%v", err)
			}
		}
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

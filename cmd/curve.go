package cmd

import (
	"bytes"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/ipmifan/ipmifan/cmd/global"
	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/controller"
	"github.com/ipmifan/ipmifan/internal/fans"
	"github.com/ipmifan/ipmifan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const (
	curveFromTemp  = 20
	curveToTemp    = 70
	curveTableStep = 5
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the demand curve and the resulting fan levels to console",
	Run: func(cmd *cobra.Command, args []string) {
		if err := global.LoadConfig(); err != nil {
			ui.Fatal("Config Validation Error: %v", err)
		}

		config := configuration.CurrentConfig.Controller
		fanController := controller.NewFanModeController(nil, config)
		curve := fanController.Curve()

		// print table
		var rows [][]string
		for _, point := range curve.Table(curveFromTemp, curveToTemp, curveTableStep) {
			rows = append(rows, []string{
				fmt.Sprintf("%.0f%s", point.Temp, ui.DegreeSymbol),
				fmt.Sprintf("%.1f%%", point.Demand),
				fans.FormatLevel(fanController.LevelFor(point.Demand)),
			})
		}
		tab := table.Table{
			Headers: []string{"Temperature", "Demand", "Level"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		err := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if err != nil {
			ui.Fatal("Unable to print curve table: %v", err)
		}
		ui.Printfln("%s", buf.String())

		// print graph
		var values []float64
		for _, point := range curve.Table(curveFromTemp, curveToTemp, 1) {
			values = append(values, float64(fanController.LevelFor(point.Demand)))
		}
		caption := fmt.Sprintf("Level / Temperature (%d..%d%s)", curveFromTemp, curveToTemp, ui.DegreeSymbol)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
	},
}

func init() {
	rootCmd.AddCommand(curveCmd)
}

package cmd

import (
	"os"

	"github.com/slipway-sh/slipway/cmd/slipway/cmd/build"
	"github.com/slipway-sh/slipway/cmd/slipway/cmd/render"
	"github.com/slipway-sh/slipway/cmd/slipway/cmd/run"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/spf13/cobra"
)

var log = logger.NewLogger("slipway.cli")

var rootCommand = &cobra.Command{
	Use:   "slipway",
	Short: "Package and launch web applications as containers",
	Long:  "slipway packages a WSGI web application into a runnable container image and launches it under a production WSGI server",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(0)
	},
}

var logFlags = logger.ParseFlags()

func initFlags() {
	rootCommand.PersistentFlags().AddFlagSet(logFlags.FlagSet())
}

func init() {
	initFlags()

	rootCommand.AddCommand(build.Command)
	rootCommand.AddCommand(run.Command)
	rootCommand.AddCommand(render.Command)
}

func Run() {
	if err := rootCommand.Execute(); err != nil {
		log.Fatal(err)
	}
}

package render

import (
	"fmt"
	"os"

	"github.com/slipway-sh/slipway/pkg/buildfile"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/spf13/cobra"
)

var log = logger.NewLogger("slipway.cli.render")

var Command = &cobra.Command{
	Use:   "render",
	Short: "Print the build file a recipe renders to, without building",
	Long:  "",
	Run:   run,
}

var cmdFlags = ParseFlags()

func initFlags() {
	Command.Flags().AddFlagSet(cmdFlags.FlagSet())
}

func init() {
	initFlags()
}

func run(cobraCommand *cobra.Command, args []string) {
	logger.ReadAndApply(cobraCommand, log)
	os.Exit(processCommand())
}

func processCommand() int {
	rcp, err := recipe.Resolve(cmdFlags.CommandFlags().RecipeFile, cmdFlags.CommandFlags().SourceDir)
	if err != nil {
		log.Errorf("failed to resolve build recipe: %v", err)
		return 1
	}

	rendered, err := buildfile.Render(rcp)
	if err != nil {
		log.Errorf("failed to render build file: %v", err)
		return 1
	}

	fmt.Print(rendered)

	return 0
}

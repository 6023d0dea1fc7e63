package build

import (
	"os"

	"github.com/slipway-sh/slipway/pkg/container"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/slipway-sh/slipway/pkg/naming"
	"github.com/slipway-sh/slipway/pkg/pipeline"
	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/slipway-sh/slipway/pkg/signals"
	"github.com/slipway-sh/slipway/pkg/utils"
	"github.com/spf13/cobra"
)

var log = logger.NewLogger("slipway.cli.build")

var Command = &cobra.Command{
	Use:   "build",
	Short: "Build a runnable image from an application source tree",
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
	sourceDir := cmdFlags.CommandFlags().SourceDir
	exists, sourceStat := utils.FileExists(sourceDir)
	if !exists {
		log.Errorf("value of --source does not exist: %s", sourceDir)
		return 1
	}
	if !utils.IsDir(sourceStat) {
		log.Error("value of --source does not point to a directory")
		return 1
	}

	tag := cmdFlags.CommandFlags().Tag
	if tag == "" {
		tag = naming.ImageTag(sourceDir)
	}
	if !utils.IsValidTag(tag) {
		log.Error("value of --tag is not a valid image tag")
		return 1
	}

	rcp, err := recipe.Resolve(cmdFlags.CommandFlags().RecipeFile, sourceDir)
	if err != nil {
		log.Errorf("failed to resolve build recipe: %v", err)
		return 1
	}

	engine, err := container.NewDockerEngine(log)
	if err != nil {
		log.Errorf("failed to get default engine client: %v", err)
		return 1
	}

	ctx := signals.Context()
	result, err := pipeline.New(log, engine, rcp, sourceDir, tag).Run(ctx)
	if err != nil {
		log.Errorf("failed to build image: %v", err)
		return 1
	}

	log.WithFields(map[string]any{
		"image-tag":       result.Tag,
		"manifest-digest": result.ManifestDigest,
		"requirements":    result.Requirements,
	}).Info("image built successfully")

	return 0
}

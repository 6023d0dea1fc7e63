package run

import (
	"github.com/slipway-sh/slipway/pkg/flags"
	"github.com/spf13/pflag"
)

type commandFlags struct {
	SourceDir  string
	Tag        string
	RecipeFile string
	Build      bool
	Detach     bool
}

type parsedFlags struct {
	cmdFlags *commandFlags
	flagSet  *pflag.FlagSet
}

func ParseFlags() *parsedFlags {
	var f commandFlags

	parser := flags.NewFlagParser("run")
	parser.FlagSet().StringVar(&f.SourceDir, "source", ".", "Path to the application source tree")
	parser.FlagSet().StringVar(&f.Tag, "tag", "", "Tag of the image to launch, derived from the source directory name if empty")
	parser.FlagSet().StringVar(&f.RecipeFile, "recipe", "", "Path to the build recipe file")
	parser.FlagSet().BoolVar(&f.Build, "build", false, "Force a build before launching, even if the image is up to date")
	parser.FlagSet().BoolVar(&f.Detach, "detach", false, "Start the container and return without waiting for it")

	return &parsedFlags{
		cmdFlags: &f,
		flagSet:  parser.FlagSet(),
	}
}

func (p *parsedFlags) CommandFlags() *commandFlags {
	return p.cmdFlags
}

func (p *parsedFlags) FlagSet() *pflag.FlagSet {
	return p.flagSet
}

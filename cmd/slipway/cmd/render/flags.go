package render

import (
	"github.com/slipway-sh/slipway/pkg/flags"
	"github.com/spf13/pflag"
)

type commandFlags struct {
	SourceDir  string
	RecipeFile string
}

type parsedFlags struct {
	cmdFlags *commandFlags
	flagSet  *pflag.FlagSet
}

func ParseFlags() *parsedFlags {
	var f commandFlags

	parser := flags.NewFlagParser("render")
	parser.FlagSet().StringVar(&f.SourceDir, "source", ".", "Path to the application source tree")
	parser.FlagSet().StringVar(&f.RecipeFile, "recipe", "", "Path to the build recipe file")

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

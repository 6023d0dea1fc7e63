package flags

import (
	"github.com/spf13/pflag"
)

type FlagParser struct {
	flagSet *pflag.FlagSet
}

func NewFlagParser(name string) *FlagParser {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.SortFlags = true

	return &FlagParser{
		flagSet: fs,
	}
}

func (f *FlagParser) FlagSet() *pflag.FlagSet {
	return f.flagSet
}

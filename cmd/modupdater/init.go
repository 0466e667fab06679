package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"

	"github.com/tie/modupdater/config"
)

type InitCommand struct {
	OutputPath string
	Force      bool
}

func (*InitCommand) Name() string     { return "init" }
func (*InitCommand) Synopsis() string { return "write default configuration" }
func (*InitCommand) Usage() string {
	return `Usage: modupdater init [-o modupdater.hcl] [-f]

	Writes the default configuration: version aliases, release quota,
	selection policy and upstream endpoints.

Flags:
`
}

func (cmd *InitCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OutputPath, "o", config.DefaultPath, "output configuration path")
	fs.BoolVar(&cmd.Force, "f", false, "overwrite existing file")
}

func (cmd *InitCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	opath := cmd.OutputPath
	if !cmd.Force {
		if _, err := os.Stat(opath); err == nil {
			log.Printf("%q already exists, use -f to overwrite", opath)
			return subcommands.ExitFailure
		}
	}
	data := config.Encode(config.Default())
	if err := renameio.WriteFile(opath, data, 0644); err != nil {
		log.Printf("write %q: %+v", opath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type RefreshCommand struct {
	cacheFlags
}

func (*RefreshCommand) Name() string     { return "refresh" }
func (*RefreshCommand) Synopsis() string { return "refresh local file catalog" }
func (*RefreshCommand) Usage() string {
	return `Usage: modupdater refresh [-cache dir]

	Downloads the CurseForge client feed snapshots when they are newer
	than the local copies and rebuilds the catalog used by update -api.
	Useful for pre-filling local cache and checking feed availability.

Flags:
`
}

func (cmd *RefreshCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	conf, ok := cmd.loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	c, err := cmd.open()
	if err != nil {
		log.Printf("open cache: %+v", err)
		return subcommands.ExitFailure
	}
	defer c.Close()

	store := loadStore(ctx, c, newClient(conf.Endpoints))
	log.Printf("catalog has %d projects", store.Len())
	if store.Len() == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

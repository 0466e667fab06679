package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/tie/modupdater/catalog"
)

type CleanCommand struct {
	CacheDir string
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove cached files" }
func (*CleanCommand) Usage() string {
	return `Usage: modupdater clean [-cache dir]

	Removes the file catalog, feed snapshots and slug cache.

Flags:
`
}

func (cmd *CleanCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.CacheDir, "cache", ".", "directory for catalog and slug cache")
}

func (cmd *CleanCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	rc := subcommands.ExitSuccess
	for _, name := range cacheFiles() {
		path := filepath.Join(cmd.CacheDir, name)
		if err := os.RemoveAll(path); err != nil {
			log.Printf("clean %q: %+v", path, err)
			rc = subcommands.ExitFailure
		}
	}
	return rc
}

func cacheFiles() []string {
	return []string{
		catalog.CacheFile,
		catalog.CompleteFile,
		catalog.CompleteFile + ".txt",
		catalog.HourlyFile,
		catalog.HourlyFile + ".txt",
		slugsDB,
	}
}

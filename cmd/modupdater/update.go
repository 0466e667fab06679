package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"

	"github.com/tie/modupdater/catalog"
	"github.com/tie/modupdater/curse"
	"github.com/tie/modupdater/manifest"
	"github.com/tie/modupdater/update"
)

type UpdateCommand struct {
	cacheFlags

	ManifestPath string
	PatchPath    string
	Overwrite    bool
	UseCatalog   bool
	PolicyName   string
	Stable       bool
	DiffOnly     bool
	ContextSize  int
}

func (*UpdateCommand) Name() string     { return "update" }
func (*UpdateCommand) Synopsis() string { return "update modpack manifest" }
func (*UpdateCommand) Usage() string {
	return `Usage: modupdater update [-manifest manifest.json] [-w] [-api] [-patch patch.json] [-policy name] [-stable] [-d]

	Checks every mod of a CurseForge modpack manifest for newer files
	and writes the updated manifest to new_manifest.json next to the
	original, or over it with -w.

	Files are looked up live on the mcf.li widget, or with -api in a
	local catalog built from the CurseForge client feed. The catalog is
	downloaded again only when the feed is newer than the local copy.

	A patch file adds, removes or freezes projects before updating:

	    {"add": [238222], "remove": [32274], "freeze": [60089]}

	Patches ending in .json are JSON, .yaml or .yml are YAML, anything
	else is read as HCL.

	The selection policies are:

	    strict-greater
	        Propose the newest file with an ID greater than the pinned
	        one. This is the default.
	    not-equal
	        Propose the newest file preceding the pinned one in the
	        listing. Proposes a file even when the pinned one is newer
	        but filtered out.

Flags:
`
}

func (cmd *UpdateCommand) SetFlags(fs *flag.FlagSet) {
	cmd.cacheFlags.SetFlags(fs)
	fs.StringVar(&cmd.ManifestPath, "manifest", defaultManifest, "manifest.json file from unzipped pack")
	fs.StringVar(&cmd.PatchPath, "patch", "", "patch file for the pack")
	fs.BoolVar(&cmd.Overwrite, "w", false, "replace manifest with updated version")
	fs.BoolVar(&cmd.UseCatalog, "api", false, "use the CurseForge feed catalog instead of the widget")
	fs.StringVar(&cmd.PolicyName, "policy", "", "selection policy (overrides config)")
	fs.BoolVar(&cmd.Stable, "stable", false, "never propose files less stable than the pinned one")
	fs.BoolVar(&cmd.DiffOnly, "d", false, "print unified diff instead of writing the manifest")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *UpdateCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) (rc subcommands.ExitStatus) {
	conf, ok := cmd.loadConfig()
	if !ok {
		return subcommands.ExitFailure
	}
	if cmd.PolicyName != "" {
		p, err := update.ParsePolicy(cmd.PolicyName)
		if err != nil {
			log.Printf("parse policy: %+v", err)
			return subcommands.ExitUsageError
		}
		conf.Policy = p
	}

	fpath := cmd.ManifestPath
	m, err := manifest.Load(fpath)
	if err != nil {
		log.Printf("load manifest %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	before, err := manifest.Encode(m)
	if err != nil {
		log.Printf("encode manifest: %+v", err)
		return subcommands.ExitFailure
	}

	var patch *manifest.Patch
	if cmd.PatchPath != "" {
		var ok bool
		patch, ok = loadPatch(cmd.PatchPath)
		if !ok {
			return subcommands.ExitFailure
		}
	}
	frozen := patch.Apply(m)

	c, err := cmd.open()
	if err != nil {
		log.Printf("open cache: %+v", err)
		return subcommands.ExitFailure
	}
	defer c.Close()

	client := newClient(conf.Endpoints)
	u := update.Updater{
		Aliases:       conf.Aliases,
		Quota:         conf.Quota,
		Policy:        conf.Policy,
		KeepStability: conf.KeepStability || cmd.Stable,
		Logger:        log.New(os.Stdout, "", 0),
	}
	if cmd.UseCatalog {
		u.Source = &catalog.CatalogSource{Store: loadStore(ctx, c, client)}
	} else {
		u.Source = &catalog.WidgetSource{Client: client}
		u.Slugs = &catalog.SlugCache{Resolver: client, Database: c.DB}
	}

	rep := u.Run(ctx, m, frozen)
	log.Printf("%d updated, %d up to date, %d frozen, %d unresolved",
		rep.Updated, rep.Current, rep.Frozen, rep.Unresolved)

	after, err := manifest.Encode(m)
	if err != nil {
		log.Printf("encode manifest: %+v", err)
		return subcommands.ExitFailure
	}

	if cmd.DiffOnly {
		if err := writeDiff(ctx, os.Stdout, fpath, before, after, cmd.ContextSize); err != nil {
			log.Printf("write diff: %+v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	opath := manifest.OutputPath(fpath, cmd.Overwrite)
	if err := renameio.WriteFile(opath, after, 0644); err != nil {
		log.Printf("write file %q: %+v", opath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// loadStore loads the local catalog and refreshes it from the feed.
// Failures are logged; a stale or empty catalog is still usable.
func loadStore(ctx context.Context, c *cache, client *curse.Client) *catalog.Store {
	store := catalog.NewStore(c.Files)
	if err := store.Load(); err != nil {
		log.Printf("load catalog: %+v", err)
	}
	feed := &catalog.Feed{Client: client, Files: c.Files}
	if _, err := store.Refresh(ctx, feed); err != nil {
		log.Printf("refresh catalog: %+v", err)
	}
	return store
}

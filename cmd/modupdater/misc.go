package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/akrylysov/pogreb"
	"github.com/akrylysov/pogreb/fs"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/tie/internal/robustio"

	"github.com/tie/modupdater/config"
	"github.com/tie/modupdater/curse"
	"github.com/tie/modupdater/manifest"
)

const slugsDB = "slugs.db"

// cacheFlags are shared by commands that use the local catalog.
type cacheFlags struct {
	CacheDir     string
	DisableCache bool
	ConfigPath   string
}

func (c *cacheFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.CacheDir, "cache", ".", "directory for catalog and slug cache")
	fs.BoolVar(&c.DisableCache, "nocache", false, "disable filesystem cache")
	fs.StringVar(&c.ConfigPath, "config", "", "configuration file path (default "+config.DefaultPath+" if present)")
}

type cache struct {
	Files billy.Filesystem
	DB    *pogreb.DB
}

func (c *cache) Close() {
	if err := c.DB.Close(); err != nil {
		log.Printf("close %q: %+v", slugsDB, err)
	}
}

func (c *cacheFlags) open() (*cache, error) {
	if c.DisableCache {
		// BUG pogreb.Open always calls os.MkdirAll
		db, err := pogreb.Open(".", &pogreb.Options{
			FileSystem: fs.Mem,
		})
		if err != nil {
			return nil, err
		}
		return &cache{memfs.New(), db}, nil
	}
	if err := os.MkdirAll(c.CacheDir, 0755); err != nil {
		return nil, err
	}
	db, err := pogreb.Open(filepath.Join(c.CacheDir, slugsDB), nil)
	if err != nil {
		return nil, err
	}
	return &cache{osfs.New(c.CacheDir), db}, nil
}

func (c *cacheFlags) loadConfig() (config.Config, bool) {
	path := c.ConfigPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err != nil {
			return config.Default(), true
		}
		path = config.DefaultPath
	}

	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := robustio.ReadFile(path)
	if err != nil {
		log.Printf("read %q: %+v", path, err)
		return config.Config{}, false
	}
	conf, diags := config.Parse(parser, src, path)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.Printf("write diags: %+v", err)
		return conf, false
	}
	return conf, !diags.HasErrors()
}

func loadPatch(path string) (*manifest.Patch, bool) {
	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	src, err := robustio.ReadFile(path)
	if err != nil {
		log.Printf("read %q: %+v", path, err)
		return nil, false
	}
	patch, diags := manifest.ParsePatch(parser, src, path)
	if err := diagWr.WriteDiagnostics(diags); err != nil {
		log.Printf("write diags: %+v", err)
		return nil, false
	}
	return patch, !diags.HasErrors()
}

func newClient(e config.Endpoints) *curse.Client {
	return &curse.Client{
		HTTP:       &http.Client{Timeout: 5 * time.Minute},
		ProjectURL: e.Project,
		WidgetURL:  e.Widget,
		FeedURL:    e.Feed,
	}
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, color)
		return diagWr, color
	}
	width := uint(80)
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

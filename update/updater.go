// Package update selects newer CurseForge files for the mods of a
// modpack manifest.
package update

import (
	"context"
	"log"

	"github.com/tie/modupdater/catalog"
	"github.com/tie/modupdater/manifest/jsonspec"
)

// Outcome is what happened to one manifest entry.
type Outcome int

const (
	Updated Outcome = iota
	Current
	Frozen
	Unresolved
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Current:
		return "up to date"
	case Frozen:
		return "frozen"
	case Unresolved:
		return "unresolved"
	}
	return "unknown"
}

// Change records a replaced file ID.
type Change struct {
	ProjectID int
	OldFileID int
	NewFileID int
	Version   string
	Name      string
}

// Report summarizes a run.
type Report struct {
	Outcomes map[int]Outcome
	Changes  []Change

	Updated    int
	Current    int
	Frozen     int
	Unresolved int
}

func (r *Report) add(projectID int, o Outcome) {
	if r.Outcomes == nil {
		r.Outcomes = make(map[int]Outcome)
	}
	r.Outcomes[projectID] = o
	switch o {
	case Updated:
		r.Updated++
	case Current:
		r.Current++
	case Frozen:
		r.Frozen++
	case Unresolved:
		r.Unresolved++
	}
}

// Updater walks the manifest one mod at a time.
type Updater struct {
	// Source provides file lists.
	Source catalog.Source
	// Slugs resolves project slugs. It may be nil when Source does
	// not need them.
	Slugs catalog.SlugResolver

	Aliases Aliases
	Quota   Quota
	Policy  Policy

	// KeepStability drops candidates less stable than the pinned file.
	KeepStability bool

	Logger *log.Logger
}

func (u *Updater) logf(format string, v ...interface{}) {
	if u.Logger == nil {
		return
	}
	u.Logger.Printf(format, v...)
}

// Resolve tries each accepted game version of pinned in order and
// returns the first non-empty file list. A failed lookup ends the
// search since other versions use the same listing.
func (u *Updater) Resolve(ctx context.Context, pinned string, projectID int, slug string) catalog.Result {
	r := catalog.Result{Status: catalog.Empty, Version: pinned}
	for _, v := range u.Aliases.Versions(pinned) {
		r = u.Source.Files(ctx, v, projectID, slug)
		if r.Status != catalog.Empty {
			return r
		}
	}
	return r
}

// Run updates the file IDs of m in place. Entries whose project is in
// frozen are left alone without any lookup. Failures only affect the
// entry they happened on.
func (u *Updater) Run(ctx context.Context, m *jsonspec.Manifest, frozen map[int]bool) Report {
	var rep Report
	for i := range m.Files {
		mod := &m.Files[i]
		o, c := u.update(ctx, m.Minecraft.Version, mod, frozen[mod.ProjectID])
		rep.add(mod.ProjectID, o)
		if o == Updated {
			rep.Changes = append(rep.Changes, c)
		}
	}
	return rep
}

func (u *Updater) update(ctx context.Context, pinned string, mod *jsonspec.File, frozen bool) (Outcome, Change) {
	id := mod.ProjectID
	u.logf("project %d", id)
	if frozen {
		u.logf("* not checking for updates")
		return Frozen, Change{}
	}

	var slug string
	if u.Slugs != nil {
		var err error
		slug, err = u.Slugs.ProjectSlug(ctx, id)
		if err != nil {
			u.logf("! get name for project %d: %+v", id, err)
			return Unresolved, Change{}
		}
		u.logf("* project name is %s", slug)
	}

	r := u.Resolve(ctx, pinned, id, slug)
	switch r.Status {
	case catalog.Failed:
		u.logf("! get files for project %d: %+v", id, r.Err)
		return Unresolved, Change{}
	case catalog.Empty:
		u.logf("! no files found for this mod")
		return Unresolved, Change{}
	}
	if r.Version != pinned {
		u.logf("* using files for %s", r.Version)
	}

	files := r.Files
	u.logf("* current file version is %s", FileName(mod.FileID, files))

	candidates := u.Quota.Filter(files)
	current, known := findFile(mod.FileID, files)
	if u.KeepStability && known {
		candidates = AtLeastAsStable(candidates, current.Type)
	}

	f, ok := u.Policy.Select(candidates, mod.FileID)
	if !ok {
		if known && !UpToDate(mod.FileID, current.Type, files, true) {
			u.logf("* no newer file passes the filters")
		} else {
			u.logf("* project already up to date")
		}
		return Current, Change{}
	}

	u.logf("* found new version: %s", FileName(f.ID, files))
	c := Change{
		ProjectID: id,
		OldFileID: mod.FileID,
		NewFileID: f.ID,
		Version:   r.Version,
		Name:      f.Name,
	}
	mod.FileID = f.ID
	return Updated, c
}

// Package catalog turns CurseForge file listings into ordered file
// lists, either live from the widget or from a local snapshot of the
// client update feed.
package catalog

import (
	"context"

	"github.com/tie/modupdater/models"
)

// Status tells how a lookup ended.
type Status int

const (
	// Found means Files is non-empty.
	Found Status = iota
	// Empty means the lookup worked but there are no files
	// for the requested game version.
	Empty
	// Failed means the project could not be looked up at all.
	// Trying other game versions will not help.
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result of a file lookup. Files are ordered newest first.
type Result struct {
	Status  Status
	Version string
	Files   []models.File
	Err     error
}

func found(version string, files []models.File) Result {
	if len(files) == 0 {
		return Result{Status: Empty, Version: version}
	}
	return Result{Status: Found, Version: version, Files: files}
}

func failed(version string, err error) Result {
	return Result{Status: Failed, Version: version, Err: err}
}

// Source looks up the files of a project for one game version.
type Source interface {
	Files(ctx context.Context, version string, projectID int, slug string) Result
}

package catalog

import (
	"compress/bzip2"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"

	"github.com/tie/modupdater/models"
)

const (
	CacheFile    = "cache.json"
	CompleteFile = "complete.json.bz2"
	HourlyFile   = "hourly.json.bz2"
)

// Project is the catalog entry of one project. Download holds the
// latest file of each game version, not the full history.
type Project struct {
	Title    string        `json:"title"`
	Download []models.File `json:"download"`
}

// snapshot is the layout of the feed's bz2 JSON files.
type snapshot struct {
	Data []struct {
		ID    int    `json:"Id"`
		Name  string `json:"Name"`
		Files []struct {
			// Misspelled upstream.
			Version  string `json:"GameVesion"`
			FileID   int    `json:"ProjectFileID"`
			FileName string `json:"ProjectFileName"`
			FileType int    `json:"FileType"`
		} `json:"GameVersionLatestFiles"`
	} `json:"data"`
}

// Store is the local project catalog. It is loaded from cache.json,
// rebuilt from feed snapshots and persisted back explicitly.
type Store struct {
	Files billy.Filesystem

	projects map[int]Project
}

func NewStore(fs billy.Filesystem) *Store {
	return &Store{Files: fs, projects: map[int]Project{}}
}

// Load reads cache.json. A missing cache leaves the store empty.
func (s *Store) Load() error {
	projects := map[int]Project{}
	err := withFile(s.Files, CacheFile, func(f billy.File) error {
		return json.NewDecoder(f).Decode(&projects)
	})
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %q: %w", CacheFile, err)
	}
	s.projects = projects
	return nil
}

// Persist writes the catalog to cache.json.
func (s *Store) Persist() error {
	return writeFile(s.Files, CacheFile, func(w io.Writer) error {
		return json.NewEncoder(w).Encode(s.projects)
	})
}

// Rebuild replaces the catalog with the contents of the named snapshot.
func (s *Store) Rebuild(name string) error {
	log.Printf("rebuilding catalog from %q", name)
	projects := map[int]Project{}
	if err := s.readSnapshot(name, projects); err != nil {
		return err
	}
	s.projects = projects
	return nil
}

// Apply merges the projects of the named snapshot into the catalog.
func (s *Store) Apply(name string) error {
	log.Printf("applying %q", name)
	if s.projects == nil {
		s.projects = map[int]Project{}
	}
	return s.readSnapshot(name, s.projects)
}

func (s *Store) readSnapshot(name string, projects map[int]Project) error {
	var snap snapshot
	err := withFile(s.Files, name, func(f billy.File) error {
		return json.NewDecoder(bzip2.NewReader(f)).Decode(&snap)
	})
	if err != nil {
		return fmt.Errorf("read snapshot %q: %w", name, err)
	}
	for _, item := range snap.Data {
		p := Project{
			Title:    item.Name,
			Download: make([]models.File, 0, len(item.Files)),
		}
		for _, f := range item.Files {
			p.Download = append(p.Download, models.File{
				ID:      f.FileID,
				Name:    f.FileName,
				Type:    models.ReleaseTypeFromCode(f.FileType),
				Version: f.Version,
			})
		}
		projects[item.ID] = p
	}
	return nil
}

// Refresh brings the local snapshots up to date with the feed and
// rebuilds the catalog when they changed. A snapshot's timestamp is
// committed only after it was read successfully, so a broken download
// is fetched again on the next run. Feed failures are logged and the
// catalog keeps its current contents. It reports whether the catalog
// changed.
func (s *Store) Refresh(ctx context.Context, feed *Feed) (bool, error) {
	completeTS, complete := s.refreshFile(ctx, feed, CompleteFile)
	hourlyTS, hourly := s.refreshFile(ctx, feed, HourlyFile)

	changed := false
	if complete {
		if err := s.Rebuild(CompleteFile); err != nil {
			log.Printf("rebuild catalog: %+v", err)
		} else {
			changed = true
			commit(feed, CompleteFile, completeTS)
			// Deltas published after the snapshot are still missing.
			if !hourly && exists(s.Files, HourlyFile) &&
				feed.Local(HourlyFile) > feed.Local(CompleteFile) {
				hourly = true
			}
		}
	}
	if hourly {
		if err := s.Apply(HourlyFile); err != nil {
			log.Printf("apply %q: %+v", HourlyFile, err)
		} else {
			changed = true
			commit(feed, HourlyFile, hourlyTS)
		}
	}
	if !changed {
		return false, nil
	}
	return true, s.Persist()
}

// refreshFile reports whether name has to be read into the catalog and
// the feed timestamp to commit afterwards, zero if there is none.
func (s *Store) refreshFile(ctx context.Context, feed *Feed, name string) (int64, bool) {
	ts, err := feed.Refresh(ctx, name)
	if err != nil {
		log.Printf("refresh %q: %+v", name, err)
	}
	if ts > 0 {
		return ts, true
	}
	// An empty catalog next to a downloaded snapshot means the
	// previous rebuild did not finish.
	return 0, len(s.projects) == 0 && exists(s.Files, name)
}

func commit(feed *Feed, name string, ts int64) {
	if ts == 0 {
		return
	}
	if err := feed.Commit(name, ts); err != nil {
		log.Printf("commit %q: %+v", name, err)
	}
}

// Project returns the catalog entry of id.
func (s *Store) Project(id int) (Project, bool) {
	p, ok := s.projects[id]
	return p, ok
}

func (s *Store) Len() int {
	return len(s.projects)
}

// CatalogSource reads files from a Store.
type CatalogSource struct {
	Store *Store
}

func (c *CatalogSource) Files(ctx context.Context, version string, projectID int, slug string) Result {
	p, ok := c.Store.Project(projectID)
	if !ok {
		return failed(version, fmt.Errorf("project %d: %w", projectID, models.ErrProjectNotCached))
	}
	var files []models.File
	for _, f := range p.Download {
		if f.Version == version {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].ID > files[j].ID
	})
	return found(version, files)
}

package update

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/modupdater/catalog"
	"github.com/tie/modupdater/manifest/jsonspec"
	"github.com/tie/modupdater/models"
)

type lookup struct {
	version   string
	projectID int
	slug      string
}

// fakeSource serves file lists keyed by project and version.
type fakeSource struct {
	files   map[int]map[string][]models.File
	fail    map[int]error
	lookups []lookup
}

func (s *fakeSource) Files(ctx context.Context, version string, projectID int, slug string) catalog.Result {
	s.lookups = append(s.lookups, lookup{version, projectID, slug})
	if err, ok := s.fail[projectID]; ok {
		return catalog.Result{Status: catalog.Failed, Version: version, Err: err}
	}
	files := s.files[projectID][version]
	if len(files) == 0 {
		return catalog.Result{Status: catalog.Empty, Version: version}
	}
	return catalog.Result{Status: catalog.Found, Version: version, Files: files}
}

type fakeSlugs map[int]string

func (s fakeSlugs) ProjectSlug(ctx context.Context, projectID int) (string, error) {
	slug, ok := s[projectID]
	if !ok {
		return "", models.ErrSlugNotFound
	}
	return slug, nil
}

func newManifest(version string, files ...jsonspec.File) *jsonspec.Manifest {
	return &jsonspec.Manifest{
		Minecraft: jsonspec.MinecraftInstance{Version: version},
		Files:     files,
	}
}

func newUpdater(src catalog.Source, buf *bytes.Buffer) *Updater {
	return &Updater{
		Source:  src,
		Slugs:   fakeSlugs{42: "sky", 7: "old"},
		Aliases: DefaultAliases,
		Quota:   DefaultQuota,
		Policy:  StrictGreater,
		Logger:  log.New(buf, "", 0),
	}
}

var skyFiles = []models.File{
	{ID: 150, Name: "sky-1.5.jar", Type: models.Release, Version: "1.10.2"},
	{ID: 120, Name: "sky-1.2.jar", Type: models.Release, Version: "1.10.2"},
	{ID: 100, Name: "sky-1.0.jar", Type: models.Release, Version: "1.10.2"},
}

func TestRunSelectsNewest(t *testing.T) {
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10.2": skyFiles}}}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)
	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 100, Required: true})

	rep := u.Run(context.Background(), m, nil)

	assert.Equal(t, 150, m.Files[0].FileID)
	assert.Equal(t, 1, rep.Updated)
	assert.Equal(t, Updated, rep.Outcomes[42])
	assert.Equal(t, []Change{{ProjectID: 42, OldFileID: 100, NewFileID: 150, Version: "1.10.2", Name: "sky-1.5.jar"}}, rep.Changes)
	assert.Equal(t, []lookup{{"1.10.2", 42, "sky"}}, src.lookups)
	assert.Contains(t, buf.String(), "current file version is sky-1.0.jar")
	assert.Contains(t, buf.String(), "found new version: sky-1.5.jar")
}

func TestRunAlreadyUpToDate(t *testing.T) {
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10.2": skyFiles}}}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)
	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 150, Required: true})

	rep := u.Run(context.Background(), m, nil)

	assert.Equal(t, 150, m.Files[0].FileID)
	assert.Equal(t, 1, rep.Current)
	assert.Empty(t, rep.Changes)
	assert.Contains(t, buf.String(), "already up to date")

	// Running again after an update is a fixed point.
	m.Files[0].FileID = 100
	u.Run(context.Background(), m, nil)
	rep = u.Run(context.Background(), m, nil)
	assert.Equal(t, 150, m.Files[0].FileID)
	assert.Equal(t, 1, rep.Current)
}

func TestRunFrozen(t *testing.T) {
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10.2": skyFiles}}}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)
	u.Slugs = nil
	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 100, Required: true})

	rep := u.Run(context.Background(), m, map[int]bool{42: true})

	assert.Equal(t, 100, m.Files[0].FileID)
	assert.Equal(t, Frozen, rep.Outcomes[42])
	assert.Empty(t, src.lookups)
}

func TestResolveVersionFallback(t *testing.T) {
	older := []models.File{
		{ID: 90, Name: "sky-0.9.jar", Type: models.Release, Version: "1.10"},
		{ID: 80, Name: "sky-0.8.jar", Type: models.Release, Version: "1.10"},
	}
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10": older, "1.9.4": skyFiles}}}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)
	u.Aliases = Aliases{"1.10.2": {"1.10.2", "1.10.1", "1.10", "1.9.4"}}

	r := u.Resolve(context.Background(), "1.10.2", 42, "sky")
	assert.Equal(t, catalog.Found, r.Status)
	assert.Equal(t, "1.10", r.Version)
	assert.Equal(t, older, r.Files)
	assert.Equal(t, []lookup{{"1.10.2", 42, "sky"}, {"1.10.1", 42, "sky"}, {"1.10", 42, "sky"}}, src.lookups)

	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 80, Required: true})
	rep := u.Run(context.Background(), m, nil)
	assert.Equal(t, 90, m.Files[0].FileID)
	require.Len(t, rep.Changes, 1)
	assert.Equal(t, "1.10", rep.Changes[0].Version)
	assert.Contains(t, buf.String(), "using files for 1.10")
}

func TestResolveNoFiles(t *testing.T) {
	src := &fakeSource{}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)

	r := u.Resolve(context.Background(), "1.10", 42, "sky")
	assert.Equal(t, catalog.Empty, r.Status)
	assert.Len(t, src.lookups, 2)

	m := newManifest("1.10", jsonspec.File{ProjectID: 42, FileID: 5})
	rep := u.Run(context.Background(), m, nil)
	assert.Equal(t, 5, m.Files[0].FileID)
	assert.Equal(t, Unresolved, rep.Outcomes[42])
	assert.Contains(t, buf.String(), "no files found")
}

func TestResolveFailureStopsSearch(t *testing.T) {
	src := &fakeSource{fail: map[int]error{42: models.ErrMalformedData}}
	u := newUpdater(src, &bytes.Buffer{})

	r := u.Resolve(context.Background(), "1.10.2", 42, "sky")
	assert.Equal(t, catalog.Failed, r.Status)
	assert.Len(t, src.lookups, 1)
}

func TestRunContinuesAfterFailures(t *testing.T) {
	src := &fakeSource{
		files: map[int]map[string][]models.File{42: {"1.10.2": skyFiles}},
		fail:  map[int]error{7: models.ErrMalformedData},
	}
	var buf bytes.Buffer
	u := newUpdater(src, &buf)
	m := newManifest("1.10.2",
		jsonspec.File{ProjectID: 7, FileID: 3, Required: true},
		jsonspec.File{ProjectID: 99, FileID: 4, Required: true},
		jsonspec.File{ProjectID: 42, FileID: 100, Required: true},
	)

	rep := u.Run(context.Background(), m, nil)

	require.Len(t, m.Files, 3)
	assert.Equal(t, []int{7, 99, 42}, []int{m.Files[0].ProjectID, m.Files[1].ProjectID, m.Files[2].ProjectID})
	assert.Equal(t, 3, m.Files[0].FileID)
	assert.Equal(t, 4, m.Files[1].FileID)
	assert.Equal(t, 150, m.Files[2].FileID)
	assert.Equal(t, 2, rep.Unresolved)
	assert.Equal(t, 1, rep.Updated)
	assert.Contains(t, buf.String(), "get name for project 99")
}

func TestRunKeepStability(t *testing.T) {
	files := []models.File{
		{ID: 150, Name: "sky-1.5-beta.jar", Type: models.Beta},
		{ID: 120, Name: "sky-1.2.jar", Type: models.Release},
		{ID: 100, Name: "sky-1.0.jar", Type: models.Release},
	}
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10.2": files}}}

	u := newUpdater(src, &bytes.Buffer{})
	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 100})
	u.Run(context.Background(), m, nil)
	assert.Equal(t, 150, m.Files[0].FileID)

	u.KeepStability = true
	m = newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 100})
	u.Run(context.Background(), m, nil)
	assert.Equal(t, 120, m.Files[0].FileID)

	// Unpinned entries accept any tier.
	m = newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 0})
	u.Run(context.Background(), m, nil)
	assert.Equal(t, 150, m.Files[0].FileID)
}

func TestRunNotEqualPolicy(t *testing.T) {
	files := []models.File{
		{ID: 160, Name: "sky-1.6-alpha.jar", Type: models.Alpha},
		{ID: 150, Name: "sky-1.5.jar", Type: models.Release},
	}
	src := &fakeSource{files: map[int]map[string][]models.File{42: {"1.10.2": files}}}
	u := newUpdater(src, &bytes.Buffer{})
	u.Quota = Quota{Release: 2}

	m := newManifest("1.10.2", jsonspec.File{ProjectID: 42, FileID: 160})
	u.Run(context.Background(), m, nil)
	assert.Equal(t, 160, m.Files[0].FileID)

	u.Policy = NotEqual
	u.Run(context.Background(), m, nil)
	assert.Equal(t, 150, m.Files[0].FileID)
}

package update

import "github.com/tie/modupdater/models"

// FileName returns the display name of the file with the given ID.
func FileName(id int, files []models.File) string {
	if f, ok := findFile(id, files); ok {
		return f.Name
	}
	return "N/A"
}

func findFile(id int, files []models.File) (models.File, bool) {
	for _, f := range files {
		if f.ID == id {
			return f, true
		}
	}
	return models.File{}, false
}

// AtLeastAsStable drops files less stable than t, keeping order.
func AtLeastAsStable(files []models.File, t models.ReleaseType) []models.File {
	var kept []models.File
	for _, f := range files {
		if f.Type.Stability() >= t.Stability() {
			kept = append(kept, f)
		}
	}
	return kept
}

// UpToDate reports whether id is the newest file in the list. With
// ignoreLessStable only files at least as stable as t are considered,
// so a release is up to date even when newer betas exist.
func UpToDate(id int, t models.ReleaseType, files []models.File, ignoreLessStable bool) bool {
	if ignoreLessStable && t != models.Unknown {
		files = AtLeastAsStable(files, t)
	}
	for _, f := range files {
		if f.Type == models.Unknown {
			continue
		}
		return f.ID == id
	}
	return false
}

package models

import "strings"

// ReleaseType is the stability tier of a published file.
type ReleaseType string

const (
	Release ReleaseType = "release"
	Beta    ReleaseType = "beta"
	Alpha   ReleaseType = "alpha"
	Unknown ReleaseType = "unknown"
)

// catalogTypes maps the numeric FileType of catalog snapshots.
var catalogTypes = [...]ReleaseType{Unknown, Release, Beta, Alpha}

// ParseReleaseType returns the tier named by s. Any name other than
// release, beta or alpha is Unknown.
func ParseReleaseType(s string) ReleaseType {
	switch t := ReleaseType(strings.ToLower(strings.TrimSpace(s))); t {
	case Release, Beta, Alpha:
		return t
	}
	return Unknown
}

// ReleaseTypeFromCode converts catalog FileType codes.
func ReleaseTypeFromCode(code int) ReleaseType {
	if code < 0 || code >= len(catalogTypes) {
		return Unknown
	}
	return catalogTypes[code]
}

// Stability orders tiers so that release > beta > alpha > unknown.
func (t ReleaseType) Stability() int {
	switch t {
	case Release:
		return 3
	case Beta:
		return 2
	case Alpha:
		return 1
	}
	return 0
}

func (t ReleaseType) String() string {
	return string(t)
}

func (t *ReleaseType) UnmarshalText(b []byte) error {
	*t = ParseReleaseType(string(b))
	return nil
}

// File is one published build of a mod for a game version.
type File struct {
	// ID is issued by CurseForge in publish order,
	// so a higher ID means a later file.
	ID int `json:"id"`

	// Name is the display name of the file.
	Name string `json:"name"`

	// Type is the stability tier.
	Type ReleaseType `json:"type"`

	// Version is the game version the file targets.
	Version string `json:"version"`
}

// Widget is the per-project file listing keyed by game version.
type Widget struct {
	Title    string            `json:"title"`
	Versions map[string][]File `json:"versions"`
}

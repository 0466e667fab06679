package update

import (
	"fmt"

	"github.com/tie/modupdater/models"
)

// Policy decides which files count as newer than the pinned one.
// Both rules rely on files being ordered newest first.
type Policy int

const (
	// StrictGreater collects files with an ID greater than the pinned
	// one and stops at the first that is not.
	StrictGreater Policy = iota

	// NotEqual collects files with an ID different from the pinned one
	// and stops at the first that matches. It proposes a file even when
	// the pinned one is newest but was dropped by the quota filter.
	// Kept for reproducing old runs.
	NotEqual
)

var policyNames = map[Policy]string{
	StrictGreater: "strict-greater",
	NotEqual:      "not-equal",
}

// ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", models.ErrUnknownPolicy, name)
}

func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func (p Policy) newer(id, current int) bool {
	if p == NotEqual {
		return id != current
	}
	return id > current
}

// Newer returns the leading files that are newer than current.
func (p Policy) Newer(files []models.File, current int) []models.File {
	var newer []models.File
	for _, f := range files {
		if !p.newer(f.ID, current) {
			break
		}
		newer = append(newer, f)
	}
	return newer
}

// Select returns the newest file that is newer than current.
func (p Policy) Select(files []models.File, current int) (models.File, bool) {
	newer := p.Newer(files, current)
	if len(newer) == 0 {
		return models.File{}, false
	}
	return newer[0], true
}

package update

import "github.com/tie/modupdater/models"

// Quota limits how many files of each stability tier are considered.
type Quota struct {
	Release int
	Beta    int
	Alpha   int
}

// DefaultQuota keeps two releases, two betas and three alphas.
var DefaultQuota = Quota{Release: 2, Beta: 2, Alpha: 3}

// Filter returns the files that fit in the quota, in input order.
// Files of unknown type are dropped. Exhausting one tier does not stop
// the walk; later files of other tiers are still kept.
func (q Quota) Filter(files []models.File) []models.File {
	remaining := map[models.ReleaseType]int{
		models.Release: q.Release,
		models.Beta:    q.Beta,
		models.Alpha:   q.Alpha,
	}
	var filtered []models.File
	for _, f := range files {
		if remaining[f.Type] <= 0 {
			continue
		}
		remaining[f.Type]--
		filtered = append(filtered, f)
	}
	return filtered
}

// Max is the largest number of files Filter can return.
func (q Quota) Max() int {
	n := 0
	for _, v := range []int{q.Release, q.Beta, q.Alpha} {
		if v > 0 {
			n += v
		}
	}
	return n
}

package update

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/modupdater/models"
)

func TestStrictGreater(t *testing.T) {
	files := []models.File{
		file(150, models.Release),
		file(120, models.Release),
		file(100, models.Release),
		file(90, models.Beta),
	}

	assert.Equal(t, []int{150, 120}, ids(StrictGreater.Newer(files, 100)))

	f, ok := StrictGreater.Select(files, 100)
	require.True(t, ok)
	assert.Equal(t, 150, f.ID)

	_, ok = StrictGreater.Select(files, 150)
	assert.False(t, ok)

	f, ok = StrictGreater.Select(files, 0)
	require.True(t, ok)
	assert.Equal(t, 150, f.ID)

	_, ok = StrictGreater.Select(nil, 0)
	assert.False(t, ok)
}

func TestStrictGreaterStopsAtFirstOlder(t *testing.T) {
	// Out of order input: the scan stops at 90 and never sees 200.
	files := []models.File{file(150, models.Release), file(90, models.Release), file(200, models.Release)}
	assert.Equal(t, []int{150}, ids(StrictGreater.Newer(files, 100)))
}

func TestStrictGreaterProperties(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		files := randomFiles(r, r.Intn(20))
		current := r.Intn(10000)

		best := -1
		for _, f := range files {
			if f.ID > current && f.ID > best {
				best = f.ID
			}
		}

		f, ok := StrictGreater.Select(files, current)
		if best < 0 {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
		require.Equal(t, best, f.ID)

		// Selecting again from the new pin finds nothing.
		_, ok = StrictGreater.Select(files, f.ID)
		require.False(t, ok)
	}
}

func TestNotEqual(t *testing.T) {
	files := []models.File{
		file(150, models.Release),
		file(120, models.Release),
		file(100, models.Release),
	}
	f, ok := NotEqual.Select(files, 100)
	require.True(t, ok)
	assert.Equal(t, 150, f.ID)

	_, ok = NotEqual.Select(files, 150)
	assert.False(t, ok)
}

func TestNotEqualDivergesWhenPinFiltered(t *testing.T) {
	// The pinned file 160 is an alpha dropped by the quota, and is
	// newer than everything left.
	files := []models.File{file(150, models.Release), file(120, models.Release)}

	_, ok := StrictGreater.Select(files, 160)
	assert.False(t, ok)

	f, ok := NotEqual.Select(files, 160)
	require.True(t, ok)
	assert.Equal(t, 150, f.ID)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("strict-greater")
	require.NoError(t, err)
	assert.Equal(t, StrictGreater, p)

	p, err = ParsePolicy("not-equal")
	require.NoError(t, err)
	assert.Equal(t, NotEqual, p)

	_, err = ParsePolicy("newest")
	assert.True(t, errors.Is(err, models.ErrUnknownPolicy))

	assert.Equal(t, "strict-greater", StrictGreater.String())
	assert.Equal(t, "Policy(7)", Policy(7).String())
}

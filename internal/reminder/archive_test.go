package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/models"
	"contestd/internal/testutil"
)

func archivedContest(id string) models.Contest {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return models.Contest{
		Platform:  models.PlatformCodeforces,
		NativeID:  id,
		Title:     "Round " + id,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}
}

func TestArchive_DisabledWhenNoDir(t *testing.T) {
	assert.Nil(t, NewArchive("", &testutil.MockCompressor{}, &testutil.MockLogger{}))
}

func TestArchive_ListIncludesUnflushed(t *testing.T) {
	a := NewArchive(t.TempDir(), newTestCompressor(t), &testutil.MockLogger{})
	a.Add(archivedContest("1"))

	contests, err := a.List(models.PlatformCodeforces)
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, "1", contests[0].NativeID)
}

func TestArchive_FlushAppendsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	comp := newTestCompressor(t)

	a := NewArchive(dir, comp, &testutil.MockLogger{})
	a.Add(archivedContest("1"))
	require.NoError(t, a.Flush())

	a2 := NewArchive(dir, comp, &testutil.MockLogger{})
	a2.Add(archivedContest("2"))
	require.NoError(t, a2.Flush())

	contests, err := a2.List(models.PlatformCodeforces)
	require.NoError(t, err)
	require.Len(t, contests, 2)
	assert.Equal(t, "1", contests[0].NativeID)
	assert.Equal(t, "2", contests[1].NativeID)
}

func TestArchive_PlatformsKeptSeparate(t *testing.T) {
	a := NewArchive(t.TempDir(), newTestCompressor(t), &testutil.MockLogger{})
	a.Add(archivedContest("1"))
	lg := archivedContest("9")
	lg.Platform = models.PlatformLuogu
	a.Add(lg)
	require.NoError(t, a.Flush())

	cf, err := a.List(models.PlatformCodeforces)
	require.NoError(t, err)
	assert.Len(t, cf, 1)

	luogu, err := a.List(models.PlatformLuogu)
	require.NoError(t, err)
	assert.Len(t, luogu, 1)
}

func TestArchive_ListEmptyPlatform(t *testing.T) {
	a := NewArchive(t.TempDir(), newTestCompressor(t), &testutil.MockLogger{})
	contests, err := a.List(models.PlatformScpc)
	require.NoError(t, err)
	assert.Empty(t, contests)
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points every per-user directory at a temp dir.
func isolateHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)
}

func TestGDataStoreRoundTrip(t *testing.T) {
	isolateHome(t)

	g, err := OpenGData("colorswitch-test")
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.Reset())

	high, err := g.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	require.NoError(t, g.SetRecentScore(4))
	require.NoError(t, g.SetHighScore(11))

	recent, err := g.RecentScore()
	require.NoError(t, err)
	assert.Equal(t, 4, recent)

	high, err = g.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 11, high)
}

func TestGDataStoreRuns(t *testing.T) {
	isolateHome(t)

	g, err := OpenGData("colorswitch-test")
	require.NoError(t, err)
	require.NoError(t, g.Reset())

	for _, s := range []int{1, 2, 3} {
		require.NoError(t, g.RecordRun(s))
	}
	runs, err := g.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].Score)
	assert.Equal(t, 2, runs[1].Score)

	stats, err := g.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Runs: 3, Best: 3, Average: 2}, stats)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	require.NoError(t, m.SetRecentScore(3))
	require.NoError(t, m.SetHighScore(8))
	require.NoError(t, m.RecordRun(3))
	require.NoError(t, m.RecordRun(8))

	recent, _ := m.RecentScore()
	high, _ := m.HighScore()
	assert.Equal(t, 3, recent)
	assert.Equal(t, 8, high)

	runs, _ := m.RecentRuns(0)
	require.Len(t, runs, 2)
	assert.Equal(t, 8, runs[0].Score)

	require.NoError(t, m.Reset())
	high, _ = m.HighScore()
	runs, _ = m.RecentRuns(10)
	assert.Zero(t, high)
	assert.Empty(t, runs)
}

func TestOpenBackend(t *testing.T) {
	b, err := OpenBackend(KindMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, b)

	b, err = OpenBackend(KindSQLite, t.TempDir()+"/scores.db")
	require.NoError(t, err)
	assert.IsType(t, &Store{}, b)
	require.NoError(t, b.Close())

	_, err = OpenBackend("redis", "")
	assert.Error(t, err)
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreEmptyFieldsReadZero(t *testing.T) {
	store := openTestStore(t)

	recent, err := store.RecentScore()
	if err != nil || recent != 0 {
		t.Errorf("RecentScore() = %d, %v; expected 0, nil", recent, err)
	}
	high, err := store.HighScore()
	if err != nil || high != 0 {
		t.Errorf("HighScore() = %d, %v; expected 0, nil", high, err)
	}
}

func TestStoreRoundTripsBothKeys(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetRecentScore(3); err != nil {
		t.Fatalf("SetRecentScore() failed: %v", err)
	}
	if err := store.SetHighScore(7); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	// Overwrite, not append.
	if err := store.SetRecentScore(5); err != nil {
		t.Fatalf("SetRecentScore() failed: %v", err)
	}

	if got, _ := store.RecentScore(); got != 5 {
		t.Errorf("RecentScore() = %d, expected 5", got)
	}
	if got, _ := store.HighScore(); got != 7 {
		t.Errorf("HighScore() = %d, expected 7", got)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetHighScore(42); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if got, _ := store.HighScore(); got != 42 {
		t.Errorf("HighScore() after reopen = %d, expected 42", got)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{4, 9, 1} {
		if err := store.RecordRun(score); err != nil {
			t.Fatalf("RecordRun(%d) failed: %v", score, err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].Score != 1 || runs[1].Score != 9 {
		t.Errorf("runs = %+v, expected scores [1 9]", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Best != 9 {
		t.Errorf("Stats() = %+v, expected 3 runs best 9", stats)
	}
	if stats.Average < 4.66 || stats.Average > 4.67 {
		t.Errorf("Average = %f, expected ~4.67", stats.Average)
	}
}

func TestStoreReset(t *testing.T) {
	store := openTestStore(t)
	_ = store.SetHighScore(10)
	_ = store.SetRecentScore(2)
	_ = store.RecordRun(2)

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	high, _ := store.HighScore()
	recent, _ := store.RecentScore()
	runs, _ := store.RecentRuns(10)
	if high != 0 || recent != 0 || len(runs) != 0 {
		t.Errorf("after Reset: high=%d recent=%d runs=%d", high, recent, len(runs))
	}
}

func TestSessionPersistsThroughStore(t *testing.T) {
	store := openTestStore(t)
	_ = store.SetHighScore(2)

	s := colorswitch.NewSession(store, nil, fixedColors{})
	s.Initialize()
	s.OnBallReachesSwitch(colorswitch.Red) // match, score 1
	s.OnBallReachesSwitch(colorswitch.Blue)

	if s.Phase() != colorswitch.PhaseEnded {
		t.Fatalf("phase = %v, expected ended", s.Phase())
	}
	if got, _ := store.RecentScore(); got != 1 {
		t.Errorf("RecentScore = %d, expected 1", got)
	}
	if got, _ := store.HighScore(); got != 2 {
		t.Errorf("HighScore = %d, expected unchanged 2", got)
	}
}

// fixedColors always spawns red balls.
type fixedColors struct{}

func (fixedColors) Intn(int) int { return 0 }

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.colorswitch/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".colorswitch", "scores.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}
	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

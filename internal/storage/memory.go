package storage

import (
	"time"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// MemoryStore keeps scores in process memory.
// Used by tests and as the fallback when no on-disk backend can be opened.
type MemoryStore struct {
	values map[string]int
	runs   []Run
}

var _ Backend = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

func (m *MemoryStore) RecentScore() (int, error) { return m.values[colorswitch.KeyRecentScore], nil }

func (m *MemoryStore) SetRecentScore(score int) error {
	m.values[colorswitch.KeyRecentScore] = score
	return nil
}

func (m *MemoryStore) HighScore() (int, error) { return m.values[colorswitch.KeyHighScore], nil }

func (m *MemoryStore) SetHighScore(score int) error {
	m.values[colorswitch.KeyHighScore] = score
	return nil
}

func (m *MemoryStore) RecordRun(score int) error {
	m.runs = append(m.runs, Run{ID: int64(len(m.runs) + 1), Score: score, CreatedAt: time.Now()})
	return nil
}

func (m *MemoryStore) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Run
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *MemoryStore) Stats() (Stats, error) {
	scores := make([]int, len(m.runs))
	for i, r := range m.runs {
		scores[i] = r.Score
	}
	return statsOf(scores), nil
}

func (m *MemoryStore) Reset() error {
	clear(m.values)
	m.runs = nil
	return nil
}

func (m *MemoryStore) Close() error { return nil }

package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// AppName is the gdata application directory.
const AppName = "colorswitch"

const (
	runsItem   = "runs"
	maxGDRuns  = 100
	emptyValue = ""
)

// GDataStore keeps each score field as a decimal item in the platform's
// per-user data directory. Runs are stored as one JSON item.
type GDataStore struct {
	m *gdata.Manager
}

var _ Backend = (*GDataStore)(nil)

// OpenGData opens (or creates) the data directory for appName.
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata: %w", err)
	}
	return &GDataStore{m: m}, nil
}

func (g *GDataStore) RecentScore() (int, error) { return g.get(colorswitch.KeyRecentScore) }

func (g *GDataStore) SetRecentScore(score int) error {
	return g.set(colorswitch.KeyRecentScore, score)
}

func (g *GDataStore) HighScore() (int, error) { return g.get(colorswitch.KeyHighScore) }

func (g *GDataStore) SetHighScore(score int) error {
	return g.set(colorswitch.KeyHighScore, score)
}

func (g *GDataStore) get(key string) (int, error) {
	data, err := g.m.LoadItem(key)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	s := strings.TrimSpace(string(data))
	if s == emptyValue {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt %s item: %w", key, err)
	}
	return v, nil
}

func (g *GDataStore) set(key string, value int) error {
	if err := g.m.SaveItem(key, []byte(strconv.Itoa(value))); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

type gdataRun struct {
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

func (g *GDataStore) loadRuns() ([]gdataRun, error) {
	data, err := g.m.LoadItem(runsItem)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read runs: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var runs []gdataRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("storage: corrupt runs item: %w", err)
	}
	return runs, nil
}

// RecordRun appends a run, keeping the newest entries only.
func (g *GDataStore) RecordRun(score int) error {
	runs, err := g.loadRuns()
	if err != nil {
		return err
	}
	runs = append(runs, gdataRun{Score: score, At: time.Now().UTC()})
	if len(runs) > maxGDRuns {
		runs = runs[len(runs)-maxGDRuns:]
	}
	data, err := json.Marshal(runs)
	if err != nil {
		return fmt.Errorf("storage: cannot encode runs: %w", err)
	}
	if err := g.m.SaveItem(runsItem, data); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first. IDs are 1-based positions.
func (g *GDataStore) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	runs, err := g.loadRuns()
	if err != nil {
		return nil, err
	}
	var out []Run
	for i := len(runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, Run{ID: int64(i + 1), Score: runs[i].Score, CreatedAt: runs[i].At})
	}
	return out, nil
}

func (g *GDataStore) Stats() (Stats, error) {
	runs, err := g.loadRuns()
	if err != nil {
		return Stats{}, err
	}
	scores := make([]int, len(runs))
	for i, r := range runs {
		scores[i] = r.Score
	}
	return statsOf(scores), nil
}

// Reset blanks every item.
func (g *GDataStore) Reset() error {
	for _, key := range []string{colorswitch.KeyRecentScore, colorswitch.KeyHighScore, runsItem} {
		if err := g.m.SaveItem(key, nil); err != nil {
			return fmt.Errorf("storage: cannot reset %s: %w", key, err)
		}
	}
	return nil
}

// Close is a no-op; gdata writes items immediately.
func (g *GDataStore) Close() error { return nil }

func statsOf(scores []int) Stats {
	st := Stats{Runs: len(scores)}
	if len(scores) == 0 {
		return st
	}
	total := 0
	for _, s := range scores {
		total += s
		st.Best = max(st.Best, s)
	}
	st.Average = float64(total) / float64(len(scores))
	return st
}

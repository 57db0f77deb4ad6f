package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/colorswitch/internal/colorswitch"
)

// Run is one finished session in the history.
type Run struct {
	ID        int64
	Score     int
	CreatedAt time.Time
}

// Stats summarizes the run history.
type Stats struct {
	Runs    int
	Best    int
	Average float64
}

// Backend is a ScoreStore that also keeps a run history.
type Backend interface {
	colorswitch.ScoreStore
	RecordRun(score int) error
	RecentRuns(limit int) ([]Run, error)
	Stats() (Stats, error)
	Reset() error
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindGData  Kind = "gdata"
	KindMemory Kind = "memory"
)

// OpenBackend opens the backend of the given kind. dbPath is only used by sqlite.
func OpenBackend(kind Kind, dbPath string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return Open(dbPath)
	case KindGData:
		return OpenGData(AppName)
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}

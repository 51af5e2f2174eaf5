package queue

import (
	"time"

	"podmill/internal/episode"
)

// Item represents one prompt's processing record persisted in SQLite.
// The filesystem pending/done directories remain the source of truth
// for what still needs processing; the ledger exists for observability
// and history.
type Item struct {
	ID           int64
	PromptPath   string
	EpisodeName  string
	Status       episode.Stage
	ErrorMessage string
	FinalFile    string
	SegmentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HealthSummary describes aggregated ledger counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Completed  int
}

// DatabaseHealth captures diagnostic information about the ledger database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TotalItems       int
	Error            string
}

// IsProcessing reports whether the item reflects an in-flight episode.
func (i Item) IsProcessing() bool {
	return i.Status.IsProcessing()
}

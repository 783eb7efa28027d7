package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ExportRun describes one scrape written to a SQLite report.
type ExportRun struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Brand      string     `json:"brand" db:"brand"`
	Pages      int        `json:"pages" db:"pages"`
	StartedAt  time.Time  `json:"started_at" db:"started_at"`
	FinishedAt *time.Time `json:"finished_at" db:"finished_at"`
	Status     RunStatus  `json:"status" db:"status"`
	Records    int        `json:"records" db:"records"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type Outcome string

const (
	OutcomeResolved Outcome = "RESOLVED"
	OutcomeFailed   Outcome = "FAILED"
	OutcomeSkipped  Outcome = "SKIPPED"
)

// ResolutionRecord is an audit row written after each resolution attempt.
// It records what was decided and how it went; it is not conflict state and
// is never read back into a session.
type ResolutionRecord struct {
	gorm.Model
	ConflictID int64      `gorm:"not null" json:"conflict_id"`
	Workspace  string     `gorm:"not null" json:"workspace"`
	Path       string     `json:"path"`
	Resolution Resolution `json:"resolution"`
	Outcome    Outcome    `gorm:"not null" json:"outcome"`
	ErrMsg     string     `json:"err_msg,omitempty"`
	ResolvedAt time.Time  `gorm:"not null" json:"resolved_at"`
}

package history

import (
	"strings"
	"time"
)

// Run is one recorded synthesis pass.
type Run struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	RunID     string    `gorm:"column:run_id;size:36;uniqueIndex" json:"run_id"`
	Profile   string    `gorm:"column:profile;size:255;index:idx_runs_profile_created" json:"profile"`
	Modules   int       `gorm:"column:modules" json:"modules"`
	Skipped   int       `gorm:"column:skipped" json:"skipped"`
	Failures  int       `gorm:"column:failures" json:"failures"`
	Digest    string    `gorm:"column:digest;size:64" json:"digest"`
	Failed    string    `gorm:"column:failed;type:text" json:"failed,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_runs_profile_created" json:"created_at"`
}

// TableName overrides the table name used by Run.
func (Run) TableName() string {
	return "synthesis_runs"
}

// FailedArchives returns the archives listed in Failed.
func (r Run) FailedArchives() []string {
	if r.Failed == "" {
		return nil
	}
	return strings.Split(r.Failed, ",")
}

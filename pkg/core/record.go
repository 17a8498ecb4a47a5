package core

import "time"

// RecordStatus is the outcome of a recorded invocation.
type RecordStatus string

const (
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
	RecordRejected  RecordStatus = "rejected" // validation refused the arguments
)

// Record is the audit entry written for one invocation.
type Record struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Name         string       `gorm:"index;size:255;not null" json:"name"`
	Status       RecordStatus `gorm:"index;size:20;not null" json:"status"`
	ArgCount     int          `gorm:"default:0" json:"arg_count"`
	StartedAt    time.Time    `gorm:"index" json:"started_at"`
	CompletedAt  time.Time    `gorm:"index" json:"completed_at"`
	ElapsedNanos int64        `gorm:"default:0" json:"elapsed_nanos"`
	Error        string       `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the table name used by GORM.
func (Record) TableName() string {
	return "invocation_records"
}

// Elapsed returns the recorded duration.
func (r *Record) Elapsed() time.Duration {
	return time.Duration(r.ElapsedNanos)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job is the ephemeral record of one dispatched tailoring request.
type Job struct {
	ID                 uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	IncludeCoverLetter bool      `json:"include_cover_letter"`
	JobTextLength      int       `json:"job_text_length"`
	Status             JobStatus `gorm:"not null;default:'queued'" json:"status"`
	Files              string    `gorm:"type:text" json:"files,omitempty"`
	ErrorMessage       *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

package model

import (
	"time"
)

// AssessmentDetail binds one sub-aspect to an error count within one
// assessment. At most one row exists per (assessment, sub-aspect) pair;
// the write path guarantees this by replacing the whole set on every update.
type AssessmentDetail struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	AssessmentID uint      `json:"assessment_id" gorm:"not null;index"`
	SubAspectID  uint      `json:"sub_aspect_id" gorm:"not null;index"`
	ErrorCount   int       `json:"error_count" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

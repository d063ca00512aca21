package model

import (
	"time"
)

const (
	// StatusPending is the header status between insertion and the first
	// scoring pass inside the same transaction.
	StatusPending = "PENDING"
	// StatusLanjut means the chapter passed and work continues.
	StatusLanjut = "LANJUT"
	// StatusUlang means the chapter must be redone.
	StatusUlang = "ULANG"
)

// Assessment is one grading of a chapter. Status, TotalScore and Predicate
// are derived from the detail set by the scoring engine on every write; they
// are never accepted from a client.
type Assessment struct {
	ID             uint               `gorm:"primarykey" json:"id"`
	ChapterID      uint               `json:"chapter_id" gorm:"not null;index"`
	Chapter        Chapter            `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
	AssessmentDate time.Time          `json:"assessment_date" gorm:"not null;index"`
	AssessorName   string             `json:"assessor_name" gorm:"not null"`
	Notes          *string            `json:"notes,omitempty"`
	Status         string             `json:"status" gorm:"default:'PENDING'"`
	TotalScore     *int               `json:"total_score,omitempty"`
	Predicate      *string            `json:"predicate,omitempty"`
	Details        []AssessmentDetail `json:"details,omitempty" gorm:"foreignKey:AssessmentID"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

package model

import (
	"time"
)

// Chapter is the subject being graded by an assessment.
type Chapter struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProjectName string    `json:"project_name" gorm:"not null"`
	No          int       `json:"no" gorm:"not null"`
	Name        string    `json:"chapter_name" gorm:"column:chapter_name;not null"`
	Weight      float64   `json:"weight" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

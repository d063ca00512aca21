package model

import (
	"time"
)

// SubAspect is the only rubric level an assessment detail may reference.
type SubAspect struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	AspectID  uint      `json:"aspect_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

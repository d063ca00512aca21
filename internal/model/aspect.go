package model

import (
	"time"
)

type Aspect struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	ParameterID uint        `json:"parameter_id" gorm:"not null;index"`
	Name        string      `json:"name" gorm:"not null"`
	SubAspects  []SubAspect `json:"sub_aspects,omitempty" gorm:"foreignKey:AspectID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

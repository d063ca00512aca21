package model

import (
	"time"
)

// Parameter is the top level of the assessment rubric. A parameter owns
// aspects, which in turn own sub-aspects; only sub-aspects are referenced
// by assessment details.
type Parameter struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	Aspects   []Aspect  `json:"aspects,omitempty" gorm:"foreignKey:ParameterID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package model

// ScoreCategory is one predicate band of the score range. Bands are scanned
// in catalog order (ascending ID) and the first containing band wins, so an
// overlap resolves to the earliest-defined category.
type ScoreCategory struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name" gorm:"column:category_name;not null"`
	MinScore int    `json:"min_score" gorm:"not null"`
	MaxScore int    `json:"max_score" gorm:"not null"`
}

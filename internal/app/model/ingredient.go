package model

import (
	"strings"

	"gorm.io/gorm"
)

type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(200);not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
	SearchName      string `gorm:"type:varchar(200);not null;default:'';index" json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// SearchKey is the case-folded form used for prefix search. Folding happens here
// because SQLite's LOWER() only handles ASCII.
func SearchKey(s string) string {
	return strings.ToLower(s)
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	i.SearchName = SearchKey(i.Name)
	return nil
}

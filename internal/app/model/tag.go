package model

// Tag labels recipes (breakfast, lunch, ...). Color is a "#RRGGBB" hex code.
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(7);not null" json:"color"`
	Slug  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}

package models

import "time"

// Category represents listing/request categories
// DB: categories
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex:categories_name_key" json:"name"`
	SortOrder int       `gorm:"column:sort_order;not null;default:99" json:"sort_order"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

package models

import "time"

// Listing represents an item a user has put up for sale
// DB: listings
type Listing struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"column:user_id;not null;index:idx_listings_user" json:"user_id"`
	CategoryID  *uint      `gorm:"column:category_id;index:idx_listings_category" json:"category_id,omitempty"`
	Title       string     `gorm:"column:title;size:255;not null" json:"title"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Price       *int64     `gorm:"column:price" json:"price,omitempty"`
	Address     *string    `gorm:"column:address;type:text" json:"address,omitempty"`
	Lat         *float64   `gorm:"column:lat;type:double precision;index:idx_listings_lat" json:"lat,omitempty"`
	Lng         *float64   `gorm:"column:lng;type:double precision;index:idx_listings_lng" json:"lng,omitempty"`
	ImgURL      *string    `gorm:"column:img_url;type:text" json:"img_url,omitempty"`
	Status      string     `gorm:"column:status;size:20;not null;default:active;index:idx_listings_status" json:"status"`
	ExpiresAt   *time.Time `gorm:"column:expires_at;index:idx_listings_expires" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;index:idx_listings_created,sort:desc" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// StatusActive 검색 대상이 되는 유일한 상태값
const StatusActive = "active"

// Point returns the listing position; ok is false when lat/lng is not set
func (l *Listing) Point() (lat, lng float64, ok bool) {
	if l.Lat == nil || l.Lng == nil {
		return 0, 0, false
	}
	return *l.Lat, *l.Lng, true
}

package models

import "time"

// Request represents an open request: something a user is looking for
// DB: requests
type Request struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"column:user_id;not null;index:idx_requests_user" json:"user_id"`
	CategoryID  *uint      `gorm:"column:category_id;index:idx_requests_category" json:"category_id,omitempty"`
	Title       string     `gorm:"column:title;size:255;not null" json:"title"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Budget      *int64     `gorm:"column:budget" json:"budget,omitempty"`
	Address     *string    `gorm:"column:address;type:text" json:"address,omitempty"`
	Lat         *float64   `gorm:"column:lat;type:double precision;index:idx_requests_lat" json:"lat,omitempty"`
	Lng         *float64   `gorm:"column:lng;type:double precision;index:idx_requests_lng" json:"lng,omitempty"`
	Status      string     `gorm:"column:status;size:20;not null;default:active;index:idx_requests_status" json:"status"`
	ExpiresAt   *time.Time `gorm:"column:expires_at;index:idx_requests_expires" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;index:idx_requests_created,sort:desc" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

// Point returns the request position; ok is false when lat/lng is not set
func (r *Request) Point() (lat, lng float64, ok bool) {
	if r.Lat == nil || r.Lng == nil {
		return 0, 0, false
	}
	return *r.Lat, *r.Lng, true
}

package models

import "time"

// GeocodeCache represents geocoding cache rows written by the address
// enrichment path. Expired rows are swept by the batch runner.
type GeocodeCache struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"size:500;not null;uniqueIndex" json:"address"`
	Lat       float64   `gorm:"type:decimal(9,6);not null" json:"lat"`
	Lng       float64   `gorm:"type:decimal(9,6);not null" json:"lng"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index:idx_geocode_expires" json:"expires_at"`
}

func (GeocodeCache) TableName() string {
	return "geocode_cache"
}

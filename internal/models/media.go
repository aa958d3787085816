package models

import "time"

// MediaAsset represents an uploaded image attached to a listing.
// 원본 파일은 오브젝트 스토리지에 있고 여기는 참조만 보관한다.
// 리스팅이 삭제되면 참조가 고아가 되므로 배치 스위퍼가 정리한다.
// DB: media_assets
type MediaAsset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID *uint     `gorm:"column:listing_id;index:idx_media_listing" json:"listing_id,omitempty"`
	ObjectKey string    `gorm:"column:object_key;size:255;not null;uniqueIndex:media_assets_object_key_key" json:"object_key"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (MediaAsset) TableName() string {
	return "media_assets"
}

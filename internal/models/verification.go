package models

import "time"

// VerificationCode represents phone verification records.
// 만료된 코드는 배치 스위퍼가 삭제한다.
// DB: verification_codes
type VerificationCode struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Phone      string     `gorm:"column:phone;size:20;not null;index:idx_verifications_phone" json:"phone"`
	Code       string     `gorm:"column:code;size:10;not null" json:"-"`
	IsVerified bool       `gorm:"column:is_verified;not null" json:"is_verified"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null;index:idx_verifications_expires" json:"expires_at"`
	Attempts   int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastSentAt *time.Time `gorm:"column:last_sent_at" json:"last_sent_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null" json:"created_at"`
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}

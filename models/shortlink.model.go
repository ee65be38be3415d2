package models

import (
	"time"

	"gorm.io/gorm"
)

// ShortLink maps a short verification code to a long-lived document URL.
// Certificates embed the short URL in their QR code because the scannable
// code has a practical length budget.
type ShortLink struct {
	gorm.Model
	Code      string     `json:"code" gorm:"size:16;unique;not null"`
	TargetURL string     `json:"target_url" gorm:"type:text;not null"`
	ExpiresAt *time.Time `json:"expires_at"`
	Hits      int64      `json:"hits" gorm:"default:0"`
	IsDeleted bool       `gorm:"default:false"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type OTP struct {
	gorm.Model
	UserID      uint      `gorm:"not null" json:"user_id"`
	Email       string    `gorm:"size:100;index" json:"email,omitempty"`
	Phone       string    `gorm:"size:20;index" json:"phone,omitempty"` // WhatsApp number the code was delivered to
	Code        string    `gorm:"size:6;not null" json:"code"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	IsUsed      bool      `gorm:"default:false" json:"is_used"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	IsDeleted   bool      `gorm:"default:false"`
}

// PasswordReveal is a one-time-reveal credential token. The generated
// password is delivered over WhatsApp and shown at most once through the
// reveal endpoint; it is never persisted in plaintext.
type PasswordReveal struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"size:64;unique;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	IsDeleted bool      `gorm:"default:false"`
}

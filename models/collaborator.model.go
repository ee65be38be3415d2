package models

import (
	"time"

	"gorm.io/gorm"
)

// Collaborator request statuses
const (
	CollaboratorPending  = "PENDING"
	CollaboratorApproved = "APPROVED"
	CollaboratorRejected = "REJECTED"
)

// CollaboratorRequest is a unit staff member's registration awaiting
// approval by the unit's franchisee.
type CollaboratorRequest struct {
	gorm.Model
	UnitID     uint       `json:"unit_id" gorm:"index;not null"`
	Name       string     `json:"name" gorm:"not null"`
	Email      string     `json:"email" gorm:"index;not null"`
	Phone      string     `json:"phone"`
	Status     string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Reason     string     `json:"reason"` // rejection reason, if any
	IsDeleted  bool       `gorm:"default:false"`
}

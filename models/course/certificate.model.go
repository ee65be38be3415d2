package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued once per completed enrollment and is immutable
// afterwards except for the stored document URL. Uniqueness per enrollment
// is enforced by the issuance caller (existing-certificate check), not by
// the schema.
type Certificate struct {
	gorm.Model
	UserID               uint      `json:"user_id" gorm:"index;not null"`
	CourseID             uint      `json:"course_id" gorm:"index;not null"`
	TurmaID              *uint     `json:"turma_id" gorm:"index"`
	EnrollmentID         uint      `json:"enrollment_id" gorm:"index;not null"`
	CertificateNumber    string    `json:"certificate_number" gorm:"unique;not null"`
	DocumentURL          string    `json:"document_url"`
	ShortCode            string    `json:"short_code" gorm:"size:16"` // verification short-link code
	TotalDurationMinutes int       `json:"total_duration_minutes" gorm:"default:0"`
	Status               string    `json:"status" gorm:"default:'ISSUED'"`
	IssuedAt             time.Time `json:"issued_at"`
	IsDeleted            bool      `gorm:"default:false"`
}

package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
	EnrollmentCancelled  = "CANCELLED"
)

// Enrollment links one student to one course and, optionally, one turma.
// Student name/email/phone are denormalized because webhook admissions may
// arrive before the student has a full profile.
//
// The unique index on (student_email, course_id) closes the check-then-insert
// race window: a concurrent duplicate admission fails the insert and is
// re-read as an already-exists result.
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index"`
	CourseID         uint       `json:"course_id" gorm:"index:idx_student_course,unique;not null"`
	Course           Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	TurmaID          *uint      `json:"turma_id" gorm:"index"`
	StudentName      string     `json:"student_name"`
	StudentEmail     string     `json:"student_email" gorm:"index:idx_student_course,unique;not null"`
	StudentPhone     string     `json:"student_phone"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"`
	Progress         float64    `json:"progress" gorm:"default:0"` // 0-100, never decreased
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}

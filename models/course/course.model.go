package course

import "gorm.io/gorm"

// Course types and statuses
const (
	CourseTypeTurma   = "TURMA"   // live cohort-based
	CourseTypeGravado = "GRAVADO" // self-paced / recorded

	CourseActive   = "ACTIVE"
	CourseArchived = "ARCHIVED"
)

// Course represents a training program owning zero or more lessons.
type Course struct {
	gorm.Model
	Name         string `json:"name" gorm:"unique;not null"`
	Description  string `json:"description"`
	Type         string `json:"type" gorm:"default:'GRAVADO'"`  // TURMA, GRAVADO
	Status       string `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, ARCHIVED
	ThumbnailURL string `json:"thumbnail_url"`
	IsDeleted    bool   `gorm:"default:false"`
}

// Lesson is a single ordered unit of content within a course. Duration feeds
// the certificate's computed total workload.
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	VideoURL        string `json:"video_url"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}

// LessonCompletion records a student's attendance/completion of one lesson.
// Completions drive the enrollment progress recomputation.
type LessonCompletion struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	TurmaID   *uint  `json:"turma_id" gorm:"index"`
	Status    string `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted bool   `gorm:"default:false"`
}

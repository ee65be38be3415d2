package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Modules a professor permission row may reference.
const (
	ModuleCourses      = "courses"
	ModuleTurmas       = "turmas"
	ModuleLessons      = "lessons"
	ModuleQuizzes      = "quiz"
	ModuleCertificates = "certificates"
	ModuleStudents     = "students"
)

// ProfessorPermission grants a professor view/edit access to one module.
// Absence of a row means no access (fail closed). Admins bypass these rows
// entirely.
type ProfessorPermission struct {
	gorm.Model
	ProfessorID   uint              `json:"professor_id" gorm:"index:idx_prof_module,unique;not null"`
	Module        string            `json:"module" gorm:"index:idx_prof_module,unique;type:varchar(64);not null"`
	CanView       bool              `json:"can_view" gorm:"default:false"`
	CanEdit       bool              `json:"can_edit" gorm:"default:false"`
	EnabledFields datatypes.JSONMap `json:"enabled_fields"` // field name -> true when the professor may edit it
	IsDeleted     bool              `gorm:"default:false"`
}

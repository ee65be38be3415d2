package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "ADMIN"
	RoleProfessor  = "PROFESSOR"
	RoleAluno      = "ALUNO"
	RoleFranqueado = "FRANQUEADO" // student-type identity with unit management privileges
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Phone               string `gorm:"default:''"`
	Role                string `gorm:"default:'ALUNO'"` // ADMIN, PROFESSOR, ALUNO, FRANQUEADO
	Password            string `gorm:"not null"`
	UnitID              *uint  `json:"unit_id" gorm:"index"` // set for FRANQUEADO and unit collaborators
	IsActive            bool   `gorm:"default:true"`
	IsEmailVerified     bool   `gorm:"default:false"`
	IsPhoneVerified     bool   `gorm:"default:false"`
	City                string
	State               string
	CEP                 string
	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}

// IsProfessor reports whether the user is an active professor. Admin status
// is resolved separately (see middleware.IsAdmin) and always bypasses
// professor permission rows.
func (u *User) IsProfessor() bool {
	return u.Role == RoleProfessor && u.IsActive && !u.IsDeleted
}

// IsStudentType covers both regular students and franchisees, which enroll
// and consume courses the same way.
func (u *User) IsStudentType() bool {
	return u.Role == RoleAluno || u.Role == RoleFranqueado
}

package middleware

import (
	"testing"

	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/datatypes"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Name: "Test", Email: email, Role: role, Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	InvalidateAdminCache(user.ID)
	return user
}

func TestIsAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin@x.com", models.RoleAdmin)
	student := createUser(t, db, "aluno@x.com", models.RoleAluno)

	require.True(t, IsAdmin(db, admin.ID))
	require.False(t, IsAdmin(db, student.ID))
	require.False(t, IsAdmin(db, 99999))
}

func TestIsAdminCacheInvalidation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "promoted@x.com", models.RoleAluno)

	require.False(t, IsAdmin(db, user.ID))

	require.NoError(t, db.Model(&user).Update("role", models.RoleAdmin).Error)

	// Denials are not cached, so the promotion is visible immediately; the
	// explicit invalidation covers the cached-grant direction too.
	InvalidateAdminCache(user.ID)
	require.True(t, IsAdmin(db, user.ID))
}

func TestResolvePermissionAdminBypass(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin2@x.com", models.RoleAdmin)

	perm := ResolvePermission(db, admin.ID, models.ModuleCourses)
	require.True(t, perm.CanView)
	require.True(t, perm.CanEdit)
}

func TestResolvePermissionFailsClosed(t *testing.T) {
	db := newTestDB(t)
	professor := createUser(t, db, "prof@x.com", models.RoleProfessor)

	// No permission row: zero access.
	perm := ResolvePermission(db, professor.ID, models.ModuleCourses)
	require.False(t, perm.CanView)
	require.False(t, perm.CanEdit)
	require.Empty(t, perm.EnabledFields)
}

func TestResolvePermissionReadsRow(t *testing.T) {
	db := newTestDB(t)
	professor := createUser(t, db, "prof2@x.com", models.RoleProfessor)

	row := models.ProfessorPermission{
		ProfessorID: professor.ID,
		Module:      models.ModuleQuizzes,
		CanView:     true,
		CanEdit:     false,
		EnabledFields: datatypes.JSONMap{
			"title":       true,
			"description": false,
		},
	}
	require.NoError(t, db.Create(&row).Error)

	perm := ResolvePermission(db, professor.ID, models.ModuleQuizzes)
	require.True(t, perm.CanView)
	require.False(t, perm.CanEdit)
	require.True(t, perm.EnabledFields["title"])
	require.False(t, perm.EnabledFields["description"])

	// A row for one module grants nothing on another.
	other := ResolvePermission(db, professor.ID, models.ModuleCertificates)
	require.False(t, other.CanView)
}

package middleware

import (
	"log"
	"sync"
	"time"

	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ModulePermission is the resolved access a user holds on one module.
type ModulePermission struct {
	CanView       bool
	CanEdit       bool
	EnabledFields map[string]bool
}

// adminCacheTTL bounds how stale a cached admin check may be. Admin status
// changes rarely, so a minutes-scale cache avoids a lookup per request.
const adminCacheTTL = 5 * time.Minute

type adminCacheEntry struct {
	isAdmin   bool
	expiresAt time.Time
}

var (
	adminCacheMu sync.Mutex
	adminCache   = map[uint]adminCacheEntry{}
)

// IsAdmin checks whether the user holds the ADMIN role, with a short-lived
// cache. A lookup error denies (fail closed), and the denial is not cached.
func IsAdmin(db *gorm.DB, userID uint) bool {
	adminCacheMu.Lock()
	entry, ok := adminCache[userID]
	adminCacheMu.Unlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.isAdmin
	}

	var user models.User
	err := db.Select("role").
		Where("id = ? AND is_active = true AND is_deleted = false", userID).
		First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[PERMISSION] Admin check failed for user %d: %v", userID, err)
		}
		return false
	}

	isAdmin := user.Role == models.RoleAdmin
	adminCacheMu.Lock()
	adminCache[userID] = adminCacheEntry{isAdmin: isAdmin, expiresAt: time.Now().Add(adminCacheTTL)}
	adminCacheMu.Unlock()
	return isAdmin
}

// InvalidateAdminCache drops a user's cached admin check, e.g. after a role
// change.
func InvalidateAdminCache(userID uint) {
	adminCacheMu.Lock()
	delete(adminCache, userID)
	adminCacheMu.Unlock()
}

// IsProfessor checks whether the user is an active professor.
func IsProfessor(db *gorm.DB, userID uint) bool {
	var user models.User
	err := db.Where("id = ? AND role = ? AND is_active = true AND is_deleted = false",
		userID, models.RoleProfessor).First(&user).Error
	return err == nil
}

// ResolvePermission resolves a user's access to a module. Admins bypass
// permission rows and receive full access. For professors, absence of a row
// or any lookup error denies access.
func ResolvePermission(db *gorm.DB, userID uint, module string) ModulePermission {
	if IsAdmin(db, userID) {
		return ModulePermission{CanView: true, CanEdit: true, EnabledFields: nil}
	}

	var perm models.ProfessorPermission
	err := db.Where("professor_id = ? AND module = ? AND is_deleted = false", userID, module).
		First(&perm).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[PERMISSION] Lookup failed for user %d module %q: %v", userID, module, err)
		}
		return ModulePermission{}
	}

	fields := make(map[string]bool, len(perm.EnabledFields))
	for name, v := range perm.EnabledFields {
		enabled, _ := v.(bool)
		fields[name] = enabled
	}

	return ModulePermission{CanView: perm.CanView, CanEdit: perm.CanEdit, EnabledFields: fields}
}

// AdminOnly restricts a route to admin identities.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !IsAdmin(database.Database.Db, userID) {
		return JsonResponse(c, fiber.StatusForbidden, false, "Admin access required!", nil)
	}

	return c.Next()
}

// ProfessorPermissionMiddleware gates a route on a module permission. With
// edit=true the user must hold CanEdit; otherwise CanView suffices. Admins
// pass unconditionally.
func ProfessorPermissionMiddleware(module string, edit bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		perm := ResolvePermission(database.Database.Db, userID, module)
		allowed := perm.CanView
		if edit {
			allowed = perm.CanEdit
		}
		if !allowed {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("modulePermission", perm)
		return c.Next()
	}
}

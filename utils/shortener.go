package utils

import (
	"strings"
	"time"

	"lms/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const shortCodeLength = 8

// CreateShortLink registers a short code -> target URL mapping and returns
// the code. Codes come from a uuid prefix; on the (rare) collision the
// insert is retried with a fresh code.
func CreateShortLink(db *gorm.DB, targetURL string, expiresAt *time.Time) (string, error) {
	var lastErr error
	for i := 0; i < 3; i++ {
		code := strings.ReplaceAll(uuid.NewString(), "-", "")[:shortCodeLength]
		link := models.ShortLink{
			Code:      code,
			TargetURL: targetURL,
			ExpiresAt: expiresAt,
		}
		if err := db.Create(&link).Error; err != nil {
			lastErr = err
			continue
		}
		return code, nil
	}
	return "", lastErr
}

// ResolveShortLink returns the target URL for a code and bumps its hit
// counter. Expired or unknown codes resolve to ErrRecordNotFound.
func ResolveShortLink(db *gorm.DB, code string) (string, error) {
	var link models.ShortLink
	if err := db.Where("code = ? AND is_deleted = false", code).First(&link).Error; err != nil {
		return "", err
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return "", gorm.ErrRecordNotFound
	}

	db.Model(&link).UpdateColumn("hits", gorm.Expr("hits + 1"))
	return link.TargetURL, nil
}

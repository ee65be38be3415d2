package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lms/config"

	"github.com/gofiber/fiber/v2"
)

// SaveUploadedFile saves a multipart upload under destDir and returns the
// stored relative path. Used by the storage-upload endpoint for
// certificate-adjacent artifacts.
func SaveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	name := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	stored := fmt.Sprintf("%s_%d%s", name, time.Now().UnixNano(), ext)
	path := filepath.Join(destDir, stored)

	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return path, nil
}

// GetFileURL maps a stored path to its public URL.
func GetFileURL(filePath string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(filePath), "public/")
	return config.AppConfig.PublicBaseURL + "/" + rel
}

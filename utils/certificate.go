package utils

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lms/config"
	courseModels "lms/models/course"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"gorm.io/gorm"
)

const (
	certWidth  = 1400
	certHeight = 990
)

// CertificateData carries everything the renderer embeds into the document.
type CertificateData struct {
	StudentName     string
	CourseName      string
	Number          string
	IssuedAt        time.Time
	DurationMinutes int
	VerifyURL       string
}

// IssueCertificate produces a durable certificate for one enrollment:
// create the record, render the document, store it, register the short
// verification link, and update the record with the final location.
//
// Completion is the caller's responsibility; this function does not check
// progress. There is no rollback on partial failure: a record without a
// document URL is an accepted inconsistency reconciled manually. Errors name
// the step that failed.
func IssueCertificate(db *gorm.DB, enrollment *courseModels.Enrollment) (*courseModels.Certificate, error) {
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = false", enrollment.CourseID).First(&course).Error; err != nil {
		return nil, fmt.Errorf("create record: course lookup: %w", err)
	}

	// Total workload is the sum of published lesson durations.
	var totalMinutes int64
	db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_published = true AND is_deleted = false", enrollment.CourseID).
		Select("COALESCE(SUM(duration_minutes), 0)").Scan(&totalMinutes)

	cert := courseModels.Certificate{
		UserID:               enrollment.UserID,
		CourseID:             enrollment.CourseID,
		TurmaID:              enrollment.TurmaID,
		EnrollmentID:         enrollment.ID,
		CertificateNumber:    strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
		TotalDurationMinutes: int(totalMinutes),
		Status:               "ISSUED",
		IssuedAt:             time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	documentURL := fmt.Sprintf("%s/certificates/%s.png", config.AppConfig.PublicBaseURL, cert.CertificateNumber)

	shortCode, err := CreateShortLink(db, documentURL, nil)
	if err != nil {
		return &cert, fmt.Errorf("register short link: %w", err)
	}
	verifyURL := fmt.Sprintf("%s/s/%s", config.AppConfig.PublicBaseURL, shortCode)

	png, err := RenderCertificate(CertificateData{
		StudentName:     enrollment.StudentName,
		CourseName:      course.Name,
		Number:          cert.CertificateNumber,
		IssuedAt:        cert.IssuedAt,
		DurationMinutes: cert.TotalDurationMinutes,
		VerifyURL:       verifyURL,
	})
	if err != nil {
		return &cert, fmt.Errorf("render: %w", err)
	}

	if err := os.MkdirAll(config.AppConfig.CertStorageDir, 0o755); err != nil {
		return &cert, fmt.Errorf("store: %w", err)
	}
	path := filepath.Join(config.AppConfig.CertStorageDir, cert.CertificateNumber+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return &cert, fmt.Errorf("store: %w", err)
	}

	cert.DocumentURL = documentURL
	cert.ShortCode = shortCode
	if err := db.Model(&cert).Updates(map[string]interface{}{
		"document_url": documentURL,
		"short_code":   shortCode,
	}).Error; err != nil {
		return &cert, fmt.Errorf("update record: %w", err)
	}

	return &cert, nil
}

// RenderCertificate draws the fixed-layout certificate PNG with the
// verification QR in the lower right corner.
func RenderCertificate(data CertificateData) ([]byte, error) {
	titleFace, err := loadCertFont(56)
	if err != nil {
		return nil, err
	}
	nameFace, err := loadCertFont(44)
	if err != nil {
		return nil, err
	}
	bodyFace, err := loadCertFont(24)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(certWidth, certHeight)

	dc.SetColor(color.White)
	dc.Clear()

	// Border
	dc.SetRGB(0.13, 0.15, 0.38)
	dc.SetLineWidth(10)
	dc.DrawRectangle(30, 30, certWidth-60, certHeight-60)
	dc.Stroke()

	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored("CERTIFICADO DE CONCLUSÃO", certWidth/2, 170, 0.5, 0.5)

	dc.SetFontFace(bodyFace)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored("Certificamos que", certWidth/2, 280, 0.5, 0.5)

	dc.SetFontFace(nameFace)
	dc.SetRGB(0.13, 0.15, 0.38)
	dc.DrawStringAnchored(data.StudentName, certWidth/2, 360, 0.5, 0.5)

	dc.SetFontFace(bodyFace)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored("concluiu o curso", certWidth/2, 440, 0.5, 0.5)

	dc.SetFontFace(nameFace)
	dc.SetRGB(0.13, 0.15, 0.38)
	dc.DrawStringAnchored(data.CourseName, certWidth/2, 520, 0.5, 0.5)

	hours := data.DurationMinutes / 60
	minutes := data.DurationMinutes % 60
	duration := fmt.Sprintf("Carga horária: %dh%02dmin", hours, minutes)

	dc.SetFontFace(bodyFace)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(duration, certWidth/2, 610, 0.5, 0.5)
	dc.DrawStringAnchored("Emitido em "+data.IssuedAt.Format("02/01/2006"), certWidth/2, 660, 0.5, 0.5)
	dc.DrawStringAnchored("Certificado nº "+data.Number, certWidth/2, 710, 0.5, 0.5)

	// Verification QR
	qrPNG, err := qrcode.New(data.VerifyURL, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	qrImage := qrPNG.Image(180)
	dc.DrawImage(qrImage, certWidth-260, certHeight-260)

	dc.DrawStringAnchored("Verifique em "+data.VerifyURL, certWidth/2, certHeight-120, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

func loadCertFont(size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(config.AppConfig.CertFontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

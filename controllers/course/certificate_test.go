package controllers

import (
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
)

func TestGetOrIssueCertificateRequiresCompletion(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Certificação")

	enrollment := courseModels.Enrollment{
		CourseID:     course.ID,
		StudentName:  "Aluno",
		StudentEmail: "cert@example.com",
		Status:       courseModels.EnrollmentInProgress,
		Progress:     60,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	_, _, err := GetOrIssueCertificate(db, &enrollment)
	require.ErrorIs(t, err, ErrNotCompleted)

	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestGetOrIssueCertificateReturnsExisting(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "Certificação Repetida")

	enrollment := courseModels.Enrollment{
		UserID:       3,
		CourseID:     course.ID,
		StudentName:  "Aluno",
		StudentEmail: "done@example.com",
		Status:       courseModels.EnrollmentCompleted,
		Progress:     100,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	existing := courseModels.Certificate{
		UserID:               3,
		CourseID:             course.ID,
		EnrollmentID:         enrollment.ID,
		CertificateNumber:    "CERT-EXISTING-01",
		DocumentURL:          "/certificates/existing.png",
		TotalDurationMinutes: 120,
		IssuedAt:             time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, db.Create(&existing).Error)

	cert, created, err := GetOrIssueCertificate(db, &enrollment)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, existing.ID, cert.ID)
	require.Equal(t, "CERT-EXISTING-01", cert.CertificateNumber)

	var count int64
	db.Model(&courseModels.Certificate{}).Count(&count)
	require.EqualValues(t, 1, count)
}

package utils

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestShortLinkRoundTrip(t *testing.T) {
	db := newTestDB(t)

	code, err := CreateShortLink(db, "/certificates/abc.png", nil)
	require.NoError(t, err)
	require.Len(t, code, shortCodeLength)

	target, err := ResolveShortLink(db, code)
	require.NoError(t, err)
	require.Equal(t, "/certificates/abc.png", target)

	// Hits accumulate per resolution.
	_, err = ResolveShortLink(db, code)
	require.NoError(t, err)

	var link models.ShortLink
	require.NoError(t, db.Where("code = ?", code).First(&link).Error)
	require.EqualValues(t, 2, link.Hits)
}

func TestShortLinkUnknownCode(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveShortLink(db, "missing1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShortLinkExpiry(t *testing.T) {
	db := newTestDB(t)

	past := time.Now().Add(-time.Minute)
	code, err := CreateShortLink(db, "/gone", &past)
	require.NoError(t, err)

	_, err = ResolveShortLink(db, code)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

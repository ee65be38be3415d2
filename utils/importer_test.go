package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunPacedImportAccumulatesOutcomes(t *testing.T) {
	keys := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}

	summary := RunPacedImport(keys, 0, func(i int, key string) (string, error) {
		switch key {
		case "b@x.com":
			return ImportSkipped, nil
		case "c@x.com":
			return "", errors.New("gateway refused")
		default:
			return ImportSuccess, nil
		}
	})

	require.Equal(t, 4, summary.Total)
	require.Equal(t, 2, summary.Success)
	require.Equal(t, 1, summary.Skipped)
	require.Equal(t, 1, summary.Errors)
	require.Len(t, summary.Results, 4)
	require.Equal(t, "gateway refused", summary.Results[2].Reason)
}

func TestRunPacedImportContinuesAfterFailure(t *testing.T) {
	var processed []string

	summary := RunPacedImport([]string{"one", "two", "three"}, 0, func(i int, key string) (string, error) {
		processed = append(processed, key)
		if key == "one" {
			return ImportError, errors.New("boom")
		}
		return ImportSuccess, nil
	})

	require.Equal(t, []string{"one", "two", "three"}, processed)
	require.Equal(t, 1, summary.Errors)
	require.Equal(t, 2, summary.Success)
}

func TestRunPacedImportPacesBetweenItems(t *testing.T) {
	delay := 20 * time.Millisecond
	start := time.Now()

	RunPacedImport([]string{"a", "b", "c"}, delay, func(i int, key string) (string, error) {
		return ImportSuccess, nil
	})

	// Two gaps between three items.
	require.GreaterOrEqual(t, time.Since(start), 2*delay)
}

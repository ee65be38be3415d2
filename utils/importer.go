package utils

import (
	"log"
	"time"
)

// Import item outcomes
const (
	ImportSuccess = "success"
	ImportSkipped = "skipped"
	ImportError   = "error"
)

// ImportResult is one item's outcome within a bulk operation.
type ImportResult struct {
	Index   int    `json:"index"`
	Key     string `json:"key"` // item identifier, usually an email or unit code
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// ImportSummary aggregates a bulk run for the post-hoc report.
type ImportSummary struct {
	Total   int            `json:"total"`
	Success int            `json:"success"`
	Skipped int            `json:"skipped"`
	Errors  int            `json:"errors"`
	Results []ImportResult `json:"results"`
}

// RunPacedImport processes items sequentially with a fixed inter-item delay.
// The delay exists only to respect an external API's rate limit; there is no
// parallelism and no retry. Item failures are captured into the result list
// so the run reports a summary instead of aborting on first error.
func RunPacedImport(keys []string, delay time.Duration, process func(index int, key string) (string, error)) ImportSummary {
	summary := ImportSummary{Total: len(keys)}

	for i, key := range keys {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		outcome, err := process(i, key)
		result := ImportResult{Index: i, Key: key, Outcome: outcome}
		if err != nil {
			result.Outcome = ImportError
			result.Reason = err.Error()
			log.Printf("[IMPORT] item %d (%s) failed: %v", i, key, err)
		}

		switch result.Outcome {
		case ImportSuccess:
			summary.Success++
		case ImportSkipped:
			summary.Skipped++
		default:
			summary.Errors++
		}
		summary.Results = append(summary.Results, result)
	}

	return summary
}

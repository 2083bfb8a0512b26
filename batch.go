package skillet

import (
	"fmt"
	"sort"
	"time"
)

// BatchProgress is a snapshot of a running batch. Mutated only by the
// batch orchestrator; completed+failed never exceeds total, and the batch
// is done iff completed+failed == total.
type BatchProgress struct {
	Total      int
	Completed  int
	Failed     int
	InProgress int
}

// Done reports whether the batch has finished.
func (p BatchProgress) Done() bool {
	return p.Completed+p.Failed == p.Total
}

// ResultMetadata describes how and when one extraction was produced.
type ResultMetadata struct {
	URL         string       `json:"url"`
	Method      ScrapeMethod `json:"method,omitempty"`
	Discovery   DiscoveryMethod `json:"discoveredBy,omitempty"`
	WorkerID    string       `json:"workerId,omitempty"`
	ContentHash string       `json:"contentHash,omitempty"`
	StartedAt   time.Time    `json:"startedAt"`
	FinishedAt  time.Time    `json:"finishedAt"`
}

// ExtractionResult is the outcome of extracting one candidate URL. One is
// created per candidate, appended once to the output collection, and never
// mutated afterward.
type ExtractionResult struct {
	Success  bool           `json:"success"`
	Recipe   *Recipe        `json:"recipe,omitempty"`
	Error    string         `json:"error,omitempty"`
	Metadata ResultMetadata `json:"metadata"`
}

// BatchSummary is a derived, read-only view over a final ExtractionResult
// collection.
type BatchSummary struct {
	TotalURLs             int                  `json:"totalUrls"`
	SuccessfulExtractions int                  `json:"successfulExtractions"`
	FailedExtractions     int                  `json:"failedExtractions"`
	SuccessRate           string               `json:"successRate"` // e.g. "70.0%"
	ExtractionMethods     map[ScrapeMethod]int `json:"extractionMethods"`
	TopFailureReasons     []string             `json:"topFailureReasons,omitempty"`
	Duration              time.Duration        `json:"duration"`
}

// maxTopFailureReasons bounds the failure reason list in a summary.
const maxTopFailureReasons = 5

// Summarize derives a BatchSummary from a final result collection.
func Summarize(results []ExtractionResult, duration time.Duration) *BatchSummary {
	s := &BatchSummary{
		TotalURLs:         len(results),
		ExtractionMethods: make(map[ScrapeMethod]int),
		Duration:          duration,
	}

	reasonCounts := make(map[string]int)
	for _, r := range results {
		if r.Success {
			s.SuccessfulExtractions++
			if r.Metadata.Method != "" {
				s.ExtractionMethods[r.Metadata.Method]++
			}
			continue
		}
		s.FailedExtractions++
		if r.Error != "" {
			reasonCounts[r.Error]++
		}
	}

	if s.TotalURLs > 0 {
		rate := float64(s.SuccessfulExtractions) / float64(s.TotalURLs) * 100
		s.SuccessRate = fmt.Sprintf("%.1f%%", rate)
	} else {
		s.SuccessRate = "0.0%"
	}

	// Most frequent failure reasons first, ties broken alphabetically for
	// deterministic output.
	reasons := make([]string, 0, len(reasonCounts))
	for reason := range reasonCounts {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if reasonCounts[reasons[i]] != reasonCounts[reasons[j]] {
			return reasonCounts[reasons[i]] > reasonCounts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	if len(reasons) > maxTopFailureReasons {
		reasons = reasons[:maxTopFailureReasons]
	}
	s.TopFailureReasons = reasons

	return s
}

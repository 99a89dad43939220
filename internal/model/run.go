package model

import "time"

// RunSummary collects everything that happened during one conversion run.
type RunSummary struct {
	// StartedAt is when discovery began.
	StartedAt time.Time `json:"startedAt"`

	// FinishedAt is when the loop ended, normally or by cancellation.
	FinishedAt time.Time `json:"finishedAt"`

	// Request is the request the run was executed for.
	Request ConversionRequest `json:"request"`

	// Records holds one entry per processed file in processing order.
	Records []ConversionRecord `json:"records"`

	// Cancelled is true when the user interrupted the run.
	Cancelled bool `json:"cancelled"`
}

// NewRunSummary creates an empty summary for req starting now.
func NewRunSummary(req ConversionRequest) *RunSummary {
	return &RunSummary{
		StartedAt: time.Now(),
		Request:   req,
		Records:   make([]ConversionRecord, 0),
	}
}

// Add appends a record to the summary.
func (s *RunSummary) Add(record ConversionRecord) {
	s.Records = append(s.Records, record)
}

// Finish stamps the end time of the run.
func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now()
}

// Count returns the number of processed files, written or skipped.
func (s *RunSummary) Count() int {
	return len(s.Records)
}

// WrittenCount returns the number of files whose encodings were written.
func (s *RunSummary) WrittenCount() int {
	n := 0
	for i := range s.Records {
		if !s.Records[i].Skipped {
			n++
		}
	}
	return n
}

// SkippedCount returns the number of files whose existing output was kept.
func (s *RunSummary) SkippedCount() int {
	return s.Count() - s.WrittenCount()
}

// Duration returns how long the run took. It is zero until Finish is called.
func (s *RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Status returns "completed" or "cancelled".
func (s *RunSummary) Status() string {
	if s.Cancelled {
		return RunCancelled
	}
	return RunCompleted
}

// Run status values.
const (
	RunCompleted = "completed"
	RunCancelled = "cancelled"
)

// Plural returns the suffix for "file" given a count.
// Only counts greater than one are plural, so both 0 and 1 read "file".
func Plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

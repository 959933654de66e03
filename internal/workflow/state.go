package workflow

import (
	"time"

	"github.com/claimcheck-io/claimcheck/internal/archive"
	"github.com/claimcheck-io/claimcheck/internal/engine"
)

// State bag keys.
const (
	KeyJob           = "analysis_job"
	KeyAnalysisState = "analysis_state"
)

// ReasonUnreadable is the decision reason recorded for invoices whose
// text could not be extracted. Such invoices are declined without an
// inference call.
const ReasonUnreadable = "Could not extract text"

// Job is the input to an analysis workflow run: the extracted policy
// text and the archive entries to analyze, in archive order.
type Job struct {
	PolicyText string
	Invoices   []archive.Entry
}

// Invoice is a single archive entry after text extraction.
type Invoice struct {
	Name string `json:"name"`
	Text string `json:"-"`
}

// Summary aggregates the decisions of a completed run.
type Summary struct {
	FullyReimbursed     int `json:"fully_reimbursed"`
	PartiallyReimbursed int `json:"partially_reimbursed"`
	Declined            int `json:"declined"`
	TotalReimbursable   int `json:"total_reimbursable_amount"`
}

// AnalysisState accumulates per-invoice progress through the workflow.
// Decisions are index-aligned with Invoices.
type AnalysisState struct {
	Invoices  []Invoice         `json:"invoices"`
	Decisions []engine.Decision `json:"decisions"`
	Summary   Summary           `json:"summary"`
}

// Result is the outcome of a completed analysis workflow run.
type Result struct {
	Decisions   []engine.Decision
	Summary     Summary
	CompletedAt time.Time
}

// Summarize computes the summary over a set of decisions.
func Summarize(decisions []engine.Decision) Summary {
	var s Summary
	for _, d := range decisions {
		switch d.Status {
		case engine.StatusFull:
			s.FullyReimbursed++
		case engine.StatusPartial:
			s.PartiallyReimbursed++
		case engine.StatusDeclined:
			s.Declined++
		}
		s.TotalReimbursable += d.Amount
	}
	return s
}

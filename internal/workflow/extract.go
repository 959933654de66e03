package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/claimcheck-io/claimcheck/internal/extract"
)

// ExtractNode returns a state node that converts each archive entry to
// plain text. Extraction is sequential and best-effort: an entry whose
// text cannot be recovered is carried forward with empty text and
// declined by the analyze node rather than aborting the batch.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		job, err := extractJob(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		invoices := make([]Invoice, len(job.Invoices))
		for i, entry := range job.Invoices {
			text := ""
			if len(entry.Data) > 0 {
				text = extract.PDF(entry.Data)
			}
			if text == "" {
				rt.Logger.WarnContext(ctx, "invoice text unavailable", "invoice", entry.Name)
			}
			invoices[i] = Invoice{Name: entry.Name, Text: text}
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"invoice_count", len(invoices),
		)

		s = s.Set(KeyAnalysisState, AnalysisState{Invoices: invoices})
		return s, nil
	})
}

func extractJob(s state.State) (Job, error) {
	val, ok := s.Get(KeyJob)
	if !ok {
		return Job{}, fmt.Errorf("%w: missing %s in state", ErrExtractFailed, KeyJob)
	}

	job, ok := val.(Job)
	if !ok {
		return Job{}, fmt.Errorf("%w: %s is not Job", ErrExtractFailed, KeyJob)
	}

	return job, nil
}

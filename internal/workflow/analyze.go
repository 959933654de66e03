package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/claimcheck-io/claimcheck/internal/engine"
)

// AnalyzeNode returns a state node that produces one decision per
// invoice, strictly in order. Invoices with no extractable text are
// declined without an inference call. A failed analysis never aborts
// the batch; the engine fails closed per invoice.
func AnalyzeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		job, err := extractJob(s)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		as, err := extractAnalysisState(s)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		as.Decisions = make([]engine.Decision, len(as.Invoices))
		for i, invoice := range as.Invoices {
			if strings.TrimSpace(invoice.Text) == "" {
				as.Decisions[i] = engine.Decision{
					InvoiceID: invoice.Name,
					Status:    engine.StatusDeclined,
					Amount:    0,
					Reason:    ReasonUnreadable,
				}
				continue
			}

			as.Decisions[i] = rt.Engine.Decide(ctx, job.PolicyText, invoice.Text, invoice.Name)
		}

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"invoice_count", len(as.Decisions),
		)

		s = s.Set(KeyAnalysisState, *as)
		return s, nil
	})
}

func extractAnalysisState(s state.State) (*AnalysisState, error) {
	val, ok := s.Get(KeyAnalysisState)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrAnalyzeFailed, KeyAnalysisState)
	}

	as, ok := val.(AnalysisState)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not AnalysisState", ErrAnalyzeFailed, KeyAnalysisState)
	}

	return &as, nil
}

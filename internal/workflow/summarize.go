package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// SummarizeNode returns a state node that computes the executive
// summary over the completed decision set. Pure computation; no
// inference involved.
func SummarizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		as, err := extractAnalysisState(s)
		if err != nil {
			return s, fmt.Errorf("summarize: %w", err)
		}

		as.Summary = Summarize(as.Decisions)

		rt.Logger.InfoContext(
			ctx, "summarize node complete",
			"fully_reimbursed", as.Summary.FullyReimbursed,
			"partially_reimbursed", as.Summary.PartiallyReimbursed,
			"declined", as.Summary.Declined,
			"total_reimbursable", as.Summary.TotalReimbursable,
		)

		s = s.Set(KeyAnalysisState, *as)
		return s, nil
	})
}

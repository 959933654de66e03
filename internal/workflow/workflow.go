// Package workflow orchestrates a single analysis run as a linear
// state graph: extract invoice text, decide each invoice in order,
// then summarize the decision set.
package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the analysis workflow for a single uploaded batch. It
// builds the state graph (extract → analyze → summarize), executes it,
// and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, job Job) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyJob, job)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("claimcheck-analysis")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("analyze", AnalyzeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("summarize", SummarizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("extract", "analyze", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("analyze", "summarize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("extract"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("summarize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyAnalysisState)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyAnalysisState)
	}

	as, ok := val.(AnalysisState)
	if !ok {
		return nil, fmt.Errorf("%s is not AnalysisState", KeyAnalysisState)
	}

	return &Result{
		Decisions:   as.Decisions,
		Summary:     as.Summary,
		CompletedAt: time.Now(),
	}, nil
}

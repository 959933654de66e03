package api

import (
	"github.com/claimcheck-io/claimcheck/internal/analyses"
	"github.com/claimcheck-io/claimcheck/internal/engine"
	"github.com/claimcheck-io/claimcheck/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analyses analyses.System
	Prompts  prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Storage,
		promptsSystem,
		runtime.Agent,
		engine.Options{
			Attempts: runtime.Engine.Attempts,
			Delay:    runtime.Engine.RetryDelayDuration(),
		},
		runtime.Engine.MaxConcurrent,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Analyses: analysesSystem,
		Prompts:  promptsSystem,
	}
}

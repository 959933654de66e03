package engine

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Generator performs a single LLM inference for a composed prompt.
// Implementations must be safe for sequential reuse across invoices.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type agentGenerator struct {
	config gaconfig.AgentConfig
}

// NewGenerator creates a Generator backed by a go-agents chat agent
// built from the given configuration.
func NewGenerator(config gaconfig.AgentConfig) Generator {
	return &agentGenerator{config: config}
}

func (g *agentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&g.config)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Text(), nil
}

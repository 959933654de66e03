package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claimcheck-io/claimcheck/internal/prompts"
	"github.com/claimcheck-io/claimcheck/pkg/formatting"
)

// Options control the engine's retry behavior.
type Options struct {
	// Attempts is the total inference budget per invoice, including
	// the first attempt.
	Attempts int
	// Delay is the pause between consecutive attempts.
	Delay time.Duration
}

// Engine produces validated reimbursement decisions by comparing
// invoice text against policy text through an LLM inference.
type Engine struct {
	generator Generator
	prompts   prompts.System
	logger    *slog.Logger
	attempts  int
	delay     time.Duration
}

// New creates an Engine with the given generator, prompt system, and
// retry options.
func New(
	generator Generator,
	prompts prompts.System,
	logger *slog.Logger,
	opts Options,
) *Engine {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Engine{
		generator: generator,
		prompts:   prompts,
		logger:    logger.With("system", "engine"),
		attempts:  opts.Attempts,
		delay:     opts.Delay,
	}
}

// Decide analyzes a single invoice against the policy and returns a
// validated decision. The first attempt uses the analyze stage;
// retries use the reverify stage. Malformed or invalid replies and
// transport failures consume the attempt budget; exhaustion and
// context cancellation fail closed to a declined decision carrying a
// diagnostic reason. Decide never returns an error.
func (e *Engine) Decide(ctx context.Context, policyText, invoiceText, invoiceID string) Decision {
	var lastErr error

	for attempt := 1; attempt <= e.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return e.declined(invoiceID, fmt.Sprintf("analysis aborted: %v", ctx.Err()))
			case <-time.After(e.delay):
			}
		}

		stage := prompts.StageAnalyze
		if attempt > 1 {
			stage = prompts.StageReverify
		}

		prompt, err := e.compose(ctx, stage, policyText, invoiceText)
		if err != nil {
			// A broken template fails every attempt identically, so
			// the budget is not consumed on it.
			return e.declined(invoiceID, fmt.Sprintf("prompt composition failed: %v", err))
		}

		reply, err := e.generator.Generate(ctx, prompt)
		if err != nil {
			lastErr = fmt.Errorf("%w: %w", ErrGeneration, err)
			e.logAttempt(ctx, invoiceID, attempt, lastErr)
			continue
		}

		decision, err := e.evaluate(reply)
		if err != nil {
			lastErr = err
			e.logAttempt(ctx, invoiceID, attempt, lastErr)
			continue
		}

		decision.InvoiceID = invoiceID
		e.logger.InfoContext(
			ctx, "invoice analyzed",
			"invoice", invoiceID,
			"status", decision.Status,
			"amount", decision.Amount,
			"attempt", attempt,
		)
		return decision
	}

	return e.declined(
		invoiceID,
		fmt.Sprintf("analysis failed after %d attempts: %v", e.attempts, lastErr),
	)
}

func (e *Engine) compose(
	ctx context.Context,
	stage prompts.Stage,
	policyText, invoiceText string,
) (string, error) {
	template, err := e.prompts.Template(ctx, stage)
	if err != nil {
		return "", err
	}

	spec, err := e.prompts.Spec(ctx, stage)
	if err != nil {
		return "", err
	}

	return prompts.Compose(template, spec, policyText, invoiceText)
}

// evaluate parses a raw reply, stripping markdown fencing if present,
// and validates the decoded decision.
func (e *Engine) evaluate(reply string) (Decision, error) {
	raw, err := formatting.Parse[rawDecision](reply)
	if err != nil {
		return Decision{}, err
	}
	return raw.validate()
}

func (e *Engine) declined(invoiceID, reason string) Decision {
	return Decision{
		InvoiceID: invoiceID,
		Status:    StatusDeclined,
		Amount:    0,
		Reason:    reason,
	}
}

func (e *Engine) logAttempt(ctx context.Context, invoiceID string, attempt int, err error) {
	e.logger.WarnContext(
		ctx, "analysis attempt failed",
		"invoice", invoiceID,
		"attempt", attempt,
		"of", e.attempts,
		"error", err,
	)
}

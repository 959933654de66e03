// Package engine implements the reimbursement decision engine. It
// composes an analysis prompt from policy and invoice text, performs
// the LLM inference, and normalizes the reply into a validated
// decision. Malformed or invalid replies are retried on a fixed
// budget; exhaustion fails closed to a declined decision. Decide never
// returns an error.
package engine

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Status is a reimbursement decision outcome.
type Status string

// Valid reimbursement statuses. Any reply status outside this set is a
// validation failure.
const (
	StatusFull     Status = "Fully Reimbursed"
	StatusPartial  Status = "Partially Reimbursed"
	StatusDeclined Status = "Declined"
)

var statuses = []Status{
	StatusFull,
	StatusPartial,
	StatusDeclined,
}

// Statuses returns the list of valid reimbursement statuses.
func Statuses() []Status {
	return statuses
}

// DefaultReason is substituted when a reply omits the reason field.
const DefaultReason = "No reason provided"

// Decision is a validated reimbursement decision for a single invoice.
type Decision struct {
	InvoiceID string `json:"invoice_id"`
	Status    Status `json:"reimbursement_status"`
	Amount    int    `json:"reimbursable_amount"`
	Reason    string `json:"reason"`
}

// rawDecision is the unvalidated shape of an LLM reply. Amount is
// loosely typed so that both JSON numbers and numeric strings coerce.
type rawDecision struct {
	Status string `json:"reimbursement_status"`
	Amount any    `json:"reimbursable_amount"`
	Reason string `json:"reason"`
}

func (r rawDecision) validate() (Decision, error) {
	status := Status(r.Status)
	if !slices.Contains(statuses, status) {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}

	amount, err := coerceAmount(r.Amount)
	if err != nil {
		return Decision{}, err
	}

	reason := strings.TrimSpace(r.Reason)
	if reason == "" {
		reason = DefaultReason
	}

	return Decision{
		Status: status,
		Amount: amount,
		Reason: reason,
	}, nil
}

// coerceAmount normalizes a reply amount to a non-negative integer.
// A missing amount defaults to zero. Fractional numbers, non-numeric
// strings, and negative values are validation failures.
func coerceAmount(v any) (int, error) {
	switch amount := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if amount != math.Trunc(amount) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidAmount, amount)
		}
		return checkAmount(int(amount))
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
		}
		return checkAmount(parsed)
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", ErrInvalidAmount, v)
	}
}

func checkAmount(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}
	return amount, nil
}

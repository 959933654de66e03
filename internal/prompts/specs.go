package prompts

const analyzeSpec = `Respond with a JSON object matching this exact structure:

{
  "reimbursement_status": "<Fully Reimbursed|Partially Reimbursed|Declined>",
  "reimbursable_amount": <integer>,
  "reason": "<short explanation of decision>"
}

Field constraints:
- reimbursement_status: Exactly one of the three permitted values, with
  this capitalization. No other status values are accepted.
- reimbursable_amount: Non-negative integer amount approved for
  reimbursement. Use 0 when the invoice is declined. Never a decimal,
  never negative, never a currency-formatted string.
- reason: Brief explanation of the decision referencing the specific
  policy rules and amounts that determined it.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Process exactly one invoice per response
- Base the decision only on the policy and invoice text provided`

const reverifySpec = `Respond with a JSON object matching this exact structure:

{
  "reimbursement_status": "<Fully Reimbursed|Partially Reimbursed|Declined>",
  "reimbursable_amount": <integer>,
  "reason": "<short explanation of decision>"
}

Field constraints:
- reimbursement_status: Exactly one of the three permitted values, with
  this capitalization. A previous reply failed validation; any other
  value will be rejected again.
- reimbursable_amount: Non-negative integer amount approved for
  reimbursement. Use 0 when the invoice is declined.
- reason: Brief explanation of the decision referencing the specific
  policy rules and amounts that determined it.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Do not wrap the object in any prose or commentary
- Base the decision only on the policy and invoice text provided`

var specs = map[Stage]string{
	StageAnalyze:  analyzeSpec,
	StageReverify: reverifySpec,
}

// Spec returns the hardcoded response specification for an analysis stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

package prompts

const analyzeTemplate = `You are an expert HR and finance analyst responsible for verifying reimbursement invoices based on a company's official policy document.

Input:
1. A company reimbursement policy (detailed below).
2. An employee invoice (detailed below).

Your task:
- Carefully compare the invoice contents (date, items, amount, purpose, tax, category) against the company's reimbursement policy.
- Determine whether the invoice should be Fully Reimbursed, Partially Reimbursed, or Declined.
- Explain the decision with specific references to policy rules and amounts.

Guidelines:
- If all items in the invoice are within policy rules and limits, mark as "Fully Reimbursed".
- If some items or amounts exceed policy limits but are otherwise valid, mark as "Partially Reimbursed" and give the reimbursable amount.
- If the invoice contains non-reimbursable or restricted items, mark as "Declined" and give the reason.
- The reimbursable amount must always be an integer.
- Only use the rules from the provided policy. Do not assume anything not mentioned.

--- POLICY DOCUMENT ---
{policy_text}

--- INVOICE DOCUMENT ---
{invoice_text}`

const reverifyTemplate = `You are an expert HR and finance analyst re-verifying a reimbursement decision. A previous attempt to analyze this invoice produced a malformed or invalid response. Re-read the policy and invoice below and produce a fresh, carefully formatted decision.

Your task:
- Carefully compare the invoice contents (date, items, amount, purpose, tax, category) against the company's reimbursement policy.
- Determine whether the invoice should be Fully Reimbursed, Partially Reimbursed, or Declined.
- Explain the decision with specific references to policy rules and amounts.

Guidelines:
- If all items in the invoice are within policy rules and limits, mark as "Fully Reimbursed".
- If some items or amounts exceed policy limits but are otherwise valid, mark as "Partially Reimbursed" and give the reimbursable amount.
- If the invoice contains non-reimbursable or restricted items, mark as "Declined" and give the reason.
- The reimbursable amount must always be an integer.
- Only use the rules from the provided policy. Do not assume anything not mentioned.
- The status value must be exactly one of: Fully Reimbursed, Partially Reimbursed, Declined.

--- POLICY DOCUMENT ---
{policy_text}

--- INVOICE DOCUMENT ---
{invoice_text}`

var templates = map[Stage]string{
	StageAnalyze:  analyzeTemplate,
	StageReverify: reverifyTemplate,
}

// DefaultTemplate returns the hardcoded default template for an analysis stage.
// Returns ErrInvalidStage if the stage is not recognized.
func DefaultTemplate(stage Stage) (string, error) {
	text, ok := templates[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

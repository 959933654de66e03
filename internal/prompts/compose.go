package prompts

import (
	"fmt"
	"strings"
)

// Template placeholders that every stage template must carry.
const (
	PlaceholderPolicy  = "{policy_text}"
	PlaceholderInvoice = "{invoice_text}"
)

// Compose substitutes the policy and invoice text into a stage template
// and appends the stage's response specification. Returns
// ErrMissingPlaceholder when the template lacks a required placeholder;
// no partial output is produced in that case.
func Compose(template, spec, policyText, invoiceText string) (string, error) {
	if err := ValidateTemplate(template); err != nil {
		return "", err
	}

	prompt := strings.ReplaceAll(template, PlaceholderPolicy, policyText)
	prompt = strings.ReplaceAll(prompt, PlaceholderInvoice, invoiceText)

	if spec != "" {
		prompt = prompt + "\n\n" + spec
	}

	return prompt, nil
}

// ValidateTemplate checks that a template carries both required placeholders.
func ValidateTemplate(template string) error {
	for _, ph := range []string{PlaceholderPolicy, PlaceholderInvoice} {
		if !strings.Contains(template, ph) {
			return fmt.Errorf("%w: %s", ErrMissingPlaceholder, ph)
		}
	}
	return nil
}

package analyses

import (
	"net/url"

	"github.com/claimcheck-io/claimcheck/internal/engine"
	"github.com/claimcheck-io/claimcheck/pkg/query"
	"github.com/claimcheck-io/claimcheck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("policy_name", "PolicyName").
	Project("archive_name", "ArchiveName").
	Project("invoice_count", "InvoiceCount").
	Project("fully_reimbursed", "FullyReimbursed").
	Project("partially_reimbursed", "PartiallyReimbursed").
	Project("declined", "Declined").
	Project("total_reimbursable", "TotalReimbursable").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("policy_key", "PolicyKey").
	Project("archive_key", "ArchiveKey").
	Project("analyzed_at", "AnalyzedAt")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. ModelName and ProviderName use exact
// matching. PolicyName and ArchiveName use case-insensitive contains
// matching.
type Filters struct {
	PolicyName   *string `json:"policy_name,omitempty"`
	ArchiveName  *string `json:"archive_name,omitempty"`
	ModelName    *string `json:"model_name,omitempty"`
	ProviderName *string `json:"provider_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("PolicyName", f.PolicyName).
		WhereContains("ArchiveName", f.ArchiveName).
		WhereEquals("ModelName", f.ModelName).
		WhereEquals("ProviderName", f.ProviderName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("policy_name"); p != "" {
		f.PolicyName = &p
	}

	if a := values.Get("archive_name"); a != "" {
		f.ArchiveName = &a
	}

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	if p := values.Get("provider_name"); p != "" {
		f.ProviderName = &p
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.PolicyName,
		&a.ArchiveName,
		&a.InvoiceCount,
		&a.Summary.FullyReimbursed,
		&a.Summary.PartiallyReimbursed,
		&a.Summary.Declined,
		&a.Summary.TotalReimbursable,
		&a.ModelName,
		&a.ProviderName,
		&a.PolicyKey,
		&a.ArchiveKey,
		&a.AnalyzedAt,
	)
	return a, err
}

func scanDecision(s repository.Scanner) (engine.Decision, error) {
	var d engine.Decision
	err := s.Scan(
		&d.InvoiceID,
		&d.Status,
		&d.Amount,
		&d.Reason,
	)
	return d, err
}

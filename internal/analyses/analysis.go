// Package analyses implements the analysis run domain for claimcheck.
// It provides types, data access, and business logic for executing an
// invoice reimbursement analysis over an uploaded policy and invoice
// archive, persisting the resulting decisions, and serving run history
// and artifacts.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/claimcheck-io/claimcheck/internal/engine"
	"github.com/claimcheck-io/claimcheck/internal/workflow"
)

// Analysis represents a stored analysis run with flattened summary and
// model metadata. Decisions is populated for single-run reads and on
// run creation; list queries leave it empty.
type Analysis struct {
	ID           uuid.UUID         `json:"id"`
	PolicyName   string            `json:"policy_name"`
	ArchiveName  string            `json:"archive_name"`
	InvoiceCount int               `json:"invoice_count"`
	Summary      workflow.Summary  `json:"summary"`
	ModelName    string            `json:"model_name"`
	ProviderName string            `json:"provider_name"`
	PolicyKey    string            `json:"policy_key"`
	ArchiveKey   string            `json:"archive_key"`
	AnalyzedAt   time.Time         `json:"analyzed_at"`
	Decisions    []engine.Decision `json:"analysis,omitempty"`
}

// AnalyzeCommand carries the uploaded artifacts for a new analysis run.
type AnalyzeCommand struct {
	PolicyName  string
	PolicyData  []byte
	ArchiveName string
	ArchiveData []byte
}

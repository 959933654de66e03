package analyses

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/claimcheck-io/claimcheck/pkg/pagination"
)

// Artifact is a stored upload streamed back to a client.
// The caller must close Body.
type Artifact struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// System defines the public contract for analysis domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Policy(ctx context.Context, id uuid.UUID) (*Artifact, error)
	Archive(ctx context.Context, id uuid.UUID) (*Artifact, error)
}

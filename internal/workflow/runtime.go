package workflow

import (
	"log/slog"

	"github.com/claimcheck-io/claimcheck/internal/engine"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Engine *engine.Engine
	Logger *slog.Logger
}

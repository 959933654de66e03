package api

import (
	"net/http"

	"github.com/claimcheck-io/claimcheck/internal/config"
	"github.com/claimcheck-io/claimcheck/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Analyses.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	routes.Register(
		mux,
		domain.Prompts.Handler().Routes(),
	)
}

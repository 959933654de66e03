// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/claimcheck-io/claimcheck/internal/config"
	"github.com/claimcheck-io/claimcheck/internal/infrastructure"
	"github.com/claimcheck-io/claimcheck/pkg/middleware"
	"github.com/claimcheck-io/claimcheck/pkg/module"
	"github.com/claimcheck-io/claimcheck/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	specBytes, err := buildSpec(cfg)
	if err != nil {
		return nil, fmt.Errorf("build openapi spec: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}

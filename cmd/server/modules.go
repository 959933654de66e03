package main

import (
	"encoding/json"
	"net/http"

	"github.com/claimcheck-io/claimcheck/internal/api"
	"github.com/claimcheck-io/claimcheck/internal/config"
	"github.com/claimcheck-io/claimcheck/internal/infrastructure"
	"github.com/claimcheck-io/claimcheck/pkg/middleware"
	"github.com/claimcheck-io/claimcheck/pkg/module"
	"github.com/claimcheck-io/claimcheck/web/upload"
)

type Modules struct {
	API    *module.Module
	Upload *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	uploadModule, err := upload.NewModule("/upload", cfg.API.BasePath)
	if err != nil {
		return nil, err
	}
	uploadModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Upload: uploadModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Upload)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}

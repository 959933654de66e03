// Package upload serves the browser upload form for submitting a
// policy document and invoice archive to the analysis API.
package upload

import (
	"embed"

	"github.com/claimcheck-io/claimcheck/pkg/module"
	"github.com/claimcheck-io/claimcheck/pkg/web"
)

//go:embed layouts/*.html views/*.html
var templateFS embed.FS

var indexView = web.ViewDef{
	Route:    "/",
	Template: "index.html",
	Title:    "Invoice Reimbursement Analysis",
}

// NewModule creates a module that serves the upload form at basePath.
// Form submissions post to apiPath/analyses.
func NewModule(basePath, apiPath string) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		templateFS, templateFS,
		"layouts/*.html", "views",
		apiPath,
		[]web.ViewDef{indexView},
	)
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	router.HandleFunc("GET /{$}", ts.PageHandler("base", indexView))

	return module.New(basePath, router), nil
}

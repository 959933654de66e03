package api

import (
	"fmt"

	"github.com/claimcheck-io/claimcheck/internal/config"
	"github.com/claimcheck-io/claimcheck/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the analyses and prompts
// endpoints and returns its serialized JSON.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(analysisSchemas())
	spec.Components.AddSchemas(promptSchemas())

	addAnalysisPaths(spec)
	addPromptPaths(spec)

	return openapi.MarshalJSON(spec)
}

func analysisSchemas() map[string]*openapi.Schema {
	zero := 0.0

	return map[string]*openapi.Schema{
		"Decision": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"invoice_id": {Type: "string", Description: "Invoice filename within the archive"},
				"reimbursement_status": {
					Type: "string",
					Enum: []any{"Fully Reimbursed", "Partially Reimbursed", "Declined"},
				},
				"reimbursable_amount": {Type: "integer", Minimum: &zero},
				"reason":              {Type: "string"},
			},
			Required: []string{"invoice_id", "reimbursement_status", "reimbursable_amount", "reason"},
		},
		"Summary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"fully_reimbursed":          {Type: "integer"},
				"partially_reimbursed":      {Type: "integer"},
				"declined":                  {Type: "integer"},
				"total_reimbursable_amount": {Type: "integer"},
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"policy_name":   {Type: "string"},
				"archive_name":  {Type: "string"},
				"invoice_count": {Type: "integer"},
				"summary":       openapi.SchemaRef("Summary"),
				"model_name":    {Type: "string"},
				"provider_name": {Type: "string"},
				"analyzed_at":   {Type: "string", Format: "date-time"},
				"analysis": {
					Type:        "array",
					Items:       openapi.SchemaRef("Decision"),
					Description: "Per-invoice decisions in archive order",
				},
			},
		},
	}
}

func promptSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"stage":       {Type: "string", Enum: []any{"analyze", "reverify"}},
				"template":    {Type: "string"},
				"description": {Type: "string"},
				"active":      {Type: "boolean"},
			},
		},
		"StageContent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"stage":   {Type: "string", Enum: []any{"analyze", "reverify"}},
				"content": {Type: "string"},
			},
		},
	}
}

func addAnalysisPaths(spec *openapi.Spec) {
	spec.Paths["/analyses"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List analysis runs",
			Tags:    []string{"analyses"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Search policy and archive names", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated analysis runs", "Analysis"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Analyze an invoice archive",
			Description: "Multipart upload with policy_file (.docx) and invoice_zip (.zip). Every invoice in the archive is evaluated against the policy.",
			Tags:        []string{"analyses"},
			RequestBody: &openapi.RequestBody{
				Required: true,
				Content: map[string]*openapi.MediaType{
					"multipart/form-data": {
						Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"policy_file": {Type: "string", Format: "binary"},
								"invoice_zip": {Type: "string", Format: "binary"},
							},
							Required: []string{"policy_file", "invoice_zip"},
						},
					},
				},
			},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored analysis run with decisions", "Analysis"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/analyses/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find an analysis run",
			Tags:       []string{"analyses"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Analysis ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Analysis run with decisions", "Analysis"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete an analysis run and its stored artifacts",
			Tags:       []string{"analyses"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Analysis ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	for _, artifact := range []string{"policy", "archive"} {
		spec.Paths[fmt.Sprintf("/analyses/{id}/%s", artifact)] = &openapi.PathItem{
			Get: &openapi.Operation{
				Summary:    fmt.Sprintf("Download the stored %s file", artifact),
				Tags:       []string{"analyses"},
				Parameters: []*openapi.Parameter{openapi.PathParam("id", "Analysis ID")},
				Responses: map[int]*openapi.Response{
					200: {Description: "File stream"},
					404: openapi.ResponseRef("NotFound"),
				},
			},
		}
	}
}

func addPromptPaths(spec *openapi.Spec) {
	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List prompt overrides",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated prompts", "Prompt"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a prompt override",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("Prompt", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created prompt", "Prompt"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/prompts/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a prompt",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Prompt", "Prompt"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary:     "Update a prompt",
			Tags:        []string{"prompts"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			RequestBody: openapi.RequestBodyJSON("Prompt", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Updated prompt", "Prompt"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a prompt",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/prompts/{stage}/template"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Effective template for a stage",
			Description: "Returns the active override when one exists, otherwise the built-in default.",
			Tags:        []string{"prompts"},
			Parameters: []*openapi.Parameter{
				{
					Name: "stage", In: "path", Required: true,
					Schema: &openapi.Schema{Type: "string", Enum: []any{"analyze", "reverify"}},
				},
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Stage template", "StageContent"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/prompts/{id}/activate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Activate a prompt override for its stage",
			Tags:       []string{"prompts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Prompt ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Activated prompt", "Prompt"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

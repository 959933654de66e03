package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/claimcheck-io/claimcheck/pkg/handlers"
	"github.com/claimcheck-io/claimcheck/pkg/pagination"
	"github.com/claimcheck-io/claimcheck/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "analyses"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyses",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/policy", Handler: h.Policy},
			{Method: "GET", Pattern: "/{id}/archive", Handler: h.Archive},
			{Method: "POST", Pattern: "", Handler: h.Analyze},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of analysis runs with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single analysis run, including its ordered decisions,
// by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching analysis runs.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Analyze processes a multipart upload carrying a policy document
// (policy_file, .docx) and an invoice archive (invoice_zip, .zip),
// runs the analysis pipeline, and returns the stored run with its
// ordered decisions. Returns 201 on success.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	policyName, policyData, err := readUpload(r, "policy_file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	archiveName, archiveData, err := readUpload(r, "invoice_zip")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if !strings.HasSuffix(strings.ToLower(policyName), ".docx") {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrPolicyType)
		return
	}

	if !strings.HasSuffix(strings.ToLower(archiveName), ".zip") {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrArchiveType)
		return
	}

	cmd := AnalyzeCommand{
		PolicyName:  policyName,
		PolicyData:  policyData,
		ArchiveName: archiveName,
		ArchiveData: archiveData,
	}

	a, err := h.sys.Analyze(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// Delete removes an analysis run and its stored artifacts by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Policy streams the stored policy document for an analysis run.
func (h *Handler) Policy(w http.ResponseWriter, r *http.Request) {
	h.artifact(w, r, h.sys.Policy)
}

// Archive streams the stored invoice archive for an analysis run.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.artifact(w, r, h.sys.Archive)
}

func (h *Handler) artifact(
	w http.ResponseWriter,
	r *http.Request,
	load func(ctx context.Context, id uuid.UUID) (*Artifact, error),
) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	artifact, err := load(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer artifact.Body.Close()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))

	if _, err := io.Copy(w, artifact.Body); err != nil {
		h.logger.Warn("artifact stream interrupted", "error", err)
	}
}

func readUpload(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("%w: missing %s", ErrInvalidFile, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("%w: read %s", ErrInvalidFile, field)
	}

	return header.Filename, data, nil
}

package analyses_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/claimcheck-io/claimcheck/internal/analyses"
	"github.com/claimcheck-io/claimcheck/internal/archive"
	"github.com/claimcheck-io/claimcheck/internal/engine"
	"github.com/claimcheck-io/claimcheck/internal/workflow"
	"github.com/claimcheck-io/claimcheck/pkg/pagination"
)

type stubSystem struct {
	analyzed   *analyses.AnalyzeCommand
	analyzeErr error
	result     *analyses.Analysis
}

func (s *stubSystem) Handler(maxUploadSize int64) *analyses.Handler { return nil }

func (s *stubSystem) List(context.Context, pagination.PageRequest, analyses.Filters) (*pagination.PageResult[analyses.Analysis], error) {
	return nil, nil
}

func (s *stubSystem) Find(context.Context, uuid.UUID) (*analyses.Analysis, error) {
	return nil, analyses.ErrNotFound
}

func (s *stubSystem) Analyze(_ context.Context, cmd analyses.AnalyzeCommand) (*analyses.Analysis, error) {
	s.analyzed = &cmd
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	return s.result, nil
}

func (s *stubSystem) Delete(context.Context, uuid.UUID) error { return nil }

func (s *stubSystem) Policy(context.Context, uuid.UUID) (*analyses.Artifact, error) {
	return nil, analyses.ErrNotFound
}

func (s *stubSystem) Archive(context.Context, uuid.UUID) (*analyses.Artifact, error) {
	return nil, analyses.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(sys analyses.System) *analyses.Handler {
	return analyses.NewHandler(sys, testLogger(), pagination.Config{}, 32<<20)
}

func multipartRequest(t *testing.T, policyName, archiveName string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if policyName != "" {
		fw, err := w.CreateFormFile("policy_file", policyName)
		if err != nil {
			t.Fatalf("create policy_file: %v", err)
		}
		fw.Write([]byte("policy bytes"))
	}

	if archiveName != "" {
		fw, err := w.CreateFormFile("invoice_zip", archiveName)
		if err != nil {
			t.Fatalf("create invoice_zip: %v", err)
		}
		fw.Write([]byte("archive bytes"))
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/analyses", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", analyses.ErrNotFound, http.StatusNotFound},
		{"duplicate", analyses.ErrDuplicate, http.StatusConflict},
		{"file too large", analyses.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", analyses.ErrInvalidFile, http.StatusBadRequest},
		{"policy type", analyses.ErrPolicyType, http.StatusBadRequest},
		{"archive type", analyses.ErrArchiveType, http.StatusBadRequest},
		{"empty policy", analyses.ErrEmptyPolicy, http.StatusBadRequest},
		{"unreadable archive", archive.ErrUnreadable, http.StatusBadRequest},
		{"no invoices", archive.ErrNoInvoices, http.StatusBadRequest},
		{"wrapped no invoices", fmt.Errorf("unpack: %w", archive.ErrNoInvoices), http.StatusBadRequest},
		{"unknown error", errors.New("inference backend down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyses.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandlerAnalyze(t *testing.T) {
	t.Run("valid upload returns created run", func(t *testing.T) {
		sys := &stubSystem{
			result: &analyses.Analysis{
				ID:           uuid.New(),
				PolicyName:   "policy.docx",
				ArchiveName:  "invoices.zip",
				InvoiceCount: 2,
				Summary:      workflow.Summary{FullyReimbursed: 1, Declined: 1},
				Decisions: []engine.Decision{
					{InvoiceID: "a.pdf", Status: engine.StatusFull, Amount: 100, Reason: "ok"},
					{InvoiceID: "b.pdf", Status: engine.StatusDeclined, Amount: 0, Reason: "not covered"},
				},
			},
		}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "policy.docx", "invoices.zip"))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}

		if sys.analyzed == nil {
			t.Fatal("system Analyze not called")
		}
		if sys.analyzed.PolicyName != "policy.docx" {
			t.Errorf("PolicyName = %q, want policy.docx", sys.analyzed.PolicyName)
		}
		if string(sys.analyzed.PolicyData) != "policy bytes" {
			t.Errorf("PolicyData = %q", sys.analyzed.PolicyData)
		}
		if string(sys.analyzed.ArchiveData) != "archive bytes" {
			t.Errorf("ArchiveData = %q", sys.analyzed.ArchiveData)
		}

		var body struct {
			Decisions []map[string]any `json:"analysis"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(body.Decisions) != 2 {
			t.Fatalf("len(analysis) = %d, want 2", len(body.Decisions))
		}
		if body.Decisions[0]["reimbursement_status"] != "Fully Reimbursed" {
			t.Errorf("reimbursement_status = %v", body.Decisions[0]["reimbursement_status"])
		}
		if body.Decisions[0]["reimbursable_amount"] != float64(100) {
			t.Errorf("reimbursable_amount = %v", body.Decisions[0]["reimbursable_amount"])
		}
	})

	t.Run("case-insensitive extensions accepted", func(t *testing.T) {
		sys := &stubSystem{result: &analyses.Analysis{}}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "Policy.DOCX", "Invoices.ZIP"))

		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong policy extension", func(t *testing.T) {
		sys := &stubSystem{result: &analyses.Analysis{}}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "policy.pdf", "invoices.zip"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), ".docx") {
			t.Errorf("body = %s, want .docx requirement", rec.Body.String())
		}
		if sys.analyzed != nil {
			t.Error("system Analyze called for rejected upload")
		}
	})

	t.Run("wrong archive extension", func(t *testing.T) {
		sys := &stubSystem{result: &analyses.Analysis{}}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "policy.docx", "invoices.rar"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), ".zip") {
			t.Errorf("body = %s, want .zip requirement", rec.Body.String())
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		sys := &stubSystem{result: &analyses.Analysis{}}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "policy.docx", ""))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("no eligible invoices maps to bad request", func(t *testing.T) {
		sys := &stubSystem{analyzeErr: fmt.Errorf("unpack: %w", archive.ErrNoInvoices)}
		h := newHandler(sys)

		rec := httptest.NewRecorder()
		h.Analyze(rec, multipartRequest(t, "policy.docx", "invoices.zip"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "no PDF files found") {
			t.Errorf("body = %s, want no-invoices message", rec.Body.String())
		}
	})
}

func TestHandlerFind(t *testing.T) {
	t.Run("invalid uuid", func(t *testing.T) {
		h := newHandler(&stubSystem{})

		req := httptest.NewRequest("GET", "/analyses/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()
		h.Find(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		h := newHandler(&stubSystem{})

		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/analyses/"+id, nil)
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.Find(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rekpartners/loigen"
	"github.com/rekpartners/loigen/internal/metrics"
)

// Content types for generated documents.
const (
	contentTypePDF  = "application/pdf"
	contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypeZip  = "application/zip"
)

// pdfRequest is the request body for POST /generate-pdf.
type pdfRequest struct {
	HTML string `json:"html"`
}

// zipRequest is the request body for POST /create-zip. Pdfs stays raw
// so a non-array shape can be rejected before any archive work starts.
type zipRequest struct {
	Pdfs json.RawMessage `json:"pdfs"`
}

// indexResponse is the response for GET /.
type indexResponse struct {
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
	Message   string   `json:"message"`
}

// errorResponse is the error response body.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleIndex handles GET /.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, indexResponse{
		Status:    "LOI document service ready",
		Endpoints: []string{"/generate-pdf", "/generate-docx", "/create-zip"},
		Message:   "POST html to /generate-pdf, form data to /generate-docx, base64 PDFs to /create-zip",
	})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGeneratePDF handles POST /generate-pdf. Missing html fails
// fast with 400 before the render engine is invoked.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req pdfRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		s.sendError(w, http.StatusBadRequest, "HTML content required")
		return
	}

	start := time.Now()
	pdf, err := s.docs.RenderPDF(r.Context(), req.HTML)
	s.metrics.ObserveDocument(metrics.DocTypePDF, err, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, loigen.ErrEmptyHTML) {
			s.sendError(w, http.StatusBadRequest, "HTML content required")
			return
		}
		s.logger.Error("PDF generation failed", "error", err)
		s.sendJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to generate PDF",
			Details: err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", contentTypePDF)
	_, _ = w.Write(pdf)
}

// handleGenerateDocx handles POST /generate-docx. The letter builder
// substitutes defaults for everything, so there is no field-level
// validation failure mode.
func (s *Server) handleGenerateDocx(w http.ResponseWriter, r *http.Request) {
	var req loigen.LetterRequest
	// An absent body decodes as io.EOF and stands for the empty
	// request, same as an empty JSON object.
	if err := s.decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start := time.Now()
	data, err := s.docs.GenerateLetter(r.Context(), req)
	s.metrics.ObserveDocument(metrics.DocTypeDOCX, err, time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("DOCX generation failed", "error", err)
		s.sendJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to generate DOCX",
			Details: err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", contentTypeDocx)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docxFilename(time.Now())))
	_, _ = w.Write(data)
}

// docxFilename names the download after the generation instant.
func docxFilename(t time.Time) string {
	return fmt.Sprintf("LOI_%d.docx", t.UnixMilli())
}

// handleCreateZip handles POST /create-zip. The archive is buffered in
// full before headers are written, so a stream failure still yields a
// clean JSON 500.
func (s *Server) handleCreateZip(w http.ResponseWriter, r *http.Request) {
	var req zipRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	raw := bytes.TrimSpace(req.Pdfs)
	if len(raw) == 0 || raw[0] != '[' {
		s.sendError(w, http.StatusBadRequest, "pdfs array required")
		return
	}
	var entries []loigen.ZipEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.sendError(w, http.StatusBadRequest, "pdfs array required")
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	res, err := s.docs.BuildArchive(r.Context(), entries, &buf)
	s.metrics.ObserveDocument(metrics.DocTypeArchive, err, time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("archive build failed", "error", err)
		s.sendJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to create zip archive",
			Details: err.Error(),
		})
		return
	}

	if len(res.Skipped) > 0 {
		s.logger.Warn("archive finalized with skipped entries", "skipped", res.Skipped)
	}

	w.Header().Set("Content-Type", contentTypeZip)
	w.Header().Set("Content-Disposition", `attachment; filename="LOI_Batch.zip"`)
	_, _ = buf.WriteTo(w)
}

// decodeJSON decodes a JSON request body, bounded by the configured
// body size limit.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// sendJSON writes a JSON response.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sendError sends an error response.
func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, errorResponse{Error: message})
}

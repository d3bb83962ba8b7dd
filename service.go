package loigen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes the three document operations: HTML to PDF rendering,
// Letter of Intent DOCX generation, and zip batching. All state is
// request-scoped except the lazily-launched browser held by the
// renderer; use one Service per concurrent render (see ServicePool).
type Service struct {
	cfg      serviceConfig
	renderer pdfRenderer
	encoder  docxEncoder
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLogger).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:     serviceConfig{timeout: defaultTimeout},
		encoder: goDocxEncoder{},
		logger:  slog.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// RenderPDF renders raw HTML to PDF bytes. Empty or whitespace-only
// content fails with ErrEmptyHTML before the render engine is touched.
func (s *Service) RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, ErrEmptyHTML
	}

	job := uuid.NewString()
	start := s.now()
	s.logger.Info("rendering PDF", "job", job, "html_bytes", len(htmlContent))

	pdfBytes, err := s.renderer.RenderHTML(ctx, htmlContent)
	if err != nil {
		s.logger.Error("PDF render failed", "job", job, "error", err)
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	s.logger.Info("PDF rendered", "job", job, "pdf_bytes", len(pdfBytes), "duration", time.Since(start))
	return pdfBytes, nil
}

// GenerateLetter builds the Letter of Intent from the request and
// encodes it to DOCX bytes. The build step cannot fail; absent fields
// degrade to defaults.
func (s *Service) GenerateLetter(ctx context.Context, req LetterRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	letter := BuildLetter(req, s.now())

	data, err := s.encoder.Encode(letter)
	if err != nil {
		s.logger.Error("DOCX encode failed", "address", req.Address.Full, "error", err)
		return nil, fmt.Errorf("encoding letter: %w", err)
	}

	s.logger.Info("letter generated", "address", req.Address.Full, "docx_bytes", len(data))
	return data, nil
}

// BuildArchive bundles the entries into a zip archive written to w.
// Undecodable entries are skipped and reported in the result; only a
// stream-level failure returns an error.
func (s *Service) BuildArchive(ctx context.Context, entries []ZipEntry, w io.Writer) (ArchiveResult, error) {
	if err := ctx.Err(); err != nil {
		return ArchiveResult{}, err
	}

	res, err := writeArchive(entries, w, s.logger)
	if err != nil {
		return res, fmt.Errorf("building archive: %w", err)
	}

	s.logger.Info("archive built", "entries", res.Entries, "skipped", len(res.Skipped))
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

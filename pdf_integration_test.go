//go:build integration

package loigen

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestRodRenderer_RenderHTML_Integration tests PDF generation using
// go-rod. Rod automatically downloads Chromium on first run if not found.
func TestRodRenderer_RenderHTML_Integration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid HTML produces PDF", func(t *testing.T) {
		t.Parallel()
		html := `<!DOCTYPE html>
<html>
<head><title>Letter of Intent</title></head>
<body><h1>Letter of Intent</h1><p>Re: 123 Main Street</p></body>
</html>`

		r := newRodRenderer(defaultTimeout)
		defer r.Close()

		data, err := r.RenderHTML(ctx, html)
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}

		assertValidPDF(t, data)
	})

	t.Run("background colors are printed", func(t *testing.T) {
		t.Parallel()
		html := `<html><body style="background: #336699"><p>shaded</p></body></html>`

		r := newRodRenderer(defaultTimeout)
		defer r.Close()

		data, err := r.RenderHTML(ctx, html)
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}

		assertValidPDF(t, data)
	})

	t.Run("expired context fails before launch", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		r := newRodRenderer(defaultTimeout)
		defer r.Close()

		if _, err := r.RenderHTML(cancelled, "<p>never rendered</p>"); err == nil {
			t.Error("RenderHTML() with cancelled context succeeded, want error")
		}
	})

	t.Run("browser is reused across renders", func(t *testing.T) {
		t.Parallel()

		r := newRodRenderer(defaultTimeout)
		defer r.Close()

		for i := 0; i < 3; i++ {
			data, err := r.RenderHTML(ctx, "<p>render cycle</p>")
			if err != nil {
				t.Fatalf("render %d: %v", i, err)
			}
			assertValidPDF(t, data)
		}
	})
}

// TestService_EndToEnd_Integration exercises the full service surface
// against a real browser.
func TestService_EndToEnd_Integration(t *testing.T) {
	t.Parallel()

	svc := New(WithTimeout(2 * time.Minute))
	defer svc.Close()

	pdf, err := svc.RenderPDF(context.Background(), "<h1>Letter of Intent</h1>")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	assertValidPDF(t, pdf)
}

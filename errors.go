package loigen

import "errors"

// Sentinel errors for library operations.
var (
	// Render errors.
	ErrEmptyHTML      = errors.New("HTML content cannot be empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Document encoding errors.
	ErrDocxEncode = errors.New("DOCX encoding failed")

	// Archive errors.
	ErrArchiveWrite = errors.New("archive stream write failed")
)

package loigen

import (
	"encoding/json"
	"log/slog"
	"time"
)

// LetterRequest is the form data for a Letter of Intent document.
// Every field is optional: absent values degrade to documented defaults
// at build time, never to an error.
type LetterRequest struct {
	Address     Address `json:"address"`
	BuyerEntity string  `json:"buyerEntity"`
	Owner       string  `json:"owner"`
	AcceptBy    string  `json:"acceptBy"`
	Today       string  `json:"today"`

	Price        *float64 `json:"price"`
	Financing    *float64 `json:"financing"`
	Earnest1     *float64 `json:"earnest1"`
	Earnest2     *float64 `json:"earnest2"`
	TotalEarnest *float64 `json:"totalEarnest"`
}

// Address accepts either a bare JSON string or an object with a "full"
// field. Both forms resolve to the same text.
type Address struct {
	Full string
}

// UnmarshalJSON accepts "123 Main St" and {"full": "123 Main St"}.
// Any other shape is treated as absent rather than rejected.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Full = s
		return nil
	}

	var obj struct {
		Full string `json:"full"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		a.Full = obj.Full
		return nil
	}

	a.Full = ""
	return nil
}

// MarshalJSON emits the object form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Full string `json:"full"`
	}{Full: a.Full})
}

// ZipEntry is one named buffer destined for a zip archive.
// Data carries the file content as base64.
type ZipEntry struct {
	Data     string `json:"data"`
	Filename string `json:"filename,omitempty"`
}

// ArchiveResult reports the outcome of an archive build.
// Skipped holds the 1-indexed positions of entries whose base64
// payload could not be decoded.
type ArchiveResult struct {
	Entries int
	Skipped []int
}

// Run style vocabulary. A run carries text plus a closed set of style
// flags; this is the sole contract between the letter builder and the
// document encoder.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Size      int // font size in points, 0 = document default
}

// Paragraph alignment values.
const (
	AlignDefault = ""
	AlignCenter  = "center"
)

// Paragraph is an ordered sequence of styled runs. Indent is a left
// indent in twips (1/20 point); zero means flush left. An empty
// paragraph renders as vertical spacing.
type Paragraph struct {
	Runs   []Run
	Align  string
	Indent int
}

// Letter is the ordered block structure of a populated Letter of
// Intent, ready for encoding. Title and Author become OOXML core
// properties.
type Letter struct {
	Title      string
	Author     string
	Paragraphs []Paragraph
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// defaultTimeout bounds a single render when no timeout is specified.
const defaultTimeout = 90 * time.Second

// WithTimeout sets the PDF render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("loigen: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
